// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/lexhub/lexhub/internal/app/store/users"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the DB connection and schema
// are ready, before the HTTP handler is built. LexHub uses it to bootstrap
// the superadmin account when one is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		return nil
	}
	return ensureSuperAdmin(ctx, appCfg, deps, logger)
}

// ensureSuperAdmin promotes an existing user to superadmin, or creates the
// account when none exists and a password is configured.
func ensureSuperAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, appCfg.SuperAdminEmail)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if u != nil {
		if u.HasRole("superadmin") {
			return nil
		}
		if err := users.UpdateRoles(ctx, u.ID, append(u.Roles, "superadmin")); err != nil {
			return err
		}
		logger.Info("promoted existing user to superadmin", zap.String("user_id", u.ID.Hex()))
		return nil
	}

	if appCfg.SuperAdminPassword == "" {
		return errors.New("superadmin_email is set but no such user exists and superadmin_password is empty")
	}
	hash, err := userstore.HashPassword(appCfg.SuperAdminPassword)
	if err != nil {
		return err
	}
	created, err := users.Create(ctx, models.User{
		FullName:     "Administrator",
		Email:        appCfg.SuperAdminEmail,
		Roles:        []string{"superadmin"},
		PasswordHash: hash,
		AuthMethod:   "password",
		Status:       "active",
	})
	if err != nil {
		return err
	}
	logger.Info("created superadmin user", zap.String("user_id", created.ID.Hex()))
	return nil
}
