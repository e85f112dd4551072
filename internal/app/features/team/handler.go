// internal/app/features/team/handler.go
package team

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	userstore "github.com/lexhub/lexhub/internal/app/store/users"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves firm staff management: listing the roster, inviting team
// members, and adjusting their capability sets.
type Handler struct {
	DB     *mongo.Database
	Users  *userstore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Users:  userstore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}
