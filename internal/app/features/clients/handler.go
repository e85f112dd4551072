// internal/app/features/clients/handler.go
package clients

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	clientstore "github.com/lexhub/lexhub/internal/app/store/clients"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Clients.
type Handler struct {
	DB     *mongo.Database
	Store  *clientstore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  clientstore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}
