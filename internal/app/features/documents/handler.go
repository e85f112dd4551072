// internal/app/features/documents/handler.go
package documents

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	documentstore "github.com/lexhub/lexhub/internal/app/store/documents"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the document library.
type Handler struct {
	DB     *mongo.Database
	Store  *documentstore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  documentstore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}
