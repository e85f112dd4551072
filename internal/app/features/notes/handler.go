// internal/app/features/notes/handler.go
package notes

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	notestore "github.com/lexhub/lexhub/internal/app/store/notes"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the case-notes feature.
type Handler struct {
	DB     *mongo.Database
	Store  *notestore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  notestore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}
