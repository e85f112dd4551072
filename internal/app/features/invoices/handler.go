// internal/app/features/invoices/handler.go
package invoices

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	invoicestore "github.com/lexhub/lexhub/internal/app/store/invoices"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for billing.
type Handler struct {
	DB     *mongo.Database
	Store  *invoicestore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  invoicestore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}
