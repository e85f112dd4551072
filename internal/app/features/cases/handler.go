// internal/app/features/cases/handler.go
package cases

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	casestore "github.com/lexhub/lexhub/internal/app/store/cases"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Cases.
type Handler struct {
	DB     *mongo.Database
	Store  *casestore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a Cases handler bound to a DB, the scoping engine,
// and a logger.
func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  casestore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}

// forCase is the single-row query the detail and team handlers narrow.
func forCase(id primitive.ObjectID) scope.Query {
	return scope.ForCollection(scope.ColCases).Where(bson.M{"_id": id})
}
