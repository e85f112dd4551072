// internal/app/features/knowledge/handler.go
package knowledge

import (
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	articlestore "github.com/lexhub/lexhub/internal/app/store/articles"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the knowledge base: articles and precedent references.
type Handler struct {
	DB     *mongo.Database
	Store  *articlestore.Store
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  articlestore.New(db),
		Engine: engine,
		ErrLog: errLog,
		Log:    logger,
	}
}

func forArticle(id primitive.ObjectID) scope.Query {
	return scope.ForCollection(scope.ColKnowledgeArticles).Where(bson.M{"_id": id})
}
