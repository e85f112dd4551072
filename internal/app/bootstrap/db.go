// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return DBDeps{}, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", zap.Error(err))
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the stores and the scope engine rely on.
// All creations are idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "type", Value: 1}}},
		},
		"firms": {
			{Keys: bson.D{{Key: "subdomain", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"clients": {
			// One client record per email within a firm.
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		"cases": {
			{Keys: bson.D{{Key: "client_id", Value: 1}}},
			{Keys: bson.D{{Key: "team_member_ids", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "title_ci", Value: 1}}},
		},
		"case_notes": {
			{Keys: bson.D{{Key: "case_ids", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}}},
		},
		"invoices": {
			{Keys: bson.D{{Key: "client_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "number", Value: 1}}},
		},
		"payments": {
			{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
		},
		"documents": {
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "title_ci", Value: 1}}},
		},
		"document_permissions": {
			// The grant prefetch filters on user_id with an expiry window.
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "expires_at", Value: 1}}},
			{Keys: bson.D{{Key: "document_id", Value: 1}, {Key: "user_id", Value: 1}}},
		},
		"knowledge_articles": {
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "title_ci", Value: 1}}},
		},
		"oauth_states": {
			// One-time OAuth states expire on their own.
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("index creation failed",
				zap.String("collection", collection), zap.Error(err))
			return err
		}
	}

	logger.Info("schema ensured", zap.Int("collections", len(indexes)))
	return nil
}
