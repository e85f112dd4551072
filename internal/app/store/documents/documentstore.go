package documentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("documents")}
}

var errTitleRequired = errors.New("document title is required")

// Create files a document in the firm's library.
func (s *Store) Create(ctx context.Context, firmID primitive.ObjectID, title, fileKey string) (models.Document, error) {
	if title == "" {
		return models.Document{}, errTitleRequired
	}
	now := time.Now()
	d := models.Document{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		FileKey:   fileKey,
		CreatedBy: firmID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Document{}, err
	}
	return d, nil
}

// GetByID loads a document by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var d models.Document
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// EnsureShareToken returns the document's share token, minting one on first
// use. Tokens are opaque and unguessable; possession is not authorization,
// access still goes through grants.
func (s *Store) EnsureShareToken(ctx context.Context, id primitive.ObjectID) (string, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if d.ShareToken != "" {
		return d.ShareToken, nil
	}
	token := uuid.NewString()
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"share_token": token,
		"updated_at":  time.Now(),
	}})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Grant shares a document with a user, optionally until expiresAt. A nil
// expiry never lapses. Granting again replaces the previous expiry.
func (s *Store) Grant(ctx context.Context, firmID, documentID, userID primitive.ObjectID, expiresAt *time.Time) (models.DocumentPermission, error) {
	grants := s.db.Collection("document_permissions")

	// One grant per (document, user); re-granting refreshes it.
	if _, err := grants.DeleteMany(ctx, bson.M{"document_id": documentID, "user_id": userID}); err != nil {
		return models.DocumentPermission{}, err
	}

	g := models.DocumentPermission{
		ID:         primitive.NewObjectID(),
		DocumentID: documentID,
		UserID:     userID,
		ExpiresAt:  expiresAt,
		CreatedBy:  firmID,
		CreatedAt:  time.Now(),
	}
	if _, err := grants.InsertOne(ctx, g); err != nil {
		return models.DocumentPermission{}, err
	}
	return g, nil
}

// Revoke removes a user's grant on a document.
func (s *Store) Revoke(ctx context.Context, documentID, userID primitive.ObjectID) error {
	_, err := s.db.Collection("document_permissions").
		DeleteMany(ctx, bson.M{"document_id": documentID, "user_id": userID})
	return err
}

// AddComment appends a comment to a library document.
func (s *Store) AddComment(ctx context.Context, firmID, documentID, authorID primitive.ObjectID, body string) (models.DocumentComment, error) {
	c := models.DocumentComment{
		ID:         primitive.NewObjectID(),
		DocumentID: documentID,
		AuthorID:   authorID,
		Body:       body,
		CreatedBy:  firmID,
		CreatedAt:  time.Now(),
	}
	if _, err := s.db.Collection("document_comments").InsertOne(ctx, c); err != nil {
		return models.DocumentComment{}, err
	}
	return c, nil
}
