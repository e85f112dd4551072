package articlestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/lexhub/lexhub/internal/app/system/htmlsanitize"
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
	return &Store{db: db, c: db.Collection("knowledge_articles")}
}

var errTitleRequired = errors.New("article title is required")

// Create drafts a knowledge-base article for the firm. The body is
// sanitized rich text; articles start as drafts regardless of visibility.
func (s *Store) Create(ctx context.Context, firmID primitive.ObjectID, title, body string, isPublic bool) (models.KnowledgeArticle, error) {
	title = htmlsanitize.StripTags(title)
	if title == "" {
		return models.KnowledgeArticle{}, errTitleRequired
	}

	now := time.Now()
	a := models.KnowledgeArticle{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Body:      htmlsanitize.Sanitize(body),
		Status:    "draft",
		IsPublic:  isPublic,
		CreatedBy: firmID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.KnowledgeArticle{}, err
	}
	return a, nil
}

// GetByID loads an article by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.KnowledgeArticle, error) {
	var a models.KnowledgeArticle
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetStatus moves an article between draft, published, and archived.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case "draft", "published", "archived":
	default:
		return errors.New("unknown article status")
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// AddPrecedent files a precedent reference. public marks it visible to
// client callers.
func (s *Store) AddPrecedent(ctx context.Context, firmID primitive.ObjectID, title, citation, summary string, public bool) (models.LegalPrecedent, error) {
	title = htmlsanitize.StripTags(title)
	if title == "" {
		return models.LegalPrecedent{}, errTitleRequired
	}
	p := models.LegalPrecedent{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Citation:  citation,
		Summary:   htmlsanitize.StripTags(summary),
		Status:    public,
		CreatedBy: firmID,
		CreatedAt: time.Now(),
	}
	if _, err := s.db.Collection("legal_precedents").InsertOne(ctx, p); err != nil {
		return models.LegalPrecedent{}, err
	}
	return p, nil
}
