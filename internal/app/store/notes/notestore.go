package notestore

import (
	"context"
	"errors"
	"time"

	"github.com/lexhub/lexhub/internal/app/system/htmlsanitize"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("case_notes")}
}

var errBodyRequired = errors.New("note body is required")

// Create writes a note tagging the given cases. The body accepts limited
// HTML and is sanitized on the way in; the case list is stored as hex IDs.
func (s *Store) Create(ctx context.Context, createdBy primitive.ObjectID, title, body string, isPrivate bool, caseIDs ...primitive.ObjectID) (models.CaseNote, error) {
	body = htmlsanitize.Sanitize(body)
	if body == "" {
		return models.CaseNote{}, errBodyRequired
	}

	hex := make([]string, 0, len(caseIDs))
	for _, id := range caseIDs {
		hex = append(hex, id.Hex())
	}

	now := time.Now()
	n := models.CaseNote{
		ID:        primitive.NewObjectID(),
		Title:     htmlsanitize.StripTags(title),
		Body:      body,
		CaseIDs:   hex,
		IsPrivate: isPrivate,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.CaseNote{}, err
	}
	return n, nil
}

// GetByID loads a note by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CaseNote, error) {
	var n models.CaseNote
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// SetPrivate flips a note's privacy flag. Private notes never reach client
// callers regardless of case linkage.
func (s *Store) SetPrivate(ctx context.Context, id primitive.ObjectID, private bool) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_private": private,
		"updated_at": time.Now(),
	}})
	return err
}
