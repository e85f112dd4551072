package casestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{db: db, c: db.Collection("cases")}
}

var errTitleRequired = errors.New("case title is required")

// Create opens a case for a client under firmID. The case number is derived
// from the new ObjectID, which is unique without a counter collection.
func (s *Store) Create(ctx context.Context, firmID, clientID primitive.ObjectID, title, practiceArea string) (models.Case, error) {
	if title == "" {
		return models.Case{}, errTitleRequired
	}

	now := time.Now()
	id := primitive.NewObjectID()
	k := models.Case{
		ID:           id,
		Title:        title,
		TitleCI:      text.Fold(title),
		CaseNumber:   fmt.Sprintf("%d-%s", now.Year(), id.Hex()[18:]),
		ClientID:     clientID,
		PracticeArea: practiceArea,
		Status:       "open",
		CreatedBy:    firmID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, k); err != nil {
		return models.Case{}, err
	}
	return k, nil
}

// GetByID loads a case by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Case, error) {
	var k models.Case
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&k); err != nil {
		return nil, err
	}
	return &k, nil
}

// AssignTeamMember adds a user to the case team. Adding twice is a no-op.
func (s *Store) AssignTeamMember(ctx context.Context, caseID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": caseID}, bson.M{
		"$addToSet": bson.M{"team_member_ids": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveTeamMember drops a user from the case team. Visibility derived from
// the assignment disappears with it.
func (s *Store) RemoveTeamMember(ctx context.Context, caseID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": caseID}, bson.M{
		"$pull": bson.M{"team_member_ids": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// SetStatus updates the case lifecycle status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case "open", "on_hold", "closed", "archived":
	default:
		return errors.New("unknown case status")
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// AddTimelineEntry appends a dated event to the case timeline.
func (s *Store) AddTimelineEntry(ctx context.Context, e models.CaseTimelineEntry) (models.CaseTimelineEntry, error) {
	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now()
	if e.OccurredAt.IsZero() {
		e.OccurredAt = e.CreatedAt
	}
	if _, err := s.db.Collection("case_timeline").InsertOne(ctx, e); err != nil {
		return models.CaseTimelineEntry{}, err
	}
	return e, nil
}
