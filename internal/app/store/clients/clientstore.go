package clientstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/lexhub/lexhub/internal/app/system/normalize"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clients")}
}

var (
	// ErrDuplicateEmail is returned when the firm already has a client with
	// this email. The portal links logins to client records by email, so the
	// pair must stay unique per firm.
	ErrDuplicateEmail = errors.New("a client with this email already exists")
	errNameRequired   = errors.New("client name is required")
)

// Create inserts a client business record owned by firmID.
func (s *Store) Create(ctx context.Context, firmID primitive.ObjectID, cl models.Client) (models.Client, error) {
	cl.ID = primitive.NewObjectID()
	cl.FullName = normalize.Name(cl.FullName)
	if cl.FullName == "" {
		return models.Client{}, errNameRequired
	}
	cl.FullNameCI = text.Fold(cl.FullName)
	cl.Email = normalize.Email(cl.Email)
	cl.CreatedBy = firmID
	if cl.Status == "" {
		cl.Status = "active"
	}

	now := time.Now()
	cl.CreatedAt = now
	cl.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cl); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Client{}, ErrDuplicateEmail
		}
		return models.Client{}, err
	}
	return cl, nil
}

// GetByID loads a client by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var cl models.Client
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// GetByEmail resolves the client record a portal login maps to. Returns
// mongo.ErrNoDocuments when no record carries the email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	var cl models.Client
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// Update overwrites the client's editable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, email, phone string) error {
	name = normalize.Name(name)
	if name == "" {
		return errNameRequired
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"full_name":   name,
		"full_name_ci": text.Fold(name),
		"email":       normalize.Email(email),
		"phone":       phone,
		"updated_at":  time.Now(),
	}})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}
