package firmstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/lexhub/lexhub/internal/app/system/normalize"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("firms")}
}

var (
	// ErrDuplicateSubdomain is returned when the subdomain is already taken.
	ErrDuplicateSubdomain = errors.New("a firm with this subdomain already exists")
	errBadSubdomain       = errors.New("firm subdomain is required")
)

// Create registers a firm tenant. The firm document shares its ID with the
// owner user so created_by lineage resolves to the firm without a join.
func (s *Store) Create(ctx context.Context, ownerID primitive.ObjectID, name, subdomain string) (models.Firm, error) {
	sub := normalize.Subdomain(subdomain)
	if sub == "" {
		return models.Firm{}, errBadSubdomain
	}

	now := time.Now()
	f := models.Firm{
		ID:        ownerID,
		Name:      normalize.Name(name),
		Subdomain: sub,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Firm{}, ErrDuplicateSubdomain
		}
		return models.Firm{}, err
	}
	return f, nil
}

// GetByID loads a firm by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Firm, error) {
	var f models.Firm
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	return f, err
}

// GetBySubdomain looks a firm up by its tenant subdomain.
func (s *Store) GetBySubdomain(ctx context.Context, subdomain string) (models.Firm, error) {
	var f models.Firm
	err := s.c.FindOne(ctx, bson.M{"subdomain": normalize.Subdomain(subdomain)}).Decode(&f)
	return f, err
}

// GetFirst returns the oldest firm. Used in single-tenant deployments where
// the host does not select a tenant.
func (s *Store) GetFirst(ctx context.Context) (models.Firm, error) {
	var f models.Firm
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&f)
	return f, err
}

// SetStatus moves a firm between active, suspended, and archived.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case "active", "suspended", "archived":
	default:
		return errors.New("unknown firm status")
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}
