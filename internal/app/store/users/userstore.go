package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/lexhub/lexhub/internal/app/system/auth"
	"github.com/lexhub/lexhub/internal/app/system/normalize"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an
	// email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`roles must be drawn from "superadmin"|"company"|"client"|"team_member"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
	errFirmNeeded     = errors.New("client/team_member must have created_by")
)

func validRole(r string) bool {
	switch r {
	case "superadmin", "company", "client", "team_member":
		return true
	}
	return false
}

// Create inserts a new user after normalizing & validating fields.
// The caller supplies PasswordHash already hashed (see HashPassword).
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = "active"
	}

	if len(u.Roles) == 0 {
		return models.User{}, errBadRole
	}
	for _, r := range u.Roles {
		if !validRole(r) {
			return models.User{}, errBadRole
		}
	}

	if u.Status != "active" && u.Status != "disabled" {
		return models.User{}, errBadStatus
	}

	// Clients and team members must be scoped to a firm.
	if u.HasRole("client", "team_member") && u.CreatedBy == nil {
		return models.User{}, errFirmNeeded
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateRoles replaces a user's role set.
func (s *Store) UpdateRoles(ctx context.Context, id primitive.ObjectID, roles []string) error {
	if len(roles) == 0 {
		return errBadRole
	}
	for _, r := range roles {
		if !validRole(r) {
			return errBadRole
		}
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"roles":      roles,
		"updated_at": time.Now(),
	}})
	return err
}

// UpdatePermissions replaces a user's capability set.
func (s *Store) UpdatePermissions(ctx context.Context, id primitive.ObjectID, permissions []string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"permissions": permissions,
		"updated_at":  time.Now(),
	}})
	return err
}

// SetStatus flips a user between active and disabled.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != "active" && status != "disabled" {
		return errBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// SetPassword stores a new bcrypt hash for the user.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, plaintext string) error {
	hash, err := HashPassword(plaintext)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"auth_method":   "password",
		"updated_at":    time.Now(),
	}})
	return err
}

// HashPassword bcrypt-hashes a plaintext password at the default cost.
func HashPassword(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// FetchSessionUser implements auth.UserFetcher. Disabled or deleted users
// resolve to (nil, nil) so stale sessions sign out instead of erroring.
func (s *Store) FetchSessionUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	u, err := s.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.Status != "active" {
		return nil, nil
	}

	su := &auth.SessionUser{
		ID:          u.ID.Hex(),
		Name:        u.FullName,
		Email:       u.Email,
		Roles:       u.Roles,
		Type:        u.Type,
		Permissions: u.Permissions,
		Lang:        u.Lang,
	}
	if u.CreatedBy != nil {
		su.CreatedBy = u.CreatedBy.Hex()
	}
	return su, nil
}
