package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Firm is a law-firm tenant account. Every tenant-owned record carries a
// created_by lineage back to the firm's owner user, so the firm ID and the
// owner user ID are the same ObjectID.
type Firm struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Subdomain string             `bson:"subdomain"`
	Status    string             `bson:"status"` // active, suspended, archived
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
