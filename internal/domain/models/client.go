package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a firm's client business record. It is linked to a portal User
// by matching email address, not by a foreign key to the user ID: a
// client-role login resolves to its Client record through a lookup on email,
// and a login with no matching record sees nothing.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FullName  string             `bson:"full_name"`
	FullNameCI string            `bson:"full_name_ci"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	CreatedBy primitive.ObjectID `bson:"created_by"` // owning firm
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
