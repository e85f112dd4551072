package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two users. Sender and recipient are
// user IDs (portal logins), not client records.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SenderID    primitive.ObjectID `bson:"sender_id"`
	RecipientID primitive.ObjectID `bson:"recipient_id"`
	CompanyID   primitive.ObjectID `bson:"company_id"`
	Body        string             `bson:"body"`
	ReadAt      *time.Time         `bson:"read_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// Conversation is a message thread within one firm. ParticipantIDs holds
// hex-encoded user IDs (serialized id list, matched element-for-element).
type Conversation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Subject        string             `bson:"subject"`
	CompanyID      primitive.ObjectID `bson:"company_id"`
	ParticipantIDs []string           `bson:"participant_ids"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}
