package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hearing is a scheduled court hearing for a case.
type Hearing struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CaseID    primitive.ObjectID `bson:"case_id"`
	Court     string             `bson:"court,omitempty"`
	Judge     string             `bson:"judge,omitempty"`
	HearingAt time.Time          `bson:"hearing_at"`
	Status    string             `bson:"status"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// HearingNotification is a reminder generated for an upcoming hearing.
// Visibility follows the hearing's case.
type HearingNotification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	HearingID primitive.ObjectID `bson:"hearing_id"`
	CaseID    primitive.ObjectID `bson:"case_id"`
	Message   string             `bson:"message"`
	SendAt    time.Time          `bson:"send_at"`
	Sent      bool               `bson:"sent"`
	CreatedAt time.Time          `bson:"created_at"`
}
