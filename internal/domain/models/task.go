package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a work item, optionally tied to a case and assigned to a user.
type Task struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Title      string              `bson:"title"`
	CaseID     *primitive.ObjectID `bson:"case_id,omitempty"`
	AssignedTo *primitive.ObjectID `bson:"assigned_to,omitempty"`
	DueAt      *time.Time          `bson:"due_at,omitempty"`
	Status     string              `bson:"status"`
	CreatedBy  primitive.ObjectID  `bson:"created_by"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

// CalendarEvent is a scheduled event. It may reference a case and/or a
// client directly, and carries an attendee list for team visibility.
type CalendarEvent struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	StartsAt    time.Time            `bson:"starts_at"`
	EndsAt      time.Time            `bson:"ends_at"`
	CaseID      *primitive.ObjectID  `bson:"case_id,omitempty"`
	ClientID    *primitive.ObjectID  `bson:"client_id,omitempty"`
	AssignedTo  *primitive.ObjectID  `bson:"assigned_to,omitempty"`
	AttendeeIDs []primitive.ObjectID `bson:"attendee_ids,omitempty"`
	CreatedBy   primitive.ObjectID   `bson:"created_by"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}
