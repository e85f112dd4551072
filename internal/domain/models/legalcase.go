package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case is a legal matter. TeamMemberIDs is the authoritative membership set
// for team-level visibility: a team member sees a case (and its children)
// only while their ID is in this list.
type Case struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Title         string               `bson:"title"`
	TitleCI       string               `bson:"title_ci"`
	CaseNumber    string               `bson:"case_number"`
	ClientID      primitive.ObjectID   `bson:"client_id"`
	TeamMemberIDs []primitive.ObjectID `bson:"team_member_ids,omitempty"`
	PracticeArea  string               `bson:"practice_area,omitempty"`
	Status        string               `bson:"status"`
	CreatedBy     primitive.ObjectID   `bson:"created_by"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

// CaseNote is a note on one or more cases. CaseIDs holds hex-encoded case
// IDs (the column is a serialized id list, matched element-for-element).
// Private notes are never visible to clients.
type CaseNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	CaseIDs   []string           `bson:"case_ids,omitempty"`
	IsPrivate bool               `bson:"is_private"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// CaseDocument is a file attached to a single case.
type CaseDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CaseID    primitive.ObjectID `bson:"case_id"`
	Title     string             `bson:"title"`
	FileKey   string             `bson:"file_key"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}

// CaseTimelineEntry is a dated event on a case's timeline.
type CaseTimelineEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CaseID    primitive.ObjectID `bson:"case_id"`
	Title     string             `bson:"title"`
	Detail    string             `bson:"detail,omitempty"`
	OccurredAt time.Time         `bson:"occurred_at"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}

// ResearchProject is legal research tied to a case.
type ResearchProject struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CaseID    primitive.ObjectID `bson:"case_id"`
	Title     string             `bson:"title"`
	Status    string             `bson:"status"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
