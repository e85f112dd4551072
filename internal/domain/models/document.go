package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a firm document in the shared document library (distinct from
// CaseDocument, which hangs off a single case). Visibility outside the
// owning firm is granted per-user through DocumentPermission records.
type Document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	TitleCI    string             `bson:"title_ci"`
	FileKey    string             `bson:"file_key"`
	ShareToken string             `bson:"share_token,omitempty"`
	CreatedBy  primitive.ObjectID `bson:"created_by"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

// DocumentPermission grants one user access to one document, optionally
// until ExpiresAt. A nil ExpiresAt never expires; a past ExpiresAt makes
// the grant invisible, not merely flagged.
type DocumentPermission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	DocumentID primitive.ObjectID `bson:"document_id"`
	UserID     primitive.ObjectID `bson:"user_id"`
	ExpiresAt  *time.Time         `bson:"expires_at,omitempty"`
	CreatedBy  primitive.ObjectID `bson:"created_by"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// DocumentComment is a comment thread entry on a library document.
// Visibility follows the document.
type DocumentComment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	DocumentID primitive.ObjectID `bson:"document_id"`
	AuthorID   primitive.ObjectID `bson:"author_id"`
	Body       string             `bson:"body"`
	CreatedBy  primitive.ObjectID `bson:"created_by"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// ClientDocument is a file shared with a specific client through the portal.
type ClientDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	Title     string             `bson:"title"`
	FileKey   string             `bson:"file_key"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}
