package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnowledgeArticle is a firm knowledge-base article. Only published, public
// articles are visible outside the authoring firm's staff.
type KnowledgeArticle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	TitleCI   string             `bson:"title_ci"`
	Body      string             `bson:"body"`
	Status    string             `bson:"status"` // draft, published, archived
	IsPublic  bool               `bson:"is_public"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// LegalPrecedent is a precedent reference. Status true marks a precedent as
// public: clients see only public precedents, staff see their firm's own.
type LegalPrecedent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Citation  string             `bson:"citation"`
	Summary   string             `bson:"summary,omitempty"`
	Status    bool               `bson:"status"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}
