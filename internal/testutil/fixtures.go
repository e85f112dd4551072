package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/lexhub/lexhub/internal/app/system/normalize"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures creates test data directly in the database, bypassing stores so
// tests can assemble exactly the shape they need.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access.
func (f *Fixtures) DB() *mongo.Database { return f.db }

func (f *Fixtures) insert(ctx context.Context, collection string, doc interface{}) {
	f.t.Helper()
	if _, err := f.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s failed: %v", collection, err)
	}
}

// CreateFirmOwner creates a firm owner user and its matching firm record.
// The firm document shares the owner's ID, so created_by lineage and the
// tenant middleware resolve to the same ObjectID.
func (f *Fixtures) CreateFirmOwner(ctx context.Context, name, subdomain string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	owner := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  name,
		Email:     normalize.Email(subdomain + "-owner@example.com"),
		Roles:     []string{"company"},
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "users", owner)
	f.insert(ctx, "firms", models.Firm{
		ID:        owner.ID,
		Name:      name,
		Subdomain: normalize.Subdomain(subdomain),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	})
	return owner
}

// CreateTeamMember creates a staff user owned by the given firm.
func (f *Fixtures) CreateTeamMember(ctx context.Context, firmID primitive.ObjectID, name string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  name,
		Email:     normalize.Email(name + "@staff.example.com"),
		Roles:     []string{"team_member"},
		Type:      "team_member",
		CreatedBy: &firmID,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateClientUser creates a client portal login owned by the firm.
func (f *Fixtures) CreateClientUser(ctx context.Context, firmID primitive.ObjectID, email string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  "Client Login",
		Email:     normalize.Email(email),
		Roles:     []string{"client"},
		CreatedBy: &firmID,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateClient creates a client business record for the firm. Email is the
// link to a portal login.
func (f *Fixtures) CreateClient(ctx context.Context, firmID primitive.ObjectID, name, email string) models.Client {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Client{
		ID:        primitive.NewObjectID(),
		FullName:  name,
		Email:     normalize.Email(email),
		CreatedBy: firmID,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "clients", c)
	return c
}

// CreateCase creates a case for a client with the given team members.
func (f *Fixtures) CreateCase(ctx context.Context, firmID, clientID primitive.ObjectID, title string, team ...primitive.ObjectID) models.Case {
	f.t.Helper()
	now := time.Now().UTC()
	cs := models.Case{
		ID:            primitive.NewObjectID(),
		Title:         title,
		ClientID:      clientID,
		TeamMemberIDs: team,
		Status:        "open",
		CreatedBy:     firmID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "cases", cs)
	return cs
}

// CreateCaseNote creates a note authored by createdBy, tagged with the
// given case IDs.
func (f *Fixtures) CreateCaseNote(ctx context.Context, createdBy primitive.ObjectID, isPrivate bool, caseIDs ...primitive.ObjectID) models.CaseNote {
	f.t.Helper()
	now := time.Now().UTC()
	hex := make([]string, 0, len(caseIDs))
	for _, id := range caseIDs {
		hex = append(hex, id.Hex())
	}
	n := models.CaseNote{
		ID:        primitive.NewObjectID(),
		Title:     "note",
		Body:      "body",
		CaseIDs:   hex,
		IsPrivate: isPrivate,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "case_notes", n)
	return n
}

// CreateCaseDocument attaches a document to a case.
func (f *Fixtures) CreateCaseDocument(ctx context.Context, firmID, caseID primitive.ObjectID, title string) models.CaseDocument {
	f.t.Helper()
	d := models.CaseDocument{
		ID:        primitive.NewObjectID(),
		CaseID:    caseID,
		Title:     title,
		CreatedBy: firmID,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "case_documents", d)
	return d
}

// CreateDocument creates a library document owned by the firm.
func (f *Fixtures) CreateDocument(ctx context.Context, firmID primitive.ObjectID, title string) models.Document {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Document{
		ID:        primitive.NewObjectID(),
		Title:     title,
		CreatedBy: firmID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "documents", d)
	return d
}

// CreateGrant grants a user access to a document, optionally expiring.
func (f *Fixtures) CreateGrant(ctx context.Context, firmID, documentID, userID primitive.ObjectID, expiresAt *time.Time) models.DocumentPermission {
	f.t.Helper()
	g := models.DocumentPermission{
		ID:         primitive.NewObjectID(),
		DocumentID: documentID,
		UserID:     userID,
		ExpiresAt:  expiresAt,
		CreatedBy:  firmID,
		CreatedAt:  time.Now().UTC(),
	}
	f.insert(ctx, "document_permissions", g)
	return g
}

// CreateInvoice bills a client.
func (f *Fixtures) CreateInvoice(ctx context.Context, firmID, clientID primitive.ObjectID, number string) models.Invoice {
	f.t.Helper()
	now := time.Now().UTC()
	inv := models.Invoice{
		ID:          primitive.NewObjectID(),
		Number:      number,
		ClientID:    clientID,
		AmountCents: 10000,
		Currency:    "USD",
		Status:      "sent",
		CreatedBy:   firmID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "invoices", inv)
	return inv
}

// CreatePayment records a payment against an invoice.
func (f *Fixtures) CreatePayment(ctx context.Context, firmID, invoiceID primitive.ObjectID) models.Payment {
	f.t.Helper()
	p := models.Payment{
		ID:          primitive.NewObjectID(),
		InvoiceID:   invoiceID,
		AmountCents: 10000,
		ReceivedAt:  time.Now().UTC(),
		CreatedBy:   firmID,
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "payments", p)
	return p
}

// CreateExpense records a firm expense, optionally tied to a case.
func (f *Fixtures) CreateExpense(ctx context.Context, firmID primitive.ObjectID, caseID *primitive.ObjectID) models.Expense {
	f.t.Helper()
	now := time.Now().UTC()
	e := models.Expense{
		ID:          primitive.NewObjectID(),
		Description: "filing fee",
		AmountCents: 5000,
		Currency:    "USD",
		CaseID:      caseID,
		CreatedBy:   firmID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "expenses", e)
	return e
}

// CreateConversation creates a thread in a firm with the given participant
// user IDs.
func (f *Fixtures) CreateConversation(ctx context.Context, companyID primitive.ObjectID, participants ...primitive.ObjectID) models.Conversation {
	f.t.Helper()
	now := time.Now().UTC()
	hex := make([]string, 0, len(participants))
	for _, id := range participants {
		hex = append(hex, id.Hex())
	}
	c := models.Conversation{
		ID:             primitive.NewObjectID(),
		Subject:        "thread",
		CompanyID:      companyID,
		ParticipantIDs: hex,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "conversations", c)
	return c
}

// CreateKnowledgeArticle creates an article with the given publication
// state.
func (f *Fixtures) CreateKnowledgeArticle(ctx context.Context, firmID primitive.ObjectID, status string, isPublic bool) models.KnowledgeArticle {
	f.t.Helper()
	now := time.Now().UTC()
	a := models.KnowledgeArticle{
		ID:        primitive.NewObjectID(),
		Title:     "article",
		Body:      "body",
		Status:    status,
		IsPublic:  isPublic,
		CreatedBy: firmID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "knowledge_articles", a)
	return a
}

// CreateTask creates a task, optionally assigned and case-linked.
func (f *Fixtures) CreateTask(ctx context.Context, firmID primitive.ObjectID, assignedTo, caseID *primitive.ObjectID) models.Task {
	f.t.Helper()
	now := time.Now().UTC()
	task := models.Task{
		ID:         primitive.NewObjectID(),
		Title:      "task",
		CaseID:     caseID,
		AssignedTo: assignedTo,
		Status:     "open",
		CreatedBy:  firmID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "tasks", task)
	return task
}
