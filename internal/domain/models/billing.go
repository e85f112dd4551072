package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeEntry is billable (or non-billable) time logged by a user, optionally
// against a case and/or a client.
type TimeEntry struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `bson:"user_id"`
	CaseID    *primitive.ObjectID `bson:"case_id,omitempty"`
	ClientID  *primitive.ObjectID `bson:"client_id,omitempty"`
	Minutes   int                 `bson:"minutes"`
	Notes     string              `bson:"notes,omitempty"`
	Billable  bool                `bson:"billable"`
	CreatedBy primitive.ObjectID  `bson:"created_by"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

// Expense is a cost recorded by the firm, optionally tied to a case.
type Expense struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Description string              `bson:"description"`
	AmountCents int64               `bson:"amount_cents"`
	Currency    string              `bson:"currency"`
	CaseID      *primitive.ObjectID `bson:"case_id,omitempty"`
	CreatedBy   primitive.ObjectID  `bson:"created_by"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

// Invoice bills a client.
type Invoice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Number      string             `bson:"number"`
	ClientID    primitive.ObjectID `bson:"client_id"`
	AmountCents int64              `bson:"amount_cents"`
	Currency    string             `bson:"currency"`
	Status      string             `bson:"status"` // draft, sent, paid, void
	DueAt       *time.Time         `bson:"due_at,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// Payment records money received against an invoice. Client visibility is
// derived from the linked invoice, not from the payment itself.
type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	InvoiceID   primitive.ObjectID `bson:"invoice_id"`
	AmountCents int64              `bson:"amount_cents"`
	Method      string             `bson:"method,omitempty"`
	ReceivedAt  time.Time          `bson:"received_at"`
	CreatedBy   primitive.ObjectID `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// BillingRate is a firm-level hourly rate definition.
type BillingRate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	RateCents int64              `bson:"rate_cents"`
	Currency  string             `bson:"currency"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// BillingCurrency is a firm-level currency definition shared by all of the
// firm's clients.
type BillingCurrency struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code"`
	Symbol    string             `bson:"symbol"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}

// ClientBillingInfo is a client's billing profile.
type ClientBillingInfo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	Address   string             `bson:"address,omitempty"`
	TaxID     string             `bson:"tax_id,omitempty"`
	CreatedBy primitive.ObjectID `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
