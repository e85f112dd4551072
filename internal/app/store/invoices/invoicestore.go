package invoicestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("invoices")}
}

var (
	errBadAmount = errors.New("invoice amount must be positive")
	// ErrNotSent guards payments against draft or void invoices.
	ErrNotSent = errors.New("invoice is not in sent status")
)

// Create drafts an invoice against a client.
func (s *Store) Create(ctx context.Context, firmID, clientID primitive.ObjectID, amountCents int64, currency string, dueAt *time.Time) (models.Invoice, error) {
	if amountCents <= 0 {
		return models.Invoice{}, errBadAmount
	}

	now := time.Now()
	id := primitive.NewObjectID()
	inv := models.Invoice{
		ID:          id,
		Number:      fmt.Sprintf("INV-%d-%s", now.Year(), id.Hex()[18:]),
		ClientID:    clientID,
		AmountCents: amountCents,
		Currency:    currency,
		Status:      "draft",
		DueAt:       dueAt,
		CreatedBy:   firmID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// GetByID loads an invoice by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SetStatus moves an invoice through its lifecycle.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case "draft", "sent", "paid", "void":
	default:
		return errors.New("unknown invoice status")
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// RecordPayment records money received against a sent invoice and marks it
// paid once the running total covers the amount.
func (s *Store) RecordPayment(ctx context.Context, firmID, invoiceID primitive.ObjectID, amountCents int64, method string) (models.Payment, error) {
	if amountCents <= 0 {
		return models.Payment{}, errBadAmount
	}
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return models.Payment{}, err
	}
	if inv.Status != "sent" {
		return models.Payment{}, ErrNotSent
	}

	now := time.Now()
	p := models.Payment{
		ID:          primitive.NewObjectID(),
		InvoiceID:   invoiceID,
		AmountCents: amountCents,
		Method:      method,
		ReceivedAt:  now,
		CreatedBy:   firmID,
		CreatedAt:   now,
	}
	payments := s.db.Collection("payments")
	if _, err := payments.InsertOne(ctx, p); err != nil {
		return models.Payment{}, err
	}

	total, err := s.paidTotal(ctx, invoiceID)
	if err != nil {
		return models.Payment{}, err
	}
	if total >= inv.AmountCents {
		if err := s.SetStatus(ctx, invoiceID, "paid"); err != nil {
			return models.Payment{}, err
		}
	}
	return p, nil
}

func (s *Store) paidTotal(ctx context.Context, invoiceID primitive.ObjectID) (int64, error) {
	cur, err := s.db.Collection("payments").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"invoice_id": invoiceID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount_cents"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
