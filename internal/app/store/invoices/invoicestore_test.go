package invoicestore_test

import (
	"errors"
	"testing"

	invoicestore "github.com/lexhub/lexhub/internal/app/store/invoices"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_RecordPayment_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invoicestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	firm := primitive.NewObjectID()
	client := primitive.NewObjectID()

	inv, err := store.Create(ctx, firm, client, 10000, "USD", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inv.Status != "draft" {
		t.Fatalf("expected draft status, got %q", inv.Status)
	}

	// Payments against a draft are rejected.
	if _, err := store.RecordPayment(ctx, firm, inv.ID, 10000, "wire"); !errors.Is(err, invoicestore.ErrNotSent) {
		t.Errorf("expected ErrNotSent for draft invoice, got %v", err)
	}

	if err := store.SetStatus(ctx, inv.ID, "sent"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	// Partial payment leaves the invoice sent.
	if _, err := store.RecordPayment(ctx, firm, inv.ID, 4000, "wire"); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	got, err := store.GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "sent" {
		t.Errorf("expected sent after partial payment, got %q", got.Status)
	}

	// Covering the balance marks it paid.
	if _, err := store.RecordPayment(ctx, firm, inv.ID, 6000, "card"); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	got, err = store.GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "paid" {
		t.Errorf("expected paid after full payment, got %q", got.Status)
	}
}

func TestStore_Create_RejectsBadAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invoicestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), 0, "USD", nil); err == nil {
		t.Error("expected error for zero amount")
	}
}
