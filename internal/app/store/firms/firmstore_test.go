package firmstore_test

import (
	"testing"
	"time"

	firmstore "github.com/lexhub/lexhub/internal/app/store/firms"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_SharesOwnerID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := firmstore.New(db)
	ownerID := primitive.NewObjectID()

	f, err := s.Create(ctx, ownerID, "  Amber   LLP  ", "Amber")
	if err != nil {
		t.Fatalf("create firm: %v", err)
	}
	if f.ID != ownerID {
		t.Errorf("firm ID = %s, want owner ID %s", f.ID.Hex(), ownerID.Hex())
	}
	if f.Name != "Amber LLP" {
		t.Errorf("name not normalized: %q", f.Name)
	}
	if f.Subdomain != "amber" {
		t.Errorf("subdomain not folded: %q", f.Subdomain)
	}
	if f.Status != "active" {
		t.Errorf("status = %q, want active", f.Status)
	}
}

func TestCreate_DuplicateSubdomain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique index is normally built by schema setup.
	testutil.EnsureUniqueIndex(t, db, "firms", "subdomain")

	s := firmstore.New(db)
	if _, err := s.Create(ctx, primitive.NewObjectID(), "Amber LLP", "amber"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.Create(ctx, primitive.NewObjectID(), "Other LLP", "amber")
	if err != firmstore.ErrDuplicateSubdomain {
		t.Fatalf("expected ErrDuplicateSubdomain, got %v", err)
	}
}

func TestGetBySubdomainAndFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := firmstore.New(db)
	first, err := s.Create(ctx, primitive.NewObjectID(), "First LLP", "first")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.Create(ctx, primitive.NewObjectID(), "Second LLP", "second"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetBySubdomain(ctx, "SECOND")
	if err != nil {
		t.Fatalf("GetBySubdomain: %v", err)
	}
	if got.Name != "Second LLP" {
		t.Errorf("GetBySubdomain returned %q", got.Name)
	}

	oldest, err := s.GetFirst(ctx)
	if err != nil {
		t.Fatalf("GetFirst: %v", err)
	}
	if oldest.ID != first.ID {
		t.Errorf("GetFirst returned %s, want the oldest firm %s", oldest.Name, first.Name)
	}
}

func TestSetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := firmstore.New(db)
	f, err := s.Create(ctx, primitive.NewObjectID(), "Amber LLP", "amber")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetStatus(ctx, f.ID, "suspended"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got, err := s.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "suspended" {
		t.Errorf("status = %q, want suspended", got.Status)
	}

	if err := s.SetStatus(ctx, f.ID, "bogus"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}
