package casestore_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	casestore "github.com/lexhub/lexhub/internal/app/store/cases"
	"github.com/lexhub/lexhub/internal/domain/models"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_SetsNumberAndDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := casestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	firm := primitive.NewObjectID()
	client := primitive.NewObjectID()

	k, err := store.Create(ctx, firm, client, "Estate of Harmon", "probate")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if k.Status != "open" {
		t.Errorf("expected new case to open, got %q", k.Status)
	}
	if k.TitleCI != "estate of harmon" {
		t.Errorf("expected folded title, got %q", k.TitleCI)
	}
	prefix := fmt.Sprintf("%d-", time.Now().Year())
	if !strings.HasPrefix(k.CaseNumber, prefix) {
		t.Errorf("expected case number prefixed %q, got %q", prefix, k.CaseNumber)
	}
	if k.CreatedBy != firm || k.ClientID != client {
		t.Error("expected firm and client ownership to be recorded")
	}
}

func TestStore_Create_RequiresTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := casestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "", "family"); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestStore_TeamAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := casestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	k, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Harmon v. Ward", "litigation")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	member := primitive.NewObjectID()
	if err := store.AssignTeamMember(ctx, k.ID, member); err != nil {
		t.Fatalf("AssignTeamMember failed: %v", err)
	}
	// Assigning again must not duplicate the entry.
	if err := store.AssignTeamMember(ctx, k.ID, member); err != nil {
		t.Fatalf("second AssignTeamMember failed: %v", err)
	}

	got, err := store.GetByID(ctx, k.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.TeamMemberIDs) != 1 || got.TeamMemberIDs[0] != member {
		t.Errorf("expected team [%s], got %v", member.Hex(), got.TeamMemberIDs)
	}

	if err := store.RemoveTeamMember(ctx, k.ID, member); err != nil {
		t.Fatalf("RemoveTeamMember failed: %v", err)
	}
	got, err = store.GetByID(ctx, k.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.TeamMemberIDs) != 0 {
		t.Errorf("expected empty team after removal, got %v", got.TeamMemberIDs)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := casestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	k, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Harmon appeal", "litigation")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetStatus(ctx, k.ID, "closed"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, k.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "closed" {
		t.Errorf("expected closed, got %q", got.Status)
	}

	if err := store.SetStatus(ctx, k.ID, "reopened"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestStore_AddTimelineEntry_DefaultsOccurredAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := casestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.AddTimelineEntry(ctx, models.CaseTimelineEntry{
		CaseID:    primitive.NewObjectID(),
		Title:     "Filed motion to dismiss",
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("AddTimelineEntry failed: %v", err)
	}
	if e.ID.IsZero() {
		t.Error("expected entry to get an ID")
	}
	if e.OccurredAt.IsZero() {
		t.Error("expected occurred_at to default to creation time")
	}
	if !e.OccurredAt.Equal(e.CreatedAt) {
		t.Errorf("expected occurred_at %v to equal created_at %v", e.OccurredAt, e.CreatedAt)
	}
}
