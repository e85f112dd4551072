package articlestore_test

import (
	"strings"
	"testing"

	articlestore "github.com/lexhub/lexhub/internal/app/store/articles"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_SanitizesAndDrafts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	firm := primitive.NewObjectID()
	a, err := store.Create(ctx, firm,
		"Filing <b>deadlines</b>",
		`<p>Respond within 30 days.</p><script>alert("x")</script>`,
		true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if a.Title != "Filing deadlines" {
		t.Errorf("expected tags stripped from title, got %q", a.Title)
	}
	if a.TitleCI != "filing deadlines" {
		t.Errorf("expected folded title, got %q", a.TitleCI)
	}
	if strings.Contains(a.Body, "<script") {
		t.Errorf("expected script removed from body, got %q", a.Body)
	}
	if !strings.Contains(a.Body, "<p>") {
		t.Errorf("expected benign markup kept, got %q", a.Body)
	}
	if a.Status != "draft" {
		t.Errorf("expected new article to be a draft, got %q", a.Status)
	}
	if !a.IsPublic {
		t.Error("expected public flag to be kept")
	}
}

func TestStore_Create_RequiresTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A tag-only title strips to nothing and is rejected.
	if _, err := store.Create(ctx, primitive.NewObjectID(), "<br>", "body", false); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, primitive.NewObjectID(), "Retention policy", "Keep records seven years.", false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetStatus(ctx, a.ID, "published"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "published" {
		t.Errorf("expected published, got %q", got.Status)
	}

	if err := store.SetStatus(ctx, a.ID, "retracted"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestStore_AddPrecedent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	firm := primitive.NewObjectID()
	p, err := store.AddPrecedent(ctx, firm,
		"Smith v. <i>Jones</i>", "123 F.3d 456", "Limits on discovery scope.", true)
	if err != nil {
		t.Fatalf("AddPrecedent failed: %v", err)
	}

	if p.Title != "Smith v. Jones" {
		t.Errorf("expected tags stripped from title, got %q", p.Title)
	}
	if !p.Status {
		t.Error("expected precedent to be marked public")
	}
	if p.CreatedBy != firm {
		t.Error("expected created_by to be the firm")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	if _, err := store.AddPrecedent(ctx, firm, "", "1 U.S. 1", "", false); err == nil {
		t.Error("expected error for empty title")
	}
}
