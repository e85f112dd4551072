package documents_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lexhub/lexhub/internal/app/features/documents"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *documents.Handler {
	log := zap.NewNop()
	return documents.NewHandler(db, scope.NewEngine(db, log), uierrors.NewErrorLogger(log), log)
}

func TestServeGrant_OutOfScopeDocumentIs404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateFirmOwner(ctx, "Amber LLP", "amber")
	rival := f.CreateFirmOwner(ctx, "Rival LLP", "rival")
	hidden := f.CreateDocument(ctx, rival.ID, "Rival Brief")
	member := f.CreateTeamMember(ctx, owner.ID, "paralegal")

	h := newHandler(db)

	body := strings.NewReader(`{"user_id":"` + member.ID.Hex() + `"}`)
	r := httptest.NewRequest(http.MethodPost, "/documents/"+hidden.ID.Hex()+"/grants", body)
	r = testutil.SignedInRequest(r, owner, owner.ID)
	r = testutil.WithChiURLParam(r, "documentID", hidden.ID.Hex())
	w := httptest.NewRecorder()
	h.ServeGrant(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	// No grant must exist for the hidden document.
	n, err := db.Collection("document_permissions").CountDocuments(ctx, bson.M{"document_id": hidden.ID})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("grant was written for an out-of-scope document")
	}
}

func TestServeGrant_OwnDocumentSucceeds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateFirmOwner(ctx, "Amber LLP", "amber")
	doc := f.CreateDocument(ctx, owner.ID, "Engagement Letter")
	member := f.CreateTeamMember(ctx, owner.ID, "paralegal")

	h := newHandler(db)

	body := strings.NewReader(`{"user_id":"` + member.ID.Hex() + `"}`)
	r := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID.Hex()+"/grants", body)
	r = testutil.SignedInRequest(r, owner, owner.ID)
	r = testutil.WithChiURLParam(r, "documentID", doc.ID.Hex())
	w := httptest.NewRecorder()
	h.ServeGrant(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["grant_id"] == "" {
		t.Error("expected a grant_id in the response")
	}

	n, err := db.Collection("document_permissions").CountDocuments(ctx, bson.M{
		"document_id": doc.ID,
		"user_id":     member.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected one grant row, got %d", n)
	}
}
