package cases_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexhub/lexhub/internal/app/features/cases"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *cases.Handler {
	log := zap.NewNop()
	return cases.NewHandler(db, scope.NewEngine(db, log), uierrors.NewErrorLogger(log), log)
}

type listPage struct {
	Items []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"items"`
	Total int64 `json:"total"`
}

func TestServeList_OwnerSeesOnlyOwnFirm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateFirmOwner(ctx, "Amber LLP", "amber")
	rival := f.CreateFirmOwner(ctx, "Rival LLP", "rival")

	cl := f.CreateClient(ctx, owner.ID, "Acme", "acme@example.com")
	mine := f.CreateCase(ctx, owner.ID, cl.ID, "Amber v. Doe")

	rivalClient := f.CreateClient(ctx, rival.ID, "Zeta", "zeta@example.com")
	f.CreateCase(ctx, rival.ID, rivalClient.ID, "Rival v. Roe")

	h := newHandler(db)

	r := httptest.NewRequest(http.MethodGet, "/cases", nil)
	r = testutil.SignedInRequest(r, owner, owner.ID)
	w := httptest.NewRecorder()
	h.ServeList(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var page listPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("expected exactly the owner's case, got total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Items[0].ID != mine.ID.Hex() {
		t.Errorf("unexpected case %s in owner's list", page.Items[0].ID)
	}
}

func TestServeDetail_OutOfScopeIs404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateFirmOwner(ctx, "Amber LLP", "amber")
	rival := f.CreateFirmOwner(ctx, "Rival LLP", "rival")
	rivalClient := f.CreateClient(ctx, rival.ID, "Zeta", "zeta@example.com")
	hidden := f.CreateCase(ctx, rival.ID, rivalClient.ID, "Rival v. Roe")

	h := newHandler(db)

	serve := func(t *testing.T, caseID string) int {
		t.Helper()
		r := httptest.NewRequest(http.MethodGet, "/cases/"+caseID, nil)
		r = testutil.SignedInRequest(r, owner, owner.ID)
		r = testutil.WithChiURLParam(r, "caseID", caseID)
		w := httptest.NewRecorder()
		h.ServeDetail(w, r)
		return w.Code
	}

	// Another firm's case and a nonexistent one must be indistinguishable.
	if got := serve(t, hidden.ID.Hex()); got != http.StatusNotFound {
		t.Errorf("out-of-scope case: status = %d, want 404", got)
	}
	if got := serve(t, "000000000000000000000000"); got != http.StatusNotFound {
		t.Errorf("missing case: status = %d, want 404", got)
	}
}

func TestServeList_ClientWithoutRecordSeesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateFirmOwner(ctx, "Amber LLP", "amber")
	cl := f.CreateClient(ctx, owner.ID, "Acme", "acme@example.com")
	f.CreateCase(ctx, owner.ID, cl.ID, "Amber v. Doe")

	// A client login whose email matches no client record.
	orphan := f.CreateClientUser(ctx, owner.ID, "orphan@example.com")

	h := newHandler(db)

	r := httptest.NewRequest(http.MethodGet, "/cases", nil)
	r = testutil.SignedInRequest(r, orphan, owner.ID)
	w := httptest.NewRecorder()
	h.ServeList(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var page listPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("expected zero rows for unlinked client login, got total=%d items=%d", page.Total, len(page.Items))
	}
}
