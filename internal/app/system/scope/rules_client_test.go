package scope_test

import (
	"testing"
	"time"

	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scenario: a client signing in sees only their own firm's cases that
// actually name them, never a sibling client's matters.
func TestClientScope_Cases(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	me := f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	sibling := f.CreateClient(ctx, firm.ID, "Sibling", "sib@example.com")

	mine := f.CreateCase(ctx, firm.ID, me.ID, "Mine")
	theirs := f.CreateCase(ctx, firm.ID, sibling.ID, "Theirs")

	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")
	caller := clientCaller(login.ID, "me@example.com", firm.ID)

	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColCases), "cases")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[mine.ID] {
		t.Errorf("expected only own case, got %v", ids)
	}
	if ids[theirs.ID] {
		t.Error("sibling client's case leaked")
	}
}

// Scenario C: a client login with no matching client record gets zero rows
// without an error, for invoices and for every other registered rule.
func TestClientScope_NoClientRecordFailsClosed(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	cl := f.CreateClient(ctx, firm.ID, "Acme", "acme@example.com")
	f.CreateInvoice(ctx, firm.ID, cl.ID, "INV-1")

	orphan := f.CreateClientUser(ctx, firm.ID, "orphan@example.com")
	caller := clientCaller(orphan.ID, "orphan@example.com", firm.ID)

	for _, col := range []string{scope.ColInvoices, scope.ColCases, scope.ColDocuments} {
		q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(col), col)
		if err != nil {
			t.Fatalf("Apply on %s must not error for a missing client record: %v", col, err)
		}
		if ids := fetchIDs(t, ctx, db, q); len(ids) != 0 {
			t.Errorf("expected zero %s rows, got %d", col, len(ids))
		}
	}
}

// P5: private notes are invisible to clients, and visible notes must be
// firm-authored and tag one of the client's cases.
func TestClientScope_CaseNotes(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	staff := f.CreateTeamMember(ctx, firm.ID, "ada")
	me := f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	myCase := f.CreateCase(ctx, firm.ID, me.ID, "Mine")
	otherCase := f.CreateCase(ctx, firm.ID, primitive.NewObjectID(), "Other")

	visible := f.CreateCaseNote(ctx, firm.ID, false, myCase.ID)
	byStaff := f.CreateCaseNote(ctx, staff.ID, false, myCase.ID)
	private := f.CreateCaseNote(ctx, firm.ID, true, myCase.ID)
	wrongCase := f.CreateCaseNote(ctx, firm.ID, false, otherCase.ID)
	outsider := f.CreateCaseNote(ctx, primitive.NewObjectID(), false, myCase.ID)

	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")
	caller := clientCaller(login.ID, "me@example.com", firm.ID)

	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColCaseNotes), "case_notes")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[visible.ID] || !ids[byStaff.ID] {
		t.Errorf("expected owner and staff notes on own case, got %v", ids)
	}
	if ids[private.ID] {
		t.Error("private note visible to client")
	}
	if ids[wrongCase.ID] {
		t.Error("note on an unrelated case visible to client")
	}
	if ids[outsider.ID] {
		t.Error("note by a stranger visible to client")
	}
}

// Scenario D: document grants honor expiry. A live or open-ended grant
// shows the document; an expired one does not.
func TestClientScope_DocumentGrantExpiry(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")

	ownFirmDoc := f.CreateDocument(ctx, firm.ID, "firm doc")
	liveDoc := f.CreateDocument(ctx, otherFirm.ID, "shared live")
	openDoc := f.CreateDocument(ctx, otherFirm.ID, "shared forever")
	expiredDoc := f.CreateDocument(ctx, otherFirm.ID, "shared expired")
	unsharedDoc := f.CreateDocument(ctx, otherFirm.ID, "not shared")

	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	f.CreateGrant(ctx, otherFirm.ID, liveDoc.ID, login.ID, &future)
	f.CreateGrant(ctx, otherFirm.ID, openDoc.ID, login.ID, nil)
	f.CreateGrant(ctx, otherFirm.ID, expiredDoc.ID, login.ID, &past)

	caller := clientCaller(login.ID, "me@example.com", firm.ID)
	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColDocuments), "documents")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[ownFirmDoc.ID] {
		t.Error("client cannot see their firm's document")
	}
	if !ids[liveDoc.ID] || !ids[openDoc.ID] {
		t.Error("live or open-ended grant did not expose the document")
	}
	if ids[expiredDoc.ID] {
		t.Error("expired grant still exposes the document")
	}
	if ids[unsharedDoc.ID] {
		t.Error("unshared foreign document visible")
	}
}

// Expenses require both firm authorship and linkage to the client's cases;
// an unlinked firm expense stays hidden.
func TestClientScope_Expenses(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	me := f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	myCase := f.CreateCase(ctx, firm.ID, me.ID, "Mine")

	linked := f.CreateExpense(ctx, firm.ID, &myCase.ID)
	unlinked := f.CreateExpense(ctx, firm.ID, nil)

	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")
	caller := clientCaller(login.ID, "me@example.com", firm.ID)

	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColExpenses), "expenses")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[linked.ID] {
		t.Errorf("expected only the case-linked expense, got %v", ids)
	}
	if ids[unlinked.ID] {
		t.Error("firm expense without case linkage visible to client")
	}
}

// Payments follow invoices: visible only when the invoice belongs to the
// client.
func TestClientScope_Payments(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	me := f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	sibling := f.CreateClient(ctx, firm.ID, "Sibling", "sib@example.com")

	myInvoice := f.CreateInvoice(ctx, firm.ID, me.ID, "INV-1")
	sibInvoice := f.CreateInvoice(ctx, firm.ID, sibling.ID, "INV-2")
	myPayment := f.CreatePayment(ctx, firm.ID, myInvoice.ID)
	sibPayment := f.CreatePayment(ctx, firm.ID, sibInvoice.ID)

	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")
	caller := clientCaller(login.ID, "me@example.com", firm.ID)

	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColPayments), "payments")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[myPayment.ID] {
		t.Errorf("expected only own payment, got %v", ids)
	}
	if ids[sibPayment.ID] {
		t.Error("sibling client's payment visible")
	}
}

// Conversations require both firm ownership and participation.
func TestClientScope_Conversations(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")

	mine := f.CreateConversation(ctx, firm.ID, firm.ID, login.ID)
	notMine := f.CreateConversation(ctx, firm.ID, firm.ID, primitive.NewObjectID())
	foreign := f.CreateConversation(ctx, primitive.NewObjectID(), login.ID)

	caller := clientCaller(login.ID, "me@example.com", firm.ID)
	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColConversations), "conversations")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[mine.ID] {
		t.Errorf("expected only the participating conversation, got %v", ids)
	}
	if ids[notMine.ID] || ids[foreign.ID] {
		t.Error("conversation outside firm or participation visible")
	}
}

// Knowledge base: only published, public articles of the client's own firm.
func TestClientScope_KnowledgeArticles(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")

	visible := f.CreateKnowledgeArticle(ctx, firm.ID, "published", true)
	draft := f.CreateKnowledgeArticle(ctx, firm.ID, "draft", true)
	internal := f.CreateKnowledgeArticle(ctx, firm.ID, "published", false)
	foreign := f.CreateKnowledgeArticle(ctx, otherFirm.ID, "published", true)

	caller := clientCaller(login.ID, "me@example.com", firm.ID)
	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColKnowledgeArticles), "knowledge_articles")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[visible.ID] {
		t.Errorf("expected only the published public article, got %v", ids)
	}
	if ids[draft.ID] || ids[internal.ID] || ids[foreign.ID] {
		t.Error("draft, internal, or foreign article visible to client")
	}
}

// Collections with a firm-level column but no client rule fall back to the
// firm default; collections without one pass through unnarrowed only when
// nothing sensitive lives there.
func TestClientScope_DefaultFirmColumn(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	f.CreateClient(ctx, firm.ID, "Me", "me@example.com")
	login := f.CreateClientUser(ctx, firm.ID, "me@example.com")

	ownTask := f.CreateTask(ctx, firm.ID, nil, nil)
	foreignTask := f.CreateTask(ctx, otherFirm.ID, nil, nil)

	caller := clientCaller(login.ID, "me@example.com", firm.ID)
	q, err := e.Apply(ctx, caller, &firm.ID, scope.ForCollection(scope.ColTasks), "tasks")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[ownTask.ID] {
		t.Error("firm default did not retain the firm's row")
	}
	if ids[foreignTask.ID] {
		t.Error("firm default leaked another tenant's row")
	}
}
