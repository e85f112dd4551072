package scope_test

import (
	"testing"
	"time"

	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scenario B: a team member sees only the cases they are assigned to, even
// within their own firm.
func TestTeamScope_Cases(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")
	cl := f.CreateClient(ctx, firm.ID, "Acme", "acme@example.com")

	assigned := f.CreateCase(ctx, firm.ID, cl.ID, "Assigned", ada.ID)
	unassigned := f.CreateCase(ctx, firm.ID, cl.ID, "Unassigned")

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColCases), "cases")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[assigned.ID] {
		t.Errorf("expected only the assigned case, got %v", ids)
	}
	if ids[unassigned.ID] {
		t.Error("unassigned case within the firm visible to team member")
	}
}

// Case children follow case assignment.
func TestTeamScope_CaseDocuments(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")
	cl := f.CreateClient(ctx, firm.ID, "Acme", "acme@example.com")

	assigned := f.CreateCase(ctx, firm.ID, cl.ID, "Assigned", ada.ID)
	unassigned := f.CreateCase(ctx, firm.ID, cl.ID, "Unassigned")
	visible := f.CreateCaseDocument(ctx, firm.ID, assigned.ID, "brief")
	hidden := f.CreateCaseDocument(ctx, firm.ID, unassigned.ID, "other brief")

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColCaseDocuments), "case_documents")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[visible.ID] {
		t.Errorf("expected only the assigned case's document, got %v", ids)
	}
	if ids[hidden.ID] {
		t.Error("document on an unassigned case visible")
	}
}

// Tasks: assigned directly, or attached to an assigned case.
func TestTeamScope_Tasks(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")
	bob := f.CreateTeamMember(ctx, firm.ID, "bob")
	cl := f.CreateClient(ctx, firm.ID, "Acme", "acme@example.com")
	adaCase := f.CreateCase(ctx, firm.ID, cl.ID, "Ada's", ada.ID)

	direct := f.CreateTask(ctx, firm.ID, &ada.ID, nil)
	viaCase := f.CreateTask(ctx, firm.ID, &bob.ID, &adaCase.ID)
	neither := f.CreateTask(ctx, firm.ID, &bob.ID, nil)

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColTasks), "tasks")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[direct.ID] || !ids[viaCase.ID] {
		t.Errorf("expected direct and case-linked tasks, got %v", ids)
	}
	if ids[neither.ID] {
		t.Error("task with no link to the caller visible")
	}
}

// Clients are reachable only through shared casework.
func TestTeamScope_Clients(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")

	shared := f.CreateClient(ctx, firm.ID, "Shared", "shared@example.com")
	unrelated := f.CreateClient(ctx, firm.ID, "Unrelated", "unrelated@example.com")
	f.CreateCase(ctx, firm.ID, shared.ID, "Joint matter", ada.ID)
	f.CreateCase(ctx, firm.ID, unrelated.ID, "Someone else's matter")

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColClients), "clients")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[shared.ID] {
		t.Errorf("expected only the shared-case client, got %v", ids)
	}
	if ids[unrelated.ID] {
		t.Error("client without shared casework visible to team member")
	}
}

// Team members see sibling users under the same firm and nobody else.
func TestTeamScope_Users(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")
	bob := f.CreateTeamMember(ctx, firm.ID, "bob")
	stranger := f.CreateTeamMember(ctx, otherFirm.ID, "stranger")

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColUsers), "users")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[ada.ID] || !ids[bob.ID] {
		t.Errorf("expected firm siblings visible, got %v", ids)
	}
	if ids[stranger.ID] || ids[otherFirm.ID] {
		t.Error("user outside the firm visible to team member")
	}
}

// Documents: firm-owned, or shared through an unexpired grant.
func TestTeamScope_DocumentsAndGrants(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")

	firmDoc := f.CreateDocument(ctx, firm.ID, "internal memo")
	sharedDoc := f.CreateDocument(ctx, otherFirm.ID, "shared exhibit")
	expiredDoc := f.CreateDocument(ctx, otherFirm.ID, "stale exhibit")

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)
	f.CreateGrant(ctx, otherFirm.ID, sharedDoc.ID, ada.ID, &future)
	f.CreateGrant(ctx, otherFirm.ID, expiredDoc.ID, ada.ID, &past)

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColDocuments), "documents")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[firmDoc.ID] || !ids[sharedDoc.ID] {
		t.Errorf("expected firm document and live grant, got %v", ids)
	}
	if ids[expiredDoc.ID] {
		t.Error("expired grant still exposes the document")
	}
}

// The grants list itself shows only the caller's own unexpired grants.
func TestTeamScope_DocumentPermissions(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")
	bob := f.CreateTeamMember(ctx, firm.ID, "bob")
	doc := f.CreateDocument(ctx, firm.ID, "exhibit")

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)
	live := f.CreateGrant(ctx, firm.ID, doc.ID, ada.ID, &future)
	expired := f.CreateGrant(ctx, firm.ID, doc.ID, ada.ID, &past)
	bobs := f.CreateGrant(ctx, firm.ID, doc.ID, bob.ID, &future)

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColDocumentPermissions), "document_permissions")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if len(ids) != 1 || !ids[live.ID] {
		t.Errorf("expected only the caller's live grant, got %v", ids)
	}
	if ids[expired.ID] || ids[bobs.ID] {
		t.Error("expired or foreign grant visible")
	}
}

// A team member whose record lost its firm linkage gets zero rows, never an
// unbounded query.
func TestTeamScope_MissingFirmFailsClosed(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	cl := f.CreateClient(ctx, firm.ID, "Acme", "acme@example.com")
	f.CreateCase(ctx, firm.ID, cl.ID, "Case")

	orphan := authz.NewCaller(primitive.NewObjectID(), "", "team_member", nil, []string{"team_member"}, nil)
	q, err := e.Apply(ctx, orphan, nil, scope.ForCollection(scope.ColCases), "cases")
	if err != nil {
		t.Fatalf("Apply must not error for a malformed team member: %v", err)
	}
	if ids := fetchIDs(t, ctx, db, q); len(ids) != 0 {
		t.Errorf("expected zero rows, got %d", len(ids))
	}
}

// Conversations: participating directly, or owned by the caller's firm.
func TestTeamScope_Conversations(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")

	participating := f.CreateConversation(ctx, otherFirm.ID, ada.ID)
	firmOwned := f.CreateConversation(ctx, firm.ID, firm.ID)
	foreign := f.CreateConversation(ctx, otherFirm.ID, otherFirm.ID)

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColConversations), "conversations")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[participating.ID] || !ids[firmOwned.ID] {
		t.Errorf("expected participating and firm-owned conversations, got %v", ids)
	}
	if ids[foreign.ID] {
		t.Error("foreign conversation visible")
	}
}

// Collections with a defined rule always take it; otherwise a firm-level
// default or unnarrowed fallback applies depending on the columns present.
func TestTeamScope_DefaultFirmColumn(t *testing.T) {
	db, f, ctx, cancel := setupScope(t)
	defer cancel()

	e := newEngine(db)

	firm := f.CreateFirmOwner(ctx, "Firm", "firm")
	otherFirm := f.CreateFirmOwner(ctx, "Other", "other")
	ada := f.CreateTeamMember(ctx, firm.ID, "ada")

	own := f.CreateExpense(ctx, firm.ID, nil)
	foreign := f.CreateExpense(ctx, otherFirm.ID, nil)

	q, err := e.Apply(ctx, teamCaller(ada.ID, firm.ID), &firm.ID, scope.ForCollection(scope.ColExpenses), "expenses")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ids := fetchIDs(t, ctx, db, q)
	if !ids[own.ID] {
		t.Error("firm default did not retain the firm's expense")
	}
	if ids[foreign.ID] {
		t.Error("firm default leaked another tenant's expense")
	}
}
