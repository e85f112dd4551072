// Package schema is a static registry of collection field layouts.
//
// Mongo enforces no schema, so the application declares which fields each
// collection carries. The scope layer checks HasField before narrowing by
// created_by: a collection without the field degrades to the documented
// unnarrowed fallback instead of producing a filter that matches nothing it
// should.
package schema

// fields maps collection name to the set of filterable field names the
// application writes. Only fields the scope layer inspects need to be
// listed.
var fields = map[string]map[string]struct{}{
	"users":                 set("created_by", "email", "roles", "type", "status"),
	"firms":                 set("subdomain", "status"),
	"clients":               set("created_by", "email", "status"),
	"cases":                 set("created_by", "client_id", "team_member_ids", "status"),
	"case_notes":            set("created_by", "case_ids", "is_private"),
	"case_documents":        set("created_by", "case_id"),
	"case_timeline":         set("created_by", "case_id"),
	"research_projects":     set("created_by", "case_id"),
	"hearings":              set("created_by", "case_id"),
	"hearing_notifications": set("case_id", "hearing_id"),
	"tasks":                 set("created_by", "case_id", "assigned_to"),
	"calendar_events":       set("created_by", "case_id", "client_id", "assigned_to", "attendee_ids"),
	"time_entries":          set("created_by", "user_id", "case_id", "client_id"),
	"expenses":              set("created_by", "case_id"),
	"invoices":              set("created_by", "client_id", "status"),
	"payments":              set("invoice_id"),
	"client_documents":      set("created_by", "client_id"),
	"client_billing_info":   set("created_by", "client_id"),
	"billing_currencies":    set("created_by", "code"),
	"billing_rates":         set("created_by"),
	"documents":             set("created_by"),
	"document_permissions":  set("created_by", "document_id", "user_id", "expires_at"),
	"document_comments":     set("created_by", "document_id", "author_id"),
	"messages":              set("sender_id", "recipient_id", "company_id"),
	"conversations":         set("company_id", "participant_ids"),
	"knowledge_articles":    set("created_by", "status", "is_public"),
	"legal_precedents":      set("created_by", "status"),
}

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// HasField reports whether the named collection declares the field.
// Unknown collections have no declared fields.
func HasField(collection, field string) bool {
	f, ok := fields[collection]
	if !ok {
		return false
	}
	_, ok = f[field]
	return ok
}

// Known reports whether the collection is declared at all.
func Known(collection string) bool {
	_, ok := fields[collection]
	return ok
}
