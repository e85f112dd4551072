package scope

import (
	"context"

	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// clientRule narrows a query for a client-role caller whose linked client
// record has already been resolved (the missing-record case short-circuits
// to zero rows before any rule runs).
type clientRule func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error)

// buildClientRules registers the per-collection visibility rules for client
// callers. Each rule is the one place its collection's client-facing
// predicate lives; transitive visibility goes through ID-set prefetches.
func buildClientRules() map[string]clientRule {
	return map[string]clientRule{
		ColCases: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{"client_id": cl.ID}), nil
		},

		// Case children: visible through the owning case.
		ColCaseDocuments: clientCaseChild,
		ColCaseTimeline:  clientCaseChild,
		ColHearings:      clientCaseChild,

		ColCaseNotes: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			// Three conditions, all required: not private, authored by the
			// client's firm (owner or staff), and tagging at least one of
			// the client's cases.
			staff, err := e.staffIDs(ctx, cl.CreatedBy)
			if err != nil {
				return q, err
			}
			caseIDs, err := e.clientCaseIDs(ctx, cl.ID)
			if err != nil {
				return q, err
			}
			return q.Where(bson.M{
				"is_private": false,
				"created_by": bson.M{"$in": append(staff, cl.CreatedBy)},
				"case_ids":   bson.M{"$in": hexIDs(caseIDs)},
			}), nil
		},

		ColClientDocuments: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{"client_id": cl.ID}), nil
		},
		ColClientBillingInfo: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{"client_id": cl.ID}), nil
		},

		// Currencies are firm-level, shared by all of the firm's clients.
		ColBillingCurrencies: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{"created_by": cl.CreatedBy}), nil
		},

		ColTimeEntries: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			caseIDs, err := e.clientCaseIDs(ctx, cl.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"client_id": cl.ID},
				bson.M{"case_id": bson.M{"$in": caseIDs}},
			)), nil
		},

		ColExpenses: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			// Firm expense AND tied to one of this client's cases; the
			// firm-level default scope does not apply here.
			caseIDs, err := e.clientCaseIDs(ctx, cl.ID)
			if err != nil {
				return q, err
			}
			return q.Where(bson.M{
				"created_by": cl.CreatedBy,
				"case_id":    bson.M{"$in": caseIDs},
			}), nil
		},

		ColInvoices: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{"client_id": cl.ID}), nil
		},

		ColPayments: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			invoiceIDs, err := e.clientInvoiceIDs(ctx, cl.ID)
			if err != nil {
				return q, err
			}
			return q.Where(bson.M{"invoice_id": bson.M{"$in": invoiceIDs}}), nil
		},

		// Messages are addressed to the login, not the client record.
		ColMessages: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(anyOf(
				bson.M{"sender_id": c.ID},
				bson.M{"recipient_id": c.ID},
			)), nil
		},

		ColConversations: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{
				"company_id":      cl.CreatedBy,
				"participant_ids": c.ID.Hex(),
			}), nil
		},

		ColKnowledgeArticles: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{
				"status":     "published",
				"is_public":  true,
				"created_by": cl.CreatedBy,
			}), nil
		},

		ColLegalPrecedents: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			return q.Where(bson.M{"status": true}), nil
		},

		ColDocuments: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			granted, err := e.grantedDocumentIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"created_by": cl.CreatedBy},
				bson.M{"_id": bson.M{"$in": granted}},
			)), nil
		},

		ColDocumentComments: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			granted, err := e.grantedDocumentIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"created_by": cl.CreatedBy},
				bson.M{"document_id": bson.M{"$in": granted}},
			)), nil
		},

		ColCalendarEvents: func(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
			caseIDs, err := e.clientCaseIDs(ctx, cl.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"client_id": cl.ID},
				bson.M{"case_id": bson.M{"$in": caseIDs}},
			)), nil
		},
	}
}

// clientCaseChild scopes a case-linked child collection to the client's
// cases.
func clientCaseChild(ctx context.Context, e *Engine, c authz.Caller, cl *models.Client, q Query) (Query, error) {
	caseIDs, err := e.clientCaseIDs(ctx, cl.ID)
	if err != nil {
		return q, err
	}
	return q.Where(bson.M{"case_id": bson.M{"$in": caseIDs}}), nil
}
