package scope

import (
	"context"
	"time"

	"github.com/lexhub/lexhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// teamRule narrows a query for a team-member caller. companyID is the
// caller's owning firm (created_by), already verified non-nil by dispatch.
type teamRule func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error)

// buildTeamRules registers the per-collection visibility rules for team
// members. The recurring shape is "mine directly, or through a case I am
// assigned to".
func buildTeamRules() map[string]teamRule {
	return map[string]teamRule{
		ColTasks: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			caseIDs, err := e.teamCaseIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"assigned_to": c.ID},
				bson.M{"case_id": bson.M{"$in": caseIDs}},
			)), nil
		},

		ColCalendarEvents: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(anyOf(
				bson.M{"created_by": c.ID},
				bson.M{"assigned_to": c.ID},
				bson.M{"attendee_ids": c.ID},
			)), nil
		},

		ColTimeEntries: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			caseIDs, err := e.teamCaseIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"user_id": c.ID},
				bson.M{"case_id": bson.M{"$in": caseIDs}},
			)), nil
		},

		ColCases: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(bson.M{"team_member_ids": c.ID}), nil
		},

		// Case children: visible through assigned cases.
		ColCaseDocuments:        teamCaseChild,
		ColCaseTimeline:         teamCaseChild,
		ColHearings:             teamCaseChild,
		ColResearchProjects:     teamCaseChild,
		ColHearingNotifications: teamCaseChild,

		ColCaseNotes: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			// Same creator set a firm owner sees, keyed off this caller's
			// firm: the owner plus its staff.
			staff, err := e.staffIDs(ctx, companyID)
			if err != nil {
				return q, err
			}
			return q.Where(bson.M{"created_by": bson.M{"$in": append(staff, companyID)}}), nil
		},

		// Clients are reachable only through shared casework.
		ColClients: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			clientIDs, err := e.teamClientIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(bson.M{"_id": bson.M{"$in": clientIDs}}), nil
		},
		ColClientDocuments:   teamClientChild,
		ColClientBillingInfo: teamClientChild,

		ColDocuments: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			granted, err := e.grantedDocumentIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"created_by": companyID},
				bson.M{"_id": bson.M{"$in": granted}},
			)), nil
		},

		ColDocumentComments: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			granted, err := e.grantedDocumentIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(anyOf(
				bson.M{"created_by": companyID},
				bson.M{"document_id": bson.M{"$in": granted}},
			)), nil
		},

		ColDocumentPermissions: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(bson.M{"user_id": c.ID}).Where(activeGrantExpiry(time.Now())), nil
		},

		ColBillingRates: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(bson.M{"created_by": companyID}), nil
		},

		ColKnowledgeArticles: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(bson.M{
				"status":     "published",
				"is_public":  true,
				"created_by": companyID,
			}), nil
		},

		ColLegalPrecedents: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(bson.M{"created_by": companyID}), nil
		},

		ColMessages: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(anyOf(
				bson.M{"sender_id": c.ID},
				bson.M{"recipient_id": c.ID},
				bson.M{"company_id": companyID},
			)), nil
		},

		ColConversations: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(anyOf(
				bson.M{"participant_ids": c.ID.Hex()},
				bson.M{"company_id": companyID},
			)), nil
		},

		// Sibling users under the same firm.
		ColUsers: func(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
			return q.Where(bson.M{"created_by": companyID}), nil
		},
	}
}

// teamCaseChild scopes a case-linked child collection to the caller's
// assigned cases.
func teamCaseChild(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
	caseIDs, err := e.teamCaseIDs(ctx, c.ID)
	if err != nil {
		return q, err
	}
	return q.Where(bson.M{"case_id": bson.M{"$in": caseIDs}}), nil
}

// teamClientChild scopes a client-linked child collection to clients
// reachable through the caller's assigned cases.
func teamClientChild(ctx context.Context, e *Engine, c authz.Caller, companyID primitive.ObjectID, q Query) (Query, error) {
	clientIDs, err := e.teamClientIDs(ctx, c.ID)
	if err != nil {
		return q, err
	}
	return q.Where(bson.M{"client_id": bson.M{"$in": clientIDs}}), nil
}
