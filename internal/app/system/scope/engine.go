// Package scope narrows list queries to the rows the caller may see.
//
// Every list/read of a permission-scoped collection passes its unexecuted
// query through Engine.Apply (or ApplyRequest from a handler) before
// pagination. The engine classifies the caller once, then dispatches:
//
//	unauthenticated  -> unchanged (the auth gate upstream is the primary gate)
//	superadmin       -> unchanged (full visibility)
//	company          -> created_by == caller, plus the team for case notes
//	client           -> per-collection client rules via the linked client record
//	team member      -> per-collection team rules via case/document assignment
//	anything else    -> module capability fallback (manage-own / manage-any / view)
//
// Uncertain states fail closed to zero rows. The only errors Apply returns
// are database failures during relationship prefetches; an authorization
// "no" is never an error.
package scope

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/normalize"
	"github.com/lexhub/lexhub/internal/app/system/schema"
	"github.com/lexhub/lexhub/internal/app/system/tenant"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Engine applies per-collection visibility rules. The rule registries are
// built once in NewEngine; dispatch is a map lookup, not a class-name
// switch, so a missing rule is visible in one place (and in the registry
// coverage test).
type Engine struct {
	db          *mongo.Database
	log         *zap.Logger
	clientRules map[string]clientRule
	teamRules   map[string]teamRule
}

// NewEngine builds the engine and its rule registries.
func NewEngine(db *mongo.Database, logger *zap.Logger) *Engine {
	return &Engine{
		db:          db,
		log:         logger,
		clientRules: buildClientRules(),
		teamRules:   buildTeamRules(),
	}
}

// ApplyRequest is the handler-facing entry point: it assembles the caller
// and firm context from the request and narrows q for the named module.
func (e *Engine) ApplyRequest(r *http.Request, q Query, module string) (Query, error) {
	return e.Apply(r.Context(), authz.FromRequest(r), tenant.CurrentFirmID(r), q, module)
}

// Apply narrows q to the rows the caller may see. firmID is the active
// tenant established by the tenant middleware (nil for apex/superadmin
// traffic). module names the capability family used by the generic
// fallback, e.g. "cases" or "time_entries".
func (e *Engine) Apply(ctx context.Context, c authz.Caller, firmID *primitive.ObjectID, q Query, module string) (Query, error) {
	switch class := authz.Classify(c); class {
	case authz.Unauthenticated:
		// Second line of defense only; the route-level auth gate decides.
		return q, nil

	case authz.Superadmin:
		return q, nil

	case authz.Company:
		if q.Collection == ColCaseNotes {
			staff, err := e.staffIDs(ctx, c.ID)
			if err != nil {
				return q, err
			}
			return q.Where(bson.M{"created_by": bson.M{"$in": append(staff, c.ID)}}), nil
		}
		return q.Where(bson.M{"created_by": c.ID}), nil

	case authz.Client:
		cl, err := e.clientByEmail(ctx, c.Email)
		if err != nil {
			return q, err
		}
		if cl == nil {
			// No client record matches this login: zero rows everywhere.
			return q.MatchNone(), nil
		}
		return e.applyClient(ctx, c, cl, firmID, q)

	case authz.TeamMember:
		return e.applyTeam(ctx, c, firmID, q)

	default:
		return e.applyGeneric(ctx, c, q, module)
	}
}

func (e *Engine) applyClient(ctx context.Context, c authz.Caller, cl *models.Client, firmID *primitive.ObjectID, q Query) (Query, error) {
	if rule, ok := e.clientRules[q.Collection]; ok {
		return rule(ctx, e, c, cl, q)
	}
	// Unlisted collection: firm-level default.
	owner := cl.CreatedBy
	if firmID != nil {
		owner = *firmID
	}
	return q.Where(bson.M{"created_by": owner}), nil
}

func (e *Engine) applyTeam(ctx context.Context, c authz.Caller, firmID *primitive.ObjectID, q Query) (Query, error) {
	if c.CreatedBy == nil {
		// A team member with no firm lineage is malformed; fail closed
		// rather than guess a tenant boundary.
		e.log.Warn("team member without created_by; denying visibility",
			zap.String("user_id", c.ID.Hex()),
			zap.String("collection", q.Collection))
		return q.MatchNone(), nil
	}
	if rule, ok := e.teamRules[q.Collection]; ok {
		return rule(ctx, e, c, *c.CreatedBy, q)
	}
	// Unlisted collection: firm-level default when the collection carries
	// created_by, otherwise deliberately unnarrowed.
	if schema.HasField(q.Collection, "created_by") {
		owner := *c.CreatedBy
		if firmID != nil {
			owner = *firmID
		}
		return q.Where(bson.M{"created_by": owner}), nil
	}
	return q, nil
}

/*──────────────────────────────────────────────────────────────────────────*
| Relationship prefetches                                                   |
*──────────────────────────────────────────────────────────────────────────*/

// clientByEmail resolves the client record linked to a client-role login.
// Returns (nil, nil) when no record matches; that is fail-closed, not an
// error.
func (e *Engine) clientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var cl models.Client
	err := e.db.Collection(ColClients).FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&cl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// staffIDs returns the IDs of team-member users created by the given firm
// owner.
func (e *Engine) staffIDs(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	return e.distinctIDs(ctx, ColUsers, "_id", bson.M{
		"created_by": owner,
		"type":       "team_member",
	})
}

// clientCaseIDs returns the IDs of cases belonging to a client.
func (e *Engine) clientCaseIDs(ctx context.Context, clientID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return e.distinctIDs(ctx, ColCases, "_id", bson.M{"client_id": clientID})
}

// teamCaseIDs returns the IDs of cases the user is a team member on.
func (e *Engine) teamCaseIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return e.distinctIDs(ctx, ColCases, "_id", bson.M{"team_member_ids": userID})
}

// teamClientIDs returns the IDs of clients that own any case the user is a
// team member on.
func (e *Engine) teamClientIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return e.distinctIDs(ctx, ColCases, "client_id", bson.M{"team_member_ids": userID})
}

// clientInvoiceIDs returns the IDs of invoices billed to a client.
func (e *Engine) clientInvoiceIDs(ctx context.Context, clientID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return e.distinctIDs(ctx, ColInvoices, "_id", bson.M{"client_id": clientID})
}

// grantedDocumentIDs returns documents the user holds an unexpired
// permission grant for. Expired grants are excluded here, at the source,
// so no positive-visibility predicate ever sees them.
func (e *Engine) grantedDocumentIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return e.distinctIDs(ctx, ColDocumentPermissions, "document_id", bson.M{
		"user_id": userID,
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now()}},
		},
	})
}

// distinctIDs collects the distinct ObjectID values of field across the
// documents matching filter.
func (e *Engine) distinctIDs(ctx context.Context, collection, field string, filter bson.M) ([]primitive.ObjectID, error) {
	raw, err := e.db.Collection(collection).Distinct(ctx, field, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// hexIDs renders ObjectIDs as their hex form for serialized-id-list
// containment checks (case_ids, participant_ids).
func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// activeGrantExpiry matches unexpired grants: expires_at absent/null, or in
// the future.
func activeGrantExpiry(now time.Time) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"expires_at": nil},
		bson.M{"expires_at": bson.M{"$gt": now}},
	}}
}
