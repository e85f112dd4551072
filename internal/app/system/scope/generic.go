package scope

import (
	"context"

	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/normalize"
	"github.com/lexhub/lexhub/internal/app/system/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// applyGeneric is the capability fallback for authenticated callers whose
// role set matched no class. Visibility is decided by module-wide
// capability names (manage-own-X / manage-any-X / manage-X / view-X, with
// underscores in the module name normalized to hyphens).
//
// A capability the caller does not hold — including one that was never
// registered anywhere — is an ordinary "no", never an error.
func (e *Engine) applyGeneric(ctx context.Context, c authz.Caller, q Query, module string) (Query, error) {
	m := normalize.Module(module)
	hasCreatedBy := schema.HasField(q.Collection, "created_by")

	switch {
	case c.Can("manage-own-" + m):
		if !hasCreatedBy {
			// No ownership column to narrow on; documented unnarrowed
			// fallback.
			return q, nil
		}
		return q.Where(bson.M{"created_by": c.ID}), nil

	case c.Can("manage-any-"+m), c.Can("manage-"+m):
		if !hasCreatedBy {
			return q, nil
		}
		creators, err := e.firmCreatorIDs(ctx, c)
		if err != nil {
			return q, err
		}
		return q.Where(bson.M{"created_by": bson.M{"$in": creators}}), nil

	case c.Can("view-" + m):
		if !hasCreatedBy {
			return q, nil
		}
		return q.Where(bson.M{"created_by": c.ID}), nil

	default:
		return q.MatchNone(), nil
	}
}

// firmCreatorIDs is the creator set for firm-wide manage capabilities: the
// caller's firm plus every user that firm created. A caller with no
// resolvable firm narrows to itself only.
func (e *Engine) firmCreatorIDs(ctx context.Context, c authz.Caller) ([]primitive.ObjectID, error) {
	firmID := c.FirmID()
	if firmID == nil {
		return []primitive.ObjectID{c.ID}, nil
	}
	users, err := e.distinctIDs(ctx, ColUsers, "_id", bson.M{"created_by": *firmID})
	if err != nil {
		return nil, err
	}
	return append(users, *firmID), nil
}
