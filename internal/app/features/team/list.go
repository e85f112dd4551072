// internal/app/features/team/list.go
package team

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/paging"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type memberRow struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Email       string             `bson:"email" json:"email"`
	Roles       []string           `bson:"roles" json:"roles"`
	Permissions []string           `bson:"permissions" json:"permissions,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type listResponse struct {
	Items      []memberRow `json:"items"`
	Total      int64       `json:"total"`
	HasPrev    bool        `json:"has_prev"`
	HasNext    bool        `json:"has_next"`
	PrevCursor string      `json:"prev_cursor,omitempty"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// ServeList handles GET /team. The users collection is narrowed like any
// other: owners see their staff, team members their firm siblings, clients
// nothing.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	narrowed, err := h.Engine.ApplyRequest(r, scope.ForCollection(scope.ColUsers), "users")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow users query failed", err, "Unable to load team.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count users failed", err, "Unable to load team.")
		return
	}

	const sortField = "email"
	find := options.Find()
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(find, sortField)

	paged := narrowed
	if ks := cfg.KeysetWindow(sortField); ks != nil {
		paged = paged.Where(ks)
	}

	cur, err := h.DB.Collection(paged.Collection).Find(ctx, paged.Filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find users failed", err, "Unable to load team.")
		return
	}
	defer cur.Close(ctx)

	var rows []memberRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode users failed", err, "Unable to load team.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(m memberRow) string { return m.Email },
		func(m memberRow) primitive.ObjectID { return m.ID },
	)

	uierrors.RenderJSON(w, http.StatusOK, listResponse{
		Items:      rows,
		Total:      total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		PrevCursor: prevCur,
		NextCursor: nextCur,
	})
}
