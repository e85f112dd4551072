// internal/app/features/clients/list.go
package clients

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/text"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/paging"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type clientRow struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone,omitempty"`
	Status     string             `bson:"status" json:"status"`
}

type listResponse struct {
	Items      []clientRow `json:"items"`
	Total      int64       `json:"total"`
	HasPrev    bool        `json:"has_prev"`
	HasNext    bool        `json:"has_next"`
	PrevCursor string      `json:"prev_cursor,omitempty"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// ServeList handles GET /clients (with optional ?q= name search).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	base := scope.ForCollection(scope.ColClients)
	if fq := text.Fold(q); fq != "" {
		base = base.Where(bson.M{"full_name_ci": bson.M{"$gte": fq, "$lt": fq + "￿"}})
	}

	narrowed, err := h.Engine.ApplyRequest(r, base, "clients")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow clients query failed", err, "Unable to load clients.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count clients failed", err, "Unable to load clients.")
		return
	}

	const sortField = "full_name_ci"
	find := options.Find()
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(find, sortField)

	paged := narrowed
	if ks := cfg.KeysetWindow(sortField); ks != nil {
		paged = paged.Where(ks)
	}

	cur, err := h.DB.Collection(paged.Collection).Find(ctx, paged.Filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find clients failed", err, "Unable to load clients.")
		return
	}
	defer cur.Close(ctx)

	var rows []clientRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode clients failed", err, "Unable to load clients.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(c clientRow) string { return c.FullNameCI },
		func(c clientRow) primitive.ObjectID { return c.ID },
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
