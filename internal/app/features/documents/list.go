// internal/app/features/documents/list.go
package documents

import (
	"context"
	"net/http"
	"time"

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

type documentRow struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	TitleCI   string             `bson:"title_ci" json:"-"`
	FileKey   string             `bson:"file_key" json:"file_key"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type listResponse struct {
	Items      []documentRow `json:"items"`
	Total      int64         `json:"total"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
	PrevCursor string        `json:"prev_cursor,omitempty"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ServeList handles GET /documents. Firm documents and documents shared in
// through grants arrive through the same narrowed query.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	base := scope.ForCollection(scope.ColDocuments)
	if fq := text.Fold(q); fq != "" {
		base = base.Where(bson.M{"title_ci": bson.M{"$gte": fq, "$lt": fq + "￿"}})
	}

	narrowed, err := h.Engine.ApplyRequest(r, base, "documents")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow documents query failed", err, "Unable to load documents.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count documents failed", err, "Unable to load documents.")
		return
	}

	const sortField = "title_ci"
	find := options.Find()
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(find, sortField)

	paged := narrowed
	if ks := cfg.KeysetWindow(sortField); ks != nil {
		paged = paged.Where(ks)
	}

	cur, err := h.DB.Collection(paged.Collection).Find(ctx, paged.Filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find documents failed", err, "Unable to load documents.")
		return
	}
	defer cur.Close(ctx)

	var rows []documentRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode documents failed", err, "Unable to load documents.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(d documentRow) string { return d.TitleCI },
		func(d documentRow) primitive.ObjectID { return d.ID },
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
