// internal/app/features/cases/list.go
package cases

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

type caseRow struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	TitleCI      string             `bson:"title_ci" json:"-"`
	CaseNumber   string             `bson:"case_number" json:"case_number"`
	ClientID     primitive.ObjectID `bson:"client_id" json:"client_id"`
	PracticeArea string             `bson:"practice_area" json:"practice_area,omitempty"`
	Status       string             `bson:"status" json:"status"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type listResponse struct {
	Items      []caseRow `json:"items"`
	Total      int64     `json:"total"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
	PrevCursor string    `json:"prev_cursor,omitempty"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ServeList handles GET /cases (with optional ?q= title search). The
// caller's visibility is narrowed before the query runs; the handler never
// filters by role itself.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	base := scope.ForCollection(scope.ColCases)
	if fq := text.Fold(q); fq != "" {
		base = base.Where(bson.M{"title_ci": bson.M{"$gte": fq, "$lt": fq + "￿"}})
	}

	narrowed, err := h.Engine.ApplyRequest(r, base, "cases")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow cases query failed", err, "Unable to load cases.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count cases failed", err, "Unable to load cases.")
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
		h.ErrLog.LogServerError(w, r, "find cases failed", err, "Unable to load cases.")
		return
	}
	defer cur.Close(ctx)

	var rows []caseRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode cases failed", err, "Unable to load cases.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(c caseRow) string { return c.TitleCI },
		func(c caseRow) primitive.ObjectID { return c.ID },
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
