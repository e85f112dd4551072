// internal/app/features/notes/list.go
package notes

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/paging"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type noteRow struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	CaseIDs   []string           `bson:"case_ids" json:"case_ids,omitempty"`
	IsPrivate bool               `bson:"is_private" json:"is_private"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type listResponse struct {
	Items      []noteRow `json:"items"`
	Total      int64     `json:"total"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
	PrevCursor string    `json:"prev_cursor,omitempty"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ServeList handles GET /notes. Results may optionally be limited to one
// case with ?case=<id>; visibility narrowing happens after that filter so a
// client never learns whether a hidden case has notes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	base := scope.ForCollection(scope.ColCaseNotes)
	if caseHex := r.URL.Query().Get("case"); caseHex != "" {
		if _, err := primitive.ObjectIDFromHex(caseHex); err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad case id on notes list", err, "Invalid case id.")
			return
		}
		base = base.Where(bson.M{"case_ids": caseHex})
	}

	narrowed, err := h.Engine.ApplyRequest(r, base, "case_notes")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow notes query failed", err, "Unable to load notes.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count notes failed", err, "Unable to load notes.")
		return
	}

	const sortField = "title"
	find := options.Find()
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(find, sortField)

	paged := narrowed
	if ks := cfg.KeysetWindow(sortField); ks != nil {
		paged = paged.Where(ks)
	}

	cur, err := h.DB.Collection(paged.Collection).Find(ctx, paged.Filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find notes failed", err, "Unable to load notes.")
		return
	}
	defer cur.Close(ctx)

	var rows []noteRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode notes failed", err, "Unable to load notes.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(n noteRow) string { return n.Title },
		func(n noteRow) primitive.ObjectID { return n.ID },
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
