// internal/app/features/knowledge/precedents.go
package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/paging"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type precedentRow struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Citation  string             `bson:"citation" json:"citation"`
	Summary   string             `bson:"summary" json:"summary,omitempty"`
	Public    bool               `bson:"status" json:"public"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type precedentList struct {
	Items      []precedentRow `json:"items"`
	Total      int64          `json:"total"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
	PrevCursor string         `json:"prev_cursor,omitempty"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// ServePrecedents handles GET /knowledge/precedents.
func (h *Handler) ServePrecedents(w http.ResponseWriter, r *http.Request) {
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	narrowed, err := h.Engine.ApplyRequest(r,
		scope.ForCollection(scope.ColLegalPrecedents), "legal_precedents")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow precedents query failed", err, "Unable to load precedents.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count precedents failed", err, "Unable to load precedents.")
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
		h.ErrLog.LogServerError(w, r, "find precedents failed", err, "Unable to load precedents.")
		return
	}
	defer cur.Close(ctx)

	var rows []precedentRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode precedents failed", err, "Unable to load precedents.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(p precedentRow) string { return p.Title },
		func(p precedentRow) primitive.ObjectID { return p.ID },
	)

	uierrors.RenderJSON(w, http.StatusOK, precedentList{
		Items:      rows,
		Total:      total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		PrevCursor: prevCur,
		NextCursor: nextCur,
	})
}

type precedentRequest struct {
	Title    string `json:"title"`
	Citation string `json:"citation"`
	Summary  string `json:"summary"`
	Public   bool   `json:"public"`
}

// ServeAddPrecedent handles POST /knowledge/precedents. Owner only.
func (h *Handler) ServeAddPrecedent(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req precedentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode precedent body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.AddPrecedent(ctx, caller.ID, req.Title, req.Citation, req.Summary, req.Public)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "add precedent failed", err, "Unable to file precedent.")
		return
	}

	h.Log.Info("precedent filed", zap.String("precedent_id", p.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, precedentRow{
		ID:        p.ID,
		Title:     p.Title,
		Citation:  p.Citation,
		Summary:   p.Summary,
		Public:    p.Status,
		CreatedAt: p.CreatedAt,
	})
}
