// internal/app/features/invoices/list.go
package invoices

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

type invoiceRow struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Number      string             `bson:"number" json:"number"`
	ClientID    primitive.ObjectID `bson:"client_id" json:"client_id"`
	AmountCents int64              `bson:"amount_cents" json:"amount_cents"`
	Currency    string             `bson:"currency" json:"currency"`
	Status      string             `bson:"status" json:"status"`
	DueAt       *time.Time         `bson:"due_at" json:"due_at,omitempty"`
}

type listResponse struct {
	Items      []invoiceRow `json:"items"`
	Total      int64        `json:"total"`
	HasPrev    bool         `json:"has_prev"`
	HasNext    bool         `json:"has_next"`
	PrevCursor string       `json:"prev_cursor,omitempty"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// ServeList handles GET /invoices. Clients arrive here too; narrowing
// confines them to their own invoices.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	before, after := paging.Cursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	narrowed, err := h.Engine.ApplyRequest(r, scope.ForCollection(scope.ColInvoices), "invoices")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow invoices query failed", err, "Unable to load invoices.")
		return
	}

	total, err := h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count invoices failed", err, "Unable to load invoices.")
		return
	}

	const sortField = "number"
	find := options.Find()
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(find, sortField)

	paged := narrowed
	if ks := cfg.KeysetWindow(sortField); ks != nil {
		paged = paged.Where(ks)
	}

	cur, err := h.DB.Collection(paged.Collection).Find(ctx, paged.Filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find invoices failed", err, "Unable to load invoices.")
		return
	}
	defer cur.Close(ctx)

	var rows []invoiceRow
	if err := cur.All(ctx, &rows); err != nil {
		h.ErrLog.LogServerError(w, r, "decode invoices failed", err, "Unable to load invoices.")
		return
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	page := paging.TrimPage(&rows, before, after)
	prevCur, nextCur := paging.BuildCursors(rows,
		func(i invoiceRow) string { return i.Number },
		func(i invoiceRow) primitive.ObjectID { return i.ID },
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
