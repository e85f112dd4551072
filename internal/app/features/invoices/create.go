// internal/app/features/invoices/create.go
package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	invoicestore "github.com/lexhub/lexhub/internal/app/store/invoices"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	ClientID    string     `json:"client_id"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// ServeCreate handles POST /invoices. Routes restrict this to firm owners.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode invoice body failed", err, "Invalid request body.")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		uierrors.JSONError(w, http.StatusBadRequest, "A valid client_id is required.")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Store.Create(ctx, caller.ID, clientID, req.AmountCents, req.Currency, req.DueAt)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create invoice failed", err, "Unable to create invoice.")
		return
	}

	h.Log.Info("invoice created", zap.String("invoice_id", inv.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, invoiceRow{
		ID:          inv.ID,
		Number:      inv.Number,
		ClientID:    inv.ClientID,
		AmountCents: inv.AmountCents,
		Currency:    inv.Currency,
		Status:      inv.Status,
		DueAt:       inv.DueAt,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// ServeSetStatus handles PUT /invoices/{invoiceID}/status.
func (h *Handler) ServeSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Invoice not found.")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode status body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.SetStatus(ctx, id, req.Status); err != nil {
		h.ErrLog.LogBadRequest(w, r, "set invoice status failed", err, "Unable to update invoice.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type paymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

// ServeRecordPayment handles POST /invoices/{invoiceID}/payments.
func (h *Handler) ServeRecordPayment(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Invoice not found.")
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode payment body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.RecordPayment(ctx, caller.ID, id, req.AmountCents, req.Method)
	if errors.Is(err, invoicestore.ErrNotSent) {
		uierrors.JSONError(w, http.StatusConflict, "Invoice is not accepting payments.")
		return
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "record payment failed", err, "Unable to record payment.")
		return
	}

	h.Log.Info("payment recorded",
		zap.String("invoice_id", id.Hex()),
		zap.Int64("amount_cents", req.AmountCents))
	uierrors.RenderJSON(w, http.StatusCreated, map[string]string{"payment_id": p.ID.Hex()})
}
