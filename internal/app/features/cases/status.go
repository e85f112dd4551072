// internal/app/features/cases/status.go
package cases

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeSetStatus handles PUT /cases/{caseID}/status: moves the case between
// open, on_hold, closed, and archived, recording the transition on the case
// timeline.
func (h *Handler) ServeSetStatus(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	caseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "caseID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode status body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if !h.visible(ctx, r, caseID) {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}

	if err := h.Store.SetStatus(ctx, caseID, req.Status); err != nil {
		h.ErrLog.LogBadRequest(w, r, "set case status failed", err, "Unable to update case.")
		return
	}

	if _, err := h.Store.AddTimelineEntry(ctx, models.CaseTimelineEntry{
		CaseID:     caseID,
		Title:      "Status changed to " + req.Status,
		OccurredAt: time.Now(),
		CreatedBy:  caller.ID,
	}); err != nil {
		// The status change itself landed; the timeline gap is logged.
		h.Log.Warn("case timeline entry failed",
			zap.String("case_id", caseID.Hex()), zap.Error(err))
	}

	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
