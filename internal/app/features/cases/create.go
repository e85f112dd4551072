// internal/app/features/cases/create.go
package cases

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	ClientID     string `json:"client_id"`
	Title        string `json:"title"`
	PracticeArea string `json:"practice_area"`
}

// ServeCreate handles POST /cases. Routes restrict this to firm owners, so
// the caller's own ID is the owning firm.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode case body failed", err, "Invalid request body.")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		uierrors.JSONError(w, http.StatusBadRequest, "A valid client_id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	k, err := h.Store.Create(ctx, caller.ID, clientID, req.Title, req.PracticeArea)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create case failed", err, "Unable to create case.")
		return
	}

	h.Log.Info("case created", zap.String("case_id", k.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, caseRow{
		ID:           k.ID,
		Title:        k.Title,
		CaseNumber:   k.CaseNumber,
		ClientID:     k.ClientID,
		PracticeArea: k.PracticeArea,
		Status:       k.Status,
		UpdatedAt:    k.UpdatedAt,
	})
}

// ServeAssign handles PUT /cases/{caseID}/team/{userID}: adds a team member
// to the case, which is what makes the case visible to them.
func (h *Handler) ServeAssign(w http.ResponseWriter, r *http.Request) {
	caseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "caseID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		uierrors.JSONError(w, http.StatusBadRequest, "A valid user id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// The case must be visible to the caller before it can be staffed.
	if !h.visible(ctx, r, caseID) {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}

	if err := h.Store.AssignTeamMember(ctx, caseID, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "assign team member failed", err, "Unable to update case team.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

// ServeUnassign handles DELETE /cases/{caseID}/team/{userID}.
func (h *Handler) ServeUnassign(w http.ResponseWriter, r *http.Request) {
	caseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "caseID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		uierrors.JSONError(w, http.StatusBadRequest, "A valid user id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, caseID) {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}

	if err := h.Store.RemoveTeamMember(ctx, caseID, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "remove team member failed", err, "Unable to update case team.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": "unassigned"})
}

// visible reports whether the case is inside the caller's narrowed scope.
func (h *Handler) visible(ctx context.Context, r *http.Request, caseID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r, forCase(caseID), "cases")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}
