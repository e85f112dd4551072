// internal/app/features/notes/create.go
package notes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	IsPrivate bool     `json:"is_private"`
	CaseIDs   []string `json:"case_ids"`
}

// ServeCreate handles POST /notes. Every tagged case must be visible to the
// author; a note cannot reach into cases outside the caller's scope.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode note body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	caseIDs := make([]primitive.ObjectID, 0, len(req.CaseIDs))
	for _, hex := range req.CaseIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			uierrors.JSONError(w, http.StatusBadRequest, "Invalid case id: "+hex)
			return
		}
		if !h.caseVisible(ctx, r, id) {
			h.ErrLog.LogNotFound(w, r, "Case not found.")
			return
		}
		caseIDs = append(caseIDs, id)
	}

	n, err := h.Store.Create(ctx, caller.ID, req.Title, req.Body, req.IsPrivate, caseIDs...)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create note failed", err, "Unable to create note.")
		return
	}

	h.Log.Info("note created", zap.String("note_id", n.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, noteRow{
		ID:        n.ID,
		Title:     n.Title,
		CaseIDs:   n.CaseIDs,
		IsPrivate: n.IsPrivate,
		CreatedBy: n.CreatedBy,
		UpdatedAt: n.UpdatedAt,
	})
}

// ServeSetPrivate handles PUT /notes/{noteID}/privacy.
func (h *Handler) ServeSetPrivate(w http.ResponseWriter, r *http.Request) {
	noteID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "noteID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Note not found.")
		return
	}

	var req struct {
		IsPrivate bool `json:"is_private"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode privacy body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.noteVisible(ctx, r, noteID) {
		h.ErrLog.LogNotFound(w, r, "Note not found.")
		return
	}

	if err := h.Store.SetPrivate(ctx, noteID, req.IsPrivate); err != nil {
		h.ErrLog.LogServerError(w, r, "update note privacy failed", err, "Unable to update note.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) caseVisible(ctx context.Context, r *http.Request, caseID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r, scope.ForCollection(scope.ColCases).Where(bson.M{"_id": caseID}), "cases")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}

func (h *Handler) noteVisible(ctx context.Context, r *http.Request, noteID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r, scope.ForCollection(scope.ColCaseNotes).Where(bson.M{"_id": noteID}), "case_notes")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}
