// internal/app/features/cases/detail.go
package cases

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeDetail handles GET /cases/{caseID}. The narrowed filter decides
// whether the row exists for this caller; rows outside the caller's scope
// answer 404, indistinguishable from rows that are not there.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "caseID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	narrowed, err := h.Engine.ApplyRequest(r, forCase(id), "cases")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow case query failed", err, "Unable to load case.")
		return
	}

	var k models.Case
	err = h.DB.Collection(narrowed.Collection).FindOne(ctx, narrowed.Filter).Decode(&k)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "Case not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load case failed", err, "Unable to load case.")
		return
	}

	uierrors.RenderJSON(w, http.StatusOK, caseRow{
		ID:           k.ID,
		Title:        k.Title,
		CaseNumber:   k.CaseNumber,
		ClientID:     k.ClientID,
		PracticeArea: k.PracticeArea,
		Status:       k.Status,
		UpdatedAt:    k.UpdatedAt,
	})
}
