// internal/app/features/notes/detail.go
package notes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type noteDetail struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	CaseIDs   []string           `bson:"case_ids" json:"case_ids,omitempty"`
	IsPrivate bool               `bson:"is_private" json:"is_private"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// ServeDetail handles GET /notes/{noteID}. An out-of-scope note answers 404,
// the same as one that does not exist.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	noteID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "noteID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Note not found.")
		return
	}

	q, err := h.Engine.ApplyRequest(r,
		scope.ForCollection(scope.ColCaseNotes).Where(bson.M{"_id": noteID}), "case_notes")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "narrow note query failed", err, "Unable to load note.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var n noteDetail
	if err := h.DB.Collection(q.Collection).FindOne(ctx, q.Filter).Decode(&n); err != nil {
		h.ErrLog.LogNotFound(w, r, "Note not found.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, n)
}
