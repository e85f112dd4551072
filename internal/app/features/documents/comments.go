// internal/app/features/documents/comments.go
package documents

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/htmlsanitize"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentResponse struct {
	ID        primitive.ObjectID `json:"id"`
	Body      string             `json:"body"`
	AuthorID  primitive.ObjectID `json:"author_id"`
	CreatedAt time.Time          `json:"created_at"`
}

// ServeAddComment handles POST /documents/{documentID}/comments. Any caller
// who can see the document may comment on it.
func (h *Handler) ServeAddComment(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	docID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "documentID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode comment body failed", err, "Invalid request body.")
		return
	}
	body := htmlsanitize.StripTags(req.Body)
	if body == "" {
		uierrors.JSONError(w, http.StatusBadRequest, "Comment body is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, docID) {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	firmID := caller.ID
	if f := caller.FirmID(); f != nil {
		firmID = *f
	}
	c, err := h.Store.AddComment(ctx, firmID, docID, caller.ID, body)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add document comment failed", err, "Unable to add comment.")
		return
	}

	uierrors.RenderJSON(w, http.StatusCreated, commentResponse{
		ID:        c.ID,
		Body:      c.Body,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
	})
}
