// internal/app/features/clients/update.go
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	clientstore "github.com/lexhub/lexhub/internal/app/store/clients"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeUpdate handles PUT /clients/{clientID}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	clientID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "clientID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Client not found.")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode client body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, clientID) {
		h.ErrLog.LogNotFound(w, r, "Client not found.")
		return
	}

	err = h.Store.Update(ctx, clientID, req.FullName, req.Email, req.Phone)
	if errors.Is(err, clientstore.ErrDuplicateEmail) {
		uierrors.JSONError(w, http.StatusConflict, "A client with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "update client failed", err, "Unable to update client.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// visible reports whether the client record is inside the caller's narrowed
// scope.
func (h *Handler) visible(ctx context.Context, r *http.Request, clientID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r,
		scope.ForCollection(scope.ColClients).Where(bson.M{"_id": clientID}), "clients")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}
