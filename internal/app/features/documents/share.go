// internal/app/features/documents/share.go
package documents

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type grantRequest struct {
	UserID    string     `json:"user_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ServeGrant handles POST /documents/{documentID}/grants: shares the
// document with a user until the optional expiry.
func (h *Handler) ServeGrant(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	docID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "documentID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode grant body failed", err, "Invalid request body.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		uierrors.JSONError(w, http.StatusBadRequest, "A valid user_id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, docID) {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	g, err := h.Store.Grant(ctx, caller.ID, docID, userID, req.ExpiresAt)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "grant document failed", err, "Unable to share document.")
		return
	}

	h.Log.Info("document shared",
		zap.String("document_id", docID.Hex()),
		zap.String("user_id", userID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, map[string]string{"grant_id": g.ID.Hex()})
}

// ServeRevoke handles DELETE /documents/{documentID}/grants/{userID}.
func (h *Handler) ServeRevoke(w http.ResponseWriter, r *http.Request) {
	docID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "documentID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		uierrors.JSONError(w, http.StatusBadRequest, "A valid user id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, docID) {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	if err := h.Store.Revoke(ctx, docID, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "revoke grant failed", err, "Unable to revoke access.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// ServeShareToken handles POST /documents/{documentID}/share-token: mints
// (or returns) the document's stable share token.
func (h *Handler) ServeShareToken(w http.ResponseWriter, r *http.Request) {
	docID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "documentID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, docID) {
		h.ErrLog.LogNotFound(w, r, "Document not found.")
		return
	}

	token, err := h.Store.EnsureShareToken(ctx, docID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mint share token failed", err, "Unable to create share link.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"share_token": token})
}

// visible reports whether the document is inside the caller's narrowed
// scope.
func (h *Handler) visible(ctx context.Context, r *http.Request, docID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r,
		scope.ForCollection(scope.ColDocuments).Where(bson.M{"_id": docID}), "documents")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}
