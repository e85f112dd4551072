// internal/app/features/knowledge/create.go
package knowledge

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
	Title    string `json:"title"`
	Body     string `json:"body"`
	IsPublic bool   `json:"is_public"`
}

// ServeCreate handles POST /knowledge. Routes restrict this to firm owners;
// articles always start as drafts.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode article body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.Create(ctx, caller.ID, req.Title, req.Body, req.IsPublic)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create article failed", err, "Unable to create article.")
		return
	}

	h.Log.Info("article created", zap.String("article_id", a.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, articleRow{
		ID:        a.ID,
		Title:     a.Title,
		Status:    a.Status,
		IsPublic:  a.IsPublic,
		UpdatedAt: a.UpdatedAt,
	})
}

// ServeSetStatus handles PUT /knowledge/{articleID}/status: draft, published
// or archived.
func (h *Handler) ServeSetStatus(w http.ResponseWriter, r *http.Request) {
	articleID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "articleID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Article not found.")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode status body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, articleID) {
		h.ErrLog.LogNotFound(w, r, "Article not found.")
		return
	}

	if err := h.Store.SetStatus(ctx, articleID, req.Status); err != nil {
		h.ErrLog.LogBadRequest(w, r, "set article status failed", err, "Unable to update article.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// visible reports whether the article is inside the caller's narrowed scope.
func (h *Handler) visible(ctx context.Context, r *http.Request, articleID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r, forArticle(articleID), "knowledge_articles")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}
