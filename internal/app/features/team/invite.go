// internal/app/features/team/invite.go
package team

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	userstore "github.com/lexhub/lexhub/internal/app/store/users"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type inviteRequest struct {
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Permissions []string `json:"permissions"`
}

// ServeInvite handles POST /team: creates a team-member login owned by the
// calling firm. Ownership (created_by) is what scopes the new user to the
// firm, so it is always the caller, never a request field.
func (h *Handler) ServeInvite(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode invite body failed", err, "Invalid request body.")
		return
	}
	if len(req.Password) < 8 {
		uierrors.JSONError(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	hash, err := userstore.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Unable to invite team member.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	firmID := caller.ID
	u, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Roles:        []string{"team_member"},
		Type:         "team_member",
		CreatedBy:    &firmID,
		Permissions:  req.Permissions,
		PasswordHash: hash,
		AuthMethod:   "password",
		Status:       "active",
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		uierrors.JSONError(w, http.StatusConflict, "A user with that email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create team member failed", err, "Unable to invite team member.")
		return
	}

	h.Log.Info("team member invited",
		zap.String("user_id", u.ID.Hex()),
		zap.String("firm_id", firmID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, memberRow{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Roles:       u.Roles,
		Permissions: u.Permissions,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	})
}

// ServeSetPermissions handles PUT /team/{userID}/permissions.
func (h *Handler) ServeSetPermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Team member not found.")
		return
	}

	var req struct {
		Permissions []string `json:"permissions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode permissions body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.visible(ctx, r, userID) {
		h.ErrLog.LogNotFound(w, r, "Team member not found.")
		return
	}

	if err := h.Users.UpdatePermissions(ctx, userID, req.Permissions); err != nil {
		h.ErrLog.LogServerError(w, r, "update permissions failed", err, "Unable to update team member.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeSetStatus handles PUT /team/{userID}/status: active or disabled.
func (h *Handler) ServeSetStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "Team member not found.")
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

	if !h.visible(ctx, r, userID) {
		h.ErrLog.LogNotFound(w, r, "Team member not found.")
		return
	}

	if err := h.Users.SetStatus(ctx, userID, req.Status); err != nil {
		h.ErrLog.LogBadRequest(w, r, "set user status failed", err, "Unable to update team member.")
		return
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// visible reports whether the target user is inside the caller's narrowed
// view of the users collection.
func (h *Handler) visible(ctx context.Context, r *http.Request, userID primitive.ObjectID) bool {
	q, err := h.Engine.ApplyRequest(r,
		scope.ForCollection(scope.ColUsers).Where(bson.M{"_id": userID}), "users")
	if err != nil {
		return false
	}
	n, err := h.DB.Collection(q.Collection).CountDocuments(ctx, q.Filter)
	return err == nil && n > 0
}
