// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	userstore "github.com/lexhub/lexhub/internal/app/store/users"
	"github.com/lexhub/lexhub/internal/app/system/auth"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, sessions *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Sessions: sessions, ErrLog: errLog, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// ServeLogin handles POST /login with a JSON email/password body. Failed
// attempts get the same 401 whether the account is missing, disabled, or
// the password is wrong.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login body failed", err, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		uierrors.JSONError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.JSONError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load user failed", err, "Unable to sign in.")
		return
	}

	if u.Status != "active" || u.AuthMethod == "google" ||
		!userstore.CheckPassword(u.PasswordHash, req.Password) {
		uierrors.JSONError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "write session failed", err, "Unable to sign in.")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusOK, loginResponse{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Roles: u.Roles,
	})
}
