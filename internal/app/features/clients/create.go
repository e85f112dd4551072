// internal/app/features/clients/create.go
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	clientstore "github.com/lexhub/lexhub/internal/app/store/clients"
	"github.com/lexhub/lexhub/internal/app/system/authz"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ServeCreate handles POST /clients. Routes restrict this to firm owners.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	caller := authz.FromRequest(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode client body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cl, err := h.Store.Create(ctx, caller.ID, models.Client{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if errors.Is(err, clientstore.ErrDuplicateEmail) {
		uierrors.JSONError(w, http.StatusConflict, "A client with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create client failed", err, "Unable to create client.")
		return
	}

	h.Log.Info("client created", zap.String("client_id", cl.ID.Hex()))
	uierrors.RenderJSON(w, http.StatusCreated, clientRow{
		ID:       cl.ID,
		FullName: cl.FullName,
		Email:    cl.Email,
		Phone:    cl.Phone,
		Status:   cl.Status,
	})
}
