package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
	"github.com/lexhub/lexhub/internal/app/system/tenant"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context for
// handler tests.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SessionUserFor converts a user model into the session shape handlers see.
func SessionUserFor(u models.User) *auth.SessionUser {
	su := &auth.SessionUser{
		ID:          u.ID.Hex(),
		Name:        u.FullName,
		Email:       u.Email,
		Roles:       u.Roles,
		Type:        u.Type,
		Permissions: u.Permissions,
	}
	if u.CreatedBy != nil {
		su.CreatedBy = u.CreatedBy.Hex()
	}
	return su
}

// SignedInRequest binds a user and firm context to the request, matching
// what the session and tenant middleware produce in production.
func SignedInRequest(r *http.Request, u models.User, firmID primitive.ObjectID) *http.Request {
	r = auth.WithTestUser(r, SessionUserFor(u))
	return tenant.WithTestFirm(r, &tenant.Info{ID: firmID, Status: "active"})
}
