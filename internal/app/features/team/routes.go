// internal/app/features/team/routes.go
package team

import (
	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
)

// Routes returns the /team subrouter. Only staff roles reach the roster;
// mutations are owner-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "team_member", "superadmin"))
		r.Get("/", h.ServeList)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "superadmin"))
		r.Post("/", h.ServeInvite)
		r.Put("/{userID}/permissions", h.ServeSetPermissions)
		r.Put("/{userID}/status", h.ServeSetStatus)
	})
	return r
}
