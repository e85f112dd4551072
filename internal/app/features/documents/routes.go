// internal/app/features/documents/routes.go
package documents

import (
	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
)

// Routes returns the /documents subrouter. Sharing is a staff operation;
// clients only read what scope narrowing lets through.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/{documentID}/comments", h.ServeAddComment)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "team_member", "superadmin"))
		r.Post("/{documentID}/grants", h.ServeGrant)
		r.Delete("/{documentID}/grants/{userID}", h.ServeRevoke)
		r.Post("/{documentID}/share-token", h.ServeShareToken)
	})
	return r
}
