// internal/app/features/notes/routes.go
package notes

import (
	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
)

// Routes returns the /notes subrouter. Reads are open to any signed-in
// caller (the scope layer decides what each one sees); writes are staff only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{noteID}", h.ServeDetail)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "team_member", "superadmin"))
		r.Post("/", h.ServeCreate)
		r.Put("/{noteID}/privacy", h.ServeSetPrivate)
	})
	return r
}
