// internal/app/features/cases/routes.go
package cases

import (
	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
)

// Routes returns the /cases subrouter. Listing and reading rely on query
// narrowing alone; mutating the roster is an owner operation.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{caseID}", h.ServeDetail)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "superadmin"))
		r.Post("/", h.ServeCreate)
		r.Put("/{caseID}/status", h.ServeSetStatus)
		r.Put("/{caseID}/team/{userID}", h.ServeAssign)
		r.Delete("/{caseID}/team/{userID}", h.ServeUnassign)
	})
	return r
}
