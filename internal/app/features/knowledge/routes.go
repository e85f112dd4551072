// internal/app/features/knowledge/routes.go
package knowledge

import (
	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
)

// Routes returns the /knowledge subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/precedents", h.ServePrecedents)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "superadmin"))
		r.Post("/", h.ServeCreate)
		r.Put("/{articleID}/status", h.ServeSetStatus)
		r.Post("/precedents", h.ServeAddPrecedent)
	})
	return r
}
