// internal/app/features/invoices/routes.go
package invoices

import (
	"github.com/go-chi/chi/v5"
	"github.com/lexhub/lexhub/internal/app/system/auth"
)

// Routes returns the /invoices subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole("company", "superadmin"))
		r.Post("/", h.ServeCreate)
		r.Put("/{invoiceID}/status", h.ServeSetStatus)
		r.Post("/{invoiceID}/payments", h.ServeRecordPayment)
	})
	return r
}
