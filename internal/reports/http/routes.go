package reporthttp

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the report endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/seller-debts", h.SellerDebts)
		r.Get("/dashboard", h.Dashboard)
	})
}
