package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all securities catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/securities", func(r chi.Router) {
		r.Get("/", h.HandleGetSecurities)
		r.Get("/search", h.HandleSearch)
	})
}
