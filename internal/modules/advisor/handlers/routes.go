package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/recommendations", h.HandleGetRecommendations)
}
