package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all news routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/news/market", h.HandleMarketNews)
}
