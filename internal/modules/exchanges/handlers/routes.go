package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all exchange routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/exchanges", h.HandleList)
}
