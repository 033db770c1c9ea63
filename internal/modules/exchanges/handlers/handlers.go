// Package handlers provides HTTP handlers for exchange reference data.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/newsradar/internal/modules/exchanges"
	"github.com/rs/zerolog"
)

// Handler handles exchange listing HTTP requests
type Handler struct {
	registry *exchanges.Registry
	log      zerolog.Logger
}

// NewHandler creates a new exchanges handler
func NewHandler(registry *exchanges.Registry, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log.With().Str("handler", "exchanges").Logger(),
	}
}

// HandleList handles GET /api/exchanges
// Returns the full exchange reference table projection.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	all := h.registry.All()

	list := make([]map[string]interface{}, 0, len(all))
	for _, ex := range all {
		list = append(list, map[string]interface{}{
			"id":       ex.ID,
			"name":     ex.Name,
			"city":     ex.City,
			"country":  ex.Country,
			"location": ex.Location,
			"indices":  ex.Indices,
		})
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"exchanges": list,
			"count":     len(list),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
