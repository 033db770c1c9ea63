// Package handlers provides HTTP handlers for query history.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/newsradar/internal/modules/history"
	"github.com/rs/zerolog"
)

// Handler handles query history HTTP requests
type Handler struct {
	store *history.Store
	log   zerolog.Logger
}

// NewHandler creates a new history handler
func NewHandler(store *history.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "history").Logger(),
	}
}

// HandleList handles GET /api/history
// Returns recent query history, newest first. The optional limit query
// parameter caps the result count.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list query history")
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"history": entries,
			"count":   len(entries),
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

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": message,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}
