// Package handlers provides HTTP handlers for the market news pipeline.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/newsradar/internal/modules/history"
	"github.com/aristath/newsradar/internal/modules/news"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request defaults applied when the body omits a field.
const (
	defaultRadiusKm   = 1500
	defaultIndex      = "SP500"
	defaultDays       = 1
	defaultMaxResults = 20
)

// Handler handles market news HTTP requests
type Handler struct {
	service *news.Service
	history *history.Store
	log     zerolog.Logger
}

// NewHandler creates a new news handler
func NewHandler(service *news.Service, historyStore *history.Store, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		history: historyStore,
		log:     log.With().Str("handler", "news").Logger(),
	}
}

// marketNewsRequest is the POST /api/news/market body. Pointer fields
// distinguish "omitted" from zero so defaults apply only to omissions.
type marketNewsRequest struct {
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	RadiusKm      *int     `json:"radius_km"`
	Index         *string  `json:"index"`
	Days          *int     `json:"days"`
	MaxResults    *int     `json:"max_results"`
	QueryMode     *string  `json:"query_mode"`
	SaveToHistory *bool    `json:"save_to_history"`
}

// HandleMarketNews handles POST /api/news/market
// Runs the ranking pipeline and optionally records the query to history.
func (h *Handler) HandleMarketNews(w http.ResponseWriter, r *http.Request) {
	var req marketNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Lat == nil || req.Lon == nil {
		h.writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		h.writeError(w, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	params := news.Params{
		Lat:        *req.Lat,
		Lon:        *req.Lon,
		RadiusKm:   defaultRadiusKm,
		Index:      defaultIndex,
		Days:       defaultDays,
		MaxResults: defaultMaxResults,
		QueryMode:  news.ModeLocationBased,
	}
	if req.RadiusKm != nil {
		params.RadiusKm = *req.RadiusKm
	}
	if req.Index != nil {
		params.Index = *req.Index
	}
	if req.Days != nil {
		params.Days = *req.Days
	}
	if req.MaxResults != nil {
		params.MaxResults = *req.MaxResults
	}
	if req.QueryMode != nil {
		params.QueryMode = *req.QueryMode
	}
	if params.Days < 1 || params.MaxResults < 1 {
		h.writeError(w, http.StatusBadRequest, "days and max_results must be positive")
		return
	}

	h.log.Info().
		Float64("lat", params.Lat).
		Float64("lon", params.Lon).
		Str("index", params.Index).
		Str("mode", params.QueryMode).
		Msg("Market news request")

	items := h.service.GetMarketNews(r.Context(), params)

	saveToHistory := req.SaveToHistory == nil || *req.SaveToHistory
	if saveToHistory && len(items) > 0 && items[0].Error == "" {
		h.recordHistory(r, params, items)
	}

	response := map[string]interface{}{
		"data": items,
		"metadata": map[string]interface{}{
			"count":     len(items),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// recordHistory saves the query to history. Failures are logged only; the
// news response is already committed.
func (h *Handler) recordHistory(r *http.Request, params news.Params, items []news.ProcessedItem) {
	exchangeInfo := params.Index
	if params.QueryMode == news.ModeLocationBased {
		exchangeInfo = "User location"
	}

	preview := history.Preview{Title: items[0].Title}
	if items[0].PrimaryExchange != nil {
		preview.PrimaryExchange = items[0].PrimaryExchange.ExchangeName
	}

	entry := history.Entry{
		QueryID:   uuid.New().String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Params: history.EntryParams{
			Lat:       params.Lat,
			Lon:       params.Lon,
			Index:     params.Index,
			QueryMode: params.QueryMode,
			Days:      params.Days,
		},
		ResultCount:  len(items),
		ExchangeInfo: exchangeInfo,
		Preview:      preview,
	}

	if err := h.history.Record(r.Context(), entry); err != nil {
		h.log.Warn().Err(err).Msg("Failed to record query history")
	}
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
