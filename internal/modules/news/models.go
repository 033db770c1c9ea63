// Package news implements the geo-weighted market news pipeline: retrieving
// candidate items from the search oracle, scoring them against nearby
// exchanges, and producing a ranked, cached result list.
package news

import (
	"context"

	"github.com/aristath/newsradar/internal/modules/impact"
)

// Query modes accepted by the pipeline. Unknown modes fall back to
// ModeLocationBased.
const (
	ModeLocationBased    = "location_based"
	ModeExchangeSpecific = "exchange_specific"
	ModeMarketSignals    = "market_signals"
)

// Searcher is the capability contract for the external search oracle.
type Searcher interface {
	// Search returns up to maxResults raw items for the query, restricted to
	// the last days days.
	Search(ctx context.Context, query string, days, maxResults int) ([]RawItem, error)
}

// RawItem is one candidate item as returned by the search oracle. The URL is
// the deduplication key. PublishedAt is kept verbatim: parsing is lenient and
// happens only in the freshness filter.
type RawItem struct {
	Title       string                 `json:"title"`
	Snippet     string                 `json:"snippet"`
	URL         string                 `json:"url"`
	PublishedAt string                 `json:"published_at,omitempty"`
	Source      string                 `json:"source,omitempty"`
	Raw         map[string]interface{} `json:"-"`
}

// ExchangeImpact is the relevance and predicted impact of one news item for
// one exchange. Recomputed per item per exchange, never persisted on its own.
type ExchangeImpact struct {
	ExchangeID   string   `json:"exchange_id"`
	ExchangeName string   `json:"exchange_name"`
	DistanceKm   float64  `json:"distance_km"`
	GeoWeight    float64  `json:"geo_weight"`
	Indices      []string `json:"indices"`
	impact.Assessment
}

// ProcessedItem is one fully scored news item. Invariant: PrimaryExchange is
// the first element of AllExchangeImpacts, which is sorted descending by geo
// weight. A non-empty Error marks the degraded single-element response
// returned when the search oracle is not configured; callers must check it
// before treating the item as news data.
type ProcessedItem struct {
	Title              string                 `json:"title"`
	Snippet            string                 `json:"snippet"`
	URL                string                 `json:"url"`
	PublishedAt        string                 `json:"published_at,omitempty"`
	Source             string                 `json:"source,omitempty"`
	PrimaryExchange    *ExchangeImpact        `json:"primary_exchange,omitempty"`
	AllExchangeImpacts []ExchangeImpact       `json:"all_exchange_impacts,omitempty"`
	QueryMode          string                 `json:"query_mode,omitempty"`
	Raw                map[string]interface{} `json:"raw,omitempty"`
	Error              string                 `json:"error,omitempty"`
}

// Params are the ranking pipeline request parameters.
type Params struct {
	Lat        float64
	Lon        float64
	RadiusKm   int
	Index      string
	Days       int
	MaxResults int
	QueryMode  string
}
