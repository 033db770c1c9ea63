package news

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aristath/newsradar/internal/cache"
	"github.com/aristath/newsradar/internal/geo"
	"github.com/aristath/newsradar/internal/modules/exchanges"
	"github.com/aristath/newsradar/internal/modules/impact"
	"github.com/rs/zerolog"
)

// candidateExchangeCount is how many nearest exchanges each item is scored
// against.
const candidateExchangeCount = 3

// maxSnippetRunes caps the snippet carried on a processed item. Titles and
// URLs are never truncated.
const maxSnippetRunes = 400

// locationBasedQueryCount is how many of the indirect-impact queries the
// default mode uses.
const locationBasedQueryCount = 5

// ErrOracleNotConfigured is the marker text carried by the single-element
// degraded response when no search oracle is available.
const ErrOracleNotConfigured = "search oracle not configured"

// Service orchestrates the ranking pipeline: cache lookup, candidate exchange
// selection, query batching, retrieval, freshness filtering, geo-weighted
// impact scoring, ranking, and cache write-back.
type Service struct {
	fetcher  *Fetcher
	searcher Searcher
	store    cache.Store
	registry *exchanges.Registry
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a news ranking service. searcher may be nil when the
// oracle is not configured; the pipeline then returns an error-marker result.
func NewService(searcher Searcher, store cache.Store, registry *exchanges.Registry, log zerolog.Logger) *Service {
	svc := &Service{
		searcher: searcher,
		store:    store,
		registry: registry,
		log:      log.With().Str("component", "news-service").Logger(),
		now:      time.Now,
	}
	if searcher != nil {
		svc.fetcher = NewFetcher(searcher, log)
	}
	return svc
}

// cachedResult is the envelope stored in the cache backend.
type cachedResult struct {
	Data      []ProcessedItem `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// GetMarketNews runs the ranking pipeline for the given parameters and
// returns the ordered processed item list. It never returns an error for
// degraded dependencies: a missing oracle yields a single error-marker item,
// an unreachable cache backend is a silent pass-through.
func (s *Service) GetMarketNews(ctx context.Context, p Params) []ProcessedItem {
	key := cache.QueryKey(cache.QueryParams{
		Lat:       p.Lat,
		Lon:       p.Lon,
		RadiusKm:  p.RadiusKm,
		Index:     p.Index,
		Days:      p.Days,
		QueryMode: p.QueryMode,
	})

	if cached := s.readCache(ctx, key); cached != nil {
		return cached
	}

	if s.fetcher == nil {
		s.log.Warn().Msg("Search oracle not configured, returning error marker")
		return []ProcessedItem{{Error: ErrOracleNotConfigured}}
	}

	nearest := s.registry.Nearest(geo.Coordinate{Lat: p.Lat, Lon: p.Lon}, candidateExchangeCount)
	queries := buildQueries(p.QueryMode, nearest)

	s.log.Info().
		Str("mode", p.QueryMode).
		Float64("lat", p.Lat).
		Float64("lon", p.Lon).
		Int("queries", len(queries)).
		Msg("Running news ranking pipeline")

	raw := s.fetcher.FetchAll(ctx, queries, p.MaxResults, p.Days)

	cutoff := s.now().AddDate(0, 0, -p.Days)

	output := make([]ProcessedItem, 0, len(raw))
	for _, item := range raw {
		if s.isStale(item, cutoff) {
			s.log.Debug().Str("title", item.Title).Str("published_at", item.PublishedAt).Msg("Skipping stale item")
			continue
		}

		multiplier := 1.0
		if titleMatchesBulletin(item.Title) {
			s.log.Debug().Str("title", item.Title).Msg("Down-weighting market bulletin headline")
			multiplier = bulletinDownweightMultiplier
		}

		impacts := make([]ExchangeImpact, 0, len(nearest))
		for _, candidate := range nearest {
			weight := geo.DecayWeight(candidate.DistanceKm, geo.DefaultScaleKm) * multiplier
			impacts = append(impacts, ExchangeImpact{
				ExchangeID:   candidate.Exchange.ID,
				ExchangeName: candidate.Exchange.Name,
				DistanceKm:   roundTo(candidate.DistanceKm, 2),
				GeoWeight:    roundTo(weight, 3),
				Indices:      candidate.Exchange.Indices,
				Assessment:   impact.Classify(item.Title, item.Snippet, candidate.Exchange),
			})
		}

		sort.SliceStable(impacts, func(i, j int) bool {
			return impacts[i].GeoWeight > impacts[j].GeoWeight
		})

		output = append(output, ProcessedItem{
			Title:              item.Title,
			Snippet:            truncateRunes(item.Snippet, maxSnippetRunes),
			URL:                item.URL,
			PublishedAt:        item.PublishedAt,
			Source:             item.Source,
			PrimaryExchange:    &impacts[0],
			AllExchangeImpacts: impacts,
			QueryMode:          p.QueryMode,
			Raw:                item.Raw,
		})
	}

	sort.SliceStable(output, func(i, j int) bool {
		return output[i].PrimaryExchange.GeoWeight > output[j].PrimaryExchange.GeoWeight
	})

	s.log.Info().Int("items", len(output)).Msg("Pipeline complete")

	s.writeCache(ctx, key, output)
	return output
}

// readCache returns the cached item list for key, or nil on a miss. Backend
// failures are logged and treated as misses.
func (s *Service) readCache(ctx context.Context, key string) []ProcessedItem {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return nil
	}
	if data == nil {
		return nil
	}

	var entry cachedResult
	if err := json.Unmarshal(data, &entry); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Discarding malformed cache entry")
		return nil
	}

	s.log.Debug().Str("key", key).Msg("Cache hit")
	return entry.Data
}

// writeCache stores the pipeline output with the news TTL. Failures are
// logged only: caching is an optimization.
func (s *Service) writeCache(ctx context.Context, key string, items []ProcessedItem) {
	entry := cachedResult{
		Data:      items,
		Timestamp: s.now().Format(time.RFC3339),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to marshal cache entry")
		return
	}

	if err := s.store.Set(ctx, key, data, cache.NewsResultTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// publishedLayouts are the timestamp formats accepted by the freshness
// filter, tried in order.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// isStale reports whether the item's published timestamp parses to a moment
// strictly before cutoff. Missing or unparseable timestamps are kept: the
// freshness filter gives items the benefit of the doubt by explicit policy.
func (s *Service) isStale(item RawItem, cutoff time.Time) bool {
	if item.PublishedAt == "" {
		return false
	}

	for _, layout := range publishedLayouts {
		published, err := time.Parse(layout, item.PublishedAt)
		if err != nil {
			continue
		}
		return published.Before(cutoff)
	}

	return false
}

// buildQueries selects the query batch for a mode. Unknown modes fall back to
// the location-based default.
func buildQueries(mode string, nearest []exchanges.Ranked) []string {
	switch mode {
	case ModeMarketSignals:
		return marketImpactQueries
	case ModeExchangeSpecific:
		if len(nearest) == 0 {
			return marketImpactQueries[:locationBasedQueryCount]
		}
		ex := nearest[0].Exchange
		return []string{
			ex.City + " financial news",
			ex.Country + " stock market",
			strings.Join(ex.Indices, " ") + " news",
		}
	default:
		return marketImpactQueries[:locationBasedQueryCount]
	}
}

func titleMatchesBulletin(title string) bool {
	lower := strings.ToLower(title)
	for _, keyword := range marketBulletinKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
