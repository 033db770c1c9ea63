package news

import (
	"context"

	"github.com/rs/zerolog"
)

// Fetcher retrieves raw news items from the search oracle across a batch of
// queries and deduplicates the aggregate by URL.
type Fetcher struct {
	searcher Searcher
	log      zerolog.Logger
}

// NewFetcher creates a fetcher on top of a search oracle.
func NewFetcher(searcher Searcher, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		searcher: searcher,
		log:      log.With().Str("component", "news-fetcher").Logger(),
	}
}

// FetchAll runs every query, capping each at maxResults/len(queries) items
// from the last days days. A failing query is logged and skipped; partial
// failure is not fatal to the batch. Results are deduplicated by URL with the
// first occurrence winning, preserving first-seen order across queries.
func (f *Fetcher) FetchAll(ctx context.Context, queries []string, maxResults, days int) []RawItem {
	if len(queries) == 0 {
		return nil
	}

	perQuery := maxResults / len(queries)

	var all []RawItem
	seen := make(map[string]bool)

	for _, query := range queries {
		results, err := f.searcher.Search(ctx, query, days, perQuery)
		if err != nil {
			f.log.Warn().Err(err).Str("query", query).Msg("Search failed, continuing with remaining queries")
			continue
		}

		f.log.Debug().Str("query", query).Int("results", len(results)).Msg("Search completed")

		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			all = append(all, r)
		}
	}

	f.log.Info().Int("unique_items", len(all)).Int("queries", len(queries)).Msg("Fetched news batch")
	return all
}
