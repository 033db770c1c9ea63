// Package history persists a bounded, time-ordered record of past news
// queries so users can revisit what they asked and what came back.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aristath/newsradar/internal/cache"
	"github.com/rs/zerolog"
)

const (
	// indexKey is the sorted set holding query IDs scored by record time.
	indexKey = "query_history_index"

	// recordKeyPrefix namespaces individual history records.
	recordKeyPrefix = "query_history:"

	// recordTTL is how long an individual record lives. Records can expire
	// out from under the index; List skips the dangling IDs.
	recordTTL = 7 * 24 * time.Hour

	// maxEntries bounds the index. Recording entry maxEntries+1 evicts the
	// oldest.
	maxEntries = 50

	// DefaultListLimit is used when a caller asks for no particular limit.
	DefaultListLimit = 50
)

// EntryParams echoes the query parameters a history entry was recorded for.
type EntryParams struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Index     string  `json:"index"`
	QueryMode string  `json:"query_mode"`
	Days      int     `json:"days"`
}

// Preview is a glimpse of the top-ranked result at record time.
type Preview struct {
	Title           string `json:"title"`
	PrimaryExchange string `json:"primary_exchange"`
}

// Entry is one recorded query.
type Entry struct {
	QueryID      string      `json:"query_id"`
	Timestamp    string      `json:"timestamp"`
	Params       EntryParams `json:"params"`
	ResultCount  int         `json:"result_count"`
	ExchangeInfo string      `json:"exchange_info"`
	Preview      Preview     `json:"preview"`
}

// Store records and lists query history entries on a cache backend.
type Store struct {
	store cache.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewStore creates a history store.
func NewStore(store cache.Store, log zerolog.Logger) *Store {
	return &Store{
		store: store,
		log:   log.With().Str("component", "history-store").Logger(),
		now:   time.Now,
	}
}

// Record persists an entry and trims the index to its bound. The caller
// treats failure as non-fatal: history is a convenience, not part of the
// news response.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	if err := s.store.Set(ctx, recordKeyPrefix+entry.QueryID, data, recordTTL); err != nil {
		return fmt.Errorf("failed to store history entry: %w", err)
	}

	if err := s.store.ZAdd(ctx, indexKey, float64(s.now().Unix()), entry.QueryID); err != nil {
		return fmt.Errorf("failed to index history entry: %w", err)
	}

	if err := s.store.ZRemRangeByRank(ctx, indexKey, 0, -(maxEntries + 1)); err != nil {
		return fmt.Errorf("failed to trim history index: %w", err)
	}

	s.log.Debug().Str("query_id", entry.QueryID).Msg("Recorded query history entry")
	return nil
}

// List returns up to limit entries, newest first. IDs whose record has
// expired are skipped silently; malformed records are skipped with a warning.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	ids, err := s.store.ZRevRange(ctx, indexKey, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read history index: %w", err)
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		data, err := s.store.Get(ctx, recordKeyPrefix+id)
		if err != nil {
			return nil, fmt.Errorf("failed to read history entry %s: %w", id, err)
		}
		if data == nil {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			s.log.Warn().Err(err).Str("query_id", id).Msg("Skipping malformed history entry")
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
