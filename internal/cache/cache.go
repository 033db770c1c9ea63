// Package cache abstracts the key-value/sorted-set backend used for news
// result caching and query history. The backend is an optimization, never a
// correctness dependency: when Redis is unreachable the no-op store keeps the
// application fully functional with every lookup missing.
package cache

import (
	"context"
	"time"
)

// NewsResultTTL is the lifetime of a cached news result set.
const NewsResultTTL = 1800 * time.Second

// Store is the narrow capability contract the application needs from its
// backend: string-keyed get/set with expiry plus a sorted-set for the
// time-ordered history index.
type Store interface {
	// Get returns the value for key, or nil with no error on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// ZAdd adds member to the sorted set at key with the given score.
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRevRange returns members of the sorted set at key by descending
	// score, from rank start to stop inclusive.
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZRemRangeByRank removes members of the sorted set at key between the
	// given ascending ranks, inclusive. Negative ranks count from the end.
	ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
