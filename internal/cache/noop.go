package cache

import (
	"context"
	"time"
)

// noopStore is the degraded mode used when no backend is reachable: every Get
// misses, every write is accepted and dropped. Caching and history become
// pass-through, the rest of the application is unaffected.
type noopStore struct{}

// NewNoop creates a pass-through store.
func NewNoop() Store {
	return noopStore{}
}

func (noopStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

func (noopStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (noopStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	return nil
}

func (noopStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return []string{}, nil
}

func (noopStore) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error {
	return nil
}

func (noopStore) Ping(ctx context.Context) error {
	return nil
}

func (noopStore) Close() error {
	return nil
}
