package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryKeyDeterministic(t *testing.T) {
	params := QueryParams{
		Lat:       40.7128,
		Lon:       -74.0060,
		RadiusKm:  1500,
		Index:     "SP500",
		Days:      1,
		QueryMode: "location_based",
	}

	first := QueryKey(params)
	second := QueryKey(params)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "news_query:market_news:"))
	// sha256 hex digest
	assert.Len(t, strings.TrimPrefix(first, "news_query:market_news:"), 64)
}

func TestQueryKeyRoundsCoordinates(t *testing.T) {
	base := QueryParams{Lat: 40.7128, Lon: -74.0060, RadiusKm: 1500, Index: "SP500", Days: 1, QueryMode: "location_based"}
	nearby := base
	nearby.Lat = 40.7134 // rounds to the same 40.71
	nearby.Lon = -74.0055

	assert.Equal(t, QueryKey(base), QueryKey(nearby))

	far := base
	far.Lat = 40.72
	assert.NotEqual(t, QueryKey(base), QueryKey(far))
}

func TestQueryKeyVariesByParameter(t *testing.T) {
	base := QueryParams{Lat: 40.71, Lon: -74.0, RadiusKm: 1500, Index: "SP500", Days: 1, QueryMode: "location_based"}

	tests := []struct {
		name   string
		mutate func(*QueryParams)
	}{
		{"days", func(p *QueryParams) { p.Days = 7 }},
		{"index", func(p *QueryParams) { p.Index = "FTSE" }},
		{"mode", func(p *QueryParams) { p.QueryMode = "market_signals" }},
		{"radius", func(p *QueryParams) { p.RadiusKm = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base
			tt.mutate(&changed)
			assert.NotEqual(t, QueryKey(base), QueryKey(changed))
		})
	}
}

func TestNoopStorePassThrough(t *testing.T) {
	ctx := context.Background()
	store := NewNoop()

	require.NoError(t, store.Set(ctx, "key", []byte("value"), time.Minute))

	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, data, "noop store must always miss")

	require.NoError(t, store.ZAdd(ctx, "idx", 1, "a"))
	members, err := store.ZRevRange(ctx, "idx", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, members)

	assert.NoError(t, store.ZRemRangeByRank(ctx, "idx", 0, -1))
	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())
}

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	data, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Set(ctx, "key", []byte("value"), time.Minute))

	data, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), data)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory().(*memoryStore)

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "key", []byte("value"), 30*time.Minute))

	current = current.Add(29 * time.Minute)
	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.NotNil(t, data)

	current = current.Add(2 * time.Minute)
	data, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, data, "entry past its TTL must miss")
}

func TestMemoryStoreZRevRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.ZAdd(ctx, "idx", float64(i), fmt.Sprintf("m%d", i)))
	}

	members, err := store.ZRevRange(ctx, "idx", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"m4", "m3", "m2"}, members)

	members, err = store.ZRevRange(ctx, "idx", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"m4", "m3", "m2", "m1", "m0"}, members)

	members, err = store.ZRevRange(ctx, "missing", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestMemoryStoreZRemRangeByRank(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.ZAdd(ctx, "idx", float64(i), fmt.Sprintf("m%d", i)))
	}

	// Keep the 3 highest-scored members, the trim shape used by history.
	require.NoError(t, store.ZRemRangeByRank(ctx, "idx", 0, -4))

	members, err := store.ZRevRange(ctx, "idx", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"m9", "m8", "m7"}, members)
}

func TestMemoryStoreZRemRangeByRankEmptyRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.ZAdd(ctx, "idx", 1, "a"))

	// Fewer members than the retention cap: nothing to trim.
	require.NoError(t, store.ZRemRangeByRank(ctx, "idx", 0, -51))

	members, err := store.ZRevRange(ctx, "idx", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, members)
}
