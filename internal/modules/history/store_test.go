package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aristath/newsradar/internal/cache"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, cache.Store) {
	backend := cache.NewMemory()
	store := NewStore(backend, zerolog.Nop())

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return store, backend
}

func makeEntry(id string) Entry {
	return Entry{
		QueryID:   id,
		Timestamp: "2025-01-10T12:00:00Z",
		Params: EntryParams{
			Lat:       40.7128,
			Lon:       -74.0060,
			Index:     "SP500",
			QueryMode: "location_based",
			Days:      7,
		},
		ResultCount:  3,
		ExchangeInfo: "User location",
		Preview: Preview{
			Title:           "Fed holds rates steady",
			PrimaryExchange: "New York Stock Exchange",
		},
	}
}

// TestRecordAndList tests the round trip of a single entry.
func TestRecordAndList(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, makeEntry("q1")))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "q1", entries[0].QueryID)
	assert.Equal(t, "User location", entries[0].ExchangeInfo)
	assert.Equal(t, "Fed holds rates steady", entries[0].Preview.Title)
	assert.Equal(t, 40.7128, entries[0].Params.Lat)
}

// TestListNewestFirst tests reverse-chronological ordering.
func TestListNewestFirst(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Record(ctx, makeEntry(fmt.Sprintf("q%d", i))))
	}

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "q3", entries[0].QueryID)
	assert.Equal(t, "q2", entries[1].QueryID)
	assert.Equal(t, "q1", entries[2].QueryID)
}

// TestListLimit tests that the limit caps the result and zero means the
// default.
func TestListLimit(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Record(ctx, makeEntry(fmt.Sprintf("q%d", i))))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "q5", entries[0].QueryID)

	entries, err = store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

// TestIndexTrimming tests that recording past the bound evicts the oldest
// entry.
func TestIndexTrimming(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 1; i <= maxEntries+1; i++ {
		require.NoError(t, store.Record(ctx, makeEntry(fmt.Sprintf("q%d", i))))
	}

	entries, err := store.List(ctx, maxEntries+10)
	require.NoError(t, err)
	require.Len(t, entries, maxEntries)

	assert.Equal(t, fmt.Sprintf("q%d", maxEntries+1), entries[0].QueryID)
	for _, entry := range entries {
		assert.NotEqual(t, "q1", entry.QueryID, "oldest entry must be evicted")
	}
}

// TestListSkipsExpiredRecords tests that an ID whose record is gone is
// skipped rather than surfaced as an error.
func TestListSkipsExpiredRecords(t *testing.T) {
	store, backend := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, makeEntry("kept")))

	// Index an ID without a backing record, as if the record TTL fired.
	require.NoError(t, backend.ZAdd(ctx, indexKey, float64(time.Now().Unix()+100), "expired"))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].QueryID)
}

// TestListEmpty tests listing before anything was recorded.
func TestListEmpty(t *testing.T) {
	store, _ := newTestStore()

	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestRecordOnNoopBackend tests that a disabled backend accepts writes
// without error and lists nothing.
func TestRecordOnNoopBackend(t *testing.T) {
	store := NewStore(cache.NewNoop(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, makeEntry("q1")))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
