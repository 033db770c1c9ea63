package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryStore is an in-process Store used by tests and dev mode. It honors
// TTLs and mirrors Redis sorted-set rank semantics, including negative ranks.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	sets map[string]map[string]float64
	now  func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory store.
func NewMemory() Store {
	return &memoryStore{
		data: make(map[string]memoryEntry),
		sets: make(map[string]map[string]float64),
		now:  time.Now,
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.data, key)
		return nil, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = memoryEntry{value: stored, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]float64)
		s.sets[key] = set
	}
	set[member] = score
	return nil
}

func (s *memoryStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := s.rankedMembers(key)
	// Reverse for descending order.
	for i, j := 0, len(ranked)-1; i < j; i, j = i+1, j-1 {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	}

	lo, hi, ok := normalizeRanks(start, stop, int64(len(ranked)))
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, ranked[lo:hi+1]...), nil
}

func (s *memoryStore) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := s.rankedMembers(key)
	lo, hi, ok := normalizeRanks(start, stop, int64(len(ranked)))
	if !ok {
		return nil
	}
	for _, member := range ranked[lo : hi+1] {
		delete(s.sets[key], member)
	}
	return nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

// rankedMembers returns set members sorted ascending by score, ties broken
// lexicographically, matching Redis rank order.
func (s *memoryStore) rankedMembers(key string) []string {
	set := s.sets[key]
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := set[members[i]], set[members[j]]
		if si != sj {
			return si < sj
		}
		return members[i] < members[j]
	})
	return members
}

// normalizeRanks resolves possibly-negative start/stop ranks against a set of
// size n, returning ok=false when the range is empty.
func normalizeRanks(start, stop, n int64) (int64, int64, bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
