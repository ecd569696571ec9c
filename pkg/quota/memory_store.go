package quota

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and single-instance
// deployments. All operations are guarded by a single mutex, which gives
// the same atomicity the ledger requires from a shared store.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]int64 // key: userID + "|" + day
}

// NewMemoryStore creates an empty in-memory quota store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int64)}
}

func (s *MemoryStore) IncrementIfBelow(_ context.Context, userID string, day Day, limit int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey(userID, day)
	current := s.counters[key]
	if current >= limit {
		return current, false, nil
	}

	current++
	s.counters[key] = current
	return current, true, nil
}

func (s *MemoryStore) Count(_ context.Context, userID string, day Day) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[memoryKey(userID, day)], nil
}

func (s *MemoryStore) ListActive(_ context.Context, day Day) ([]Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := "|" + string(day)
	var usage []Usage
	for key, count := range s.counters {
		if count > 0 && strings.HasSuffix(key, suffix) {
			usage = append(usage, Usage{
				UserID: strings.TrimSuffix(key, suffix),
				Count:  count,
			})
		}
	}
	return usage, nil
}

func memoryKey(userID string, day Day) string {
	return userID + "|" + string(day)
}
