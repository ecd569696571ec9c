package notification

import (
	"context"
	"sync"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// MemorySuppressionStore is an in-memory SuppressionStore for tests and
// single-instance deployments.
type MemorySuppressionStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemorySuppressionStore creates an empty in-memory suppression store.
func NewMemorySuppressionStore() *MemorySuppressionStore {
	return &MemorySuppressionStore{seen: make(map[string]struct{})}
}

func (s *MemorySuppressionStore) MarkIfFirst(_ context.Context, userID string, kind Kind, day quota.Day) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userID + "|" + string(kind) + "|" + string(day)
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}
