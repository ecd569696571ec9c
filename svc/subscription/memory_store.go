package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

// MemoryStore is an in-memory Store for tests and local development.
// InTx holds the store mutex for the whole transaction and restores a
// snapshot on error, which mirrors the all-or-nothing semantics the
// postgres store gets from real transactions.
type MemoryStore struct {
	mu            sync.Mutex
	subscriptions map[string]*Subscription // by external ID
	profiles      map[string]*Profile      // by user ID
	processed     map[string]time.Time     // idempotency ledger: event ID -> claim time
}

// NewMemoryStore creates an empty in-memory subscription store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscriptions: make(map[string]*Subscription),
		profiles:      make(map[string]*Profile),
		processed:     make(map[string]time.Time),
	}
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := fn(&memoryTx{store: s}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *MemoryStore) GetSubscription(_ context.Context, externalID string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getSubscriptionLocked(externalID)
}

func (s *MemoryStore) GetSubscriptionByUser(_ context.Context, userID string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *Subscription
	for _, sub := range s.subscriptions {
		if sub.UserID != userID || sub.Status == StatusCanceled {
			continue
		}
		if latest == nil || sub.CurrentPeriodEnd.After(latest.CurrentPeriodEnd) {
			latest = sub
		}
	}
	if latest == nil {
		return nil, ErrSubscriptionNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *MemoryStore) GetProfile(_ context.Context, userID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

// SeedProfile installs a profile directly, for tests and local setup.
func (s *MemoryStore) SeedProfile(profile Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = &profile
}

func (s *MemoryStore) getSubscriptionLocked(externalID string) (*Subscription, error) {
	sub, ok := s.subscriptions[externalID]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	copied := *sub
	return &copied, nil
}

type memorySnapshot struct {
	subscriptions map[string]*Subscription
	profiles      map[string]*Profile
	processed     map[string]time.Time
}

func (s *MemoryStore) snapshot() memorySnapshot {
	snap := memorySnapshot{
		subscriptions: make(map[string]*Subscription, len(s.subscriptions)),
		profiles:      make(map[string]*Profile, len(s.profiles)),
		processed:     make(map[string]time.Time, len(s.processed)),
	}
	for k, v := range s.subscriptions {
		copied := *v
		snap.subscriptions[k] = &copied
	}
	for k, v := range s.profiles {
		copied := *v
		snap.profiles[k] = &copied
	}
	for k, v := range s.processed {
		snap.processed[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.subscriptions = snap.subscriptions
	s.profiles = snap.profiles
	s.processed = snap.processed
}

// memoryTx mutates the store directly; the caller already holds the lock
// and rolls back via snapshot on error.
type memoryTx struct {
	store *MemoryStore
}

func (tx *memoryTx) ClaimEvent(_ context.Context, eventID string) error {
	if _, ok := tx.store.processed[eventID]; ok {
		return ErrEventAlreadyProcessed
	}
	tx.store.processed[eventID] = time.Now().UTC()
	return nil
}

func (tx *memoryTx) GetSubscription(_ context.Context, externalID string) (*Subscription, error) {
	return tx.store.getSubscriptionLocked(externalID)
}

func (tx *memoryTx) UpsertSubscription(_ context.Context, sub *Subscription) error {
	copied := *sub
	tx.store.subscriptions[sub.ExternalID] = &copied
	return nil
}

func (tx *memoryTx) SetProfilePlan(_ context.Context, userID string, p plan.Plan, customerID string) error {
	profile, ok := tx.store.profiles[userID]
	if !ok {
		profile = &Profile{UserID: userID}
		tx.store.profiles[userID] = profile
	}
	profile.Plan = p
	if customerID != "" {
		profile.CustomerID = customerID
	}
	profile.UpdatedAt = time.Now().UTC()
	return nil
}
