package cache

import (
	"context"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/sync"
)

// snapshotTTL bounds how long an unconsumed snapshot lives. A begin without
// a matching commit must not leak entries forever.
const snapshotTTL = time.Minute

type snapshotEntry struct {
	snapshot  shop.ProductSnapshot
	expiresAt time.Time
}

// InMemorySnapshotStore holds pre-change product snapshots between the two
// phases of a product save. Snapshots are consumed by Take and expire if the
// commit never arrives.
type InMemorySnapshotStore struct {
	mu        gosync.Mutex
	entries   map[uuid.UUID]snapshotEntry
	stopChan  chan struct{}
	wg        gosync.WaitGroup
	closeOnce gosync.Once
}

var _ sync.SnapshotStore = (*InMemorySnapshotStore)(nil)

// NewInMemorySnapshotStore creates a new snapshot store and starts its
// expiry goroutine
func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	store := &InMemorySnapshotStore{
		entries:  make(map[uuid.UUID]snapshotEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Put stores the snapshot, replacing any previous one for the same product
func (s *InMemorySnapshotStore) Put(_ context.Context, snapshot shop.ProductSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[snapshot.ID] = snapshotEntry{
		snapshot:  snapshot,
		expiresAt: time.Now().Add(snapshotTTL),
	}
	return nil
}

// Take returns and removes the snapshot for the given product. An expired
// snapshot counts as missing.
func (s *InMemorySnapshotStore) Take(_ context.Context, productID uuid.UUID) (shop.ProductSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[productID]
	if !ok {
		return shop.ProductSnapshot{}, false, nil
	}
	delete(s.entries, productID)

	if time.Now().After(entry.expiresAt) {
		return shop.ProductSnapshot{}, false, nil
	}
	return entry.snapshot, true, nil
}

// Close stops the expiry goroutine. Safe to call multiple times.
func (s *InMemorySnapshotStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemorySnapshotStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySnapshotStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
