package cache

import (
	"context"
	gosync "sync"
	"time"

	"github.com/wmsconnector/backend/internal/domain/sync"
)

// noticeTTL is how long an undrained notice survives. It mirrors the
// short-lived transient the shop admin surface polls.
const noticeTTL = 5 * time.Minute

// noticeEntry is a buffered notice with its expiration
type noticeEntry struct {
	notice    sync.Notice
	expiresAt time.Time
}

// InMemoryNoticeStore buffers notices in process memory. Suitable for
// single-instance deployments and testing; notices are lost on restart and
// not shared across instances.
type InMemoryNoticeStore struct {
	mu        gosync.Mutex
	entries   []noticeEntry
	stopChan  chan struct{}
	wg        gosync.WaitGroup
	closeOnce gosync.Once
}

var _ sync.NoticeStore = (*InMemoryNoticeStore)(nil)

// NewInMemoryNoticeStore creates a new in-memory notice store and starts its
// expiry goroutine
func NewInMemoryNoticeStore() *InMemoryNoticeStore {
	store := &InMemoryNoticeStore{
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Push appends a notice to the buffer
func (s *InMemoryNoticeStore) Push(_ context.Context, notice sync.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, noticeEntry{
		notice:    notice,
		expiresAt: time.Now().Add(noticeTTL),
	})
	return nil
}

// Drain returns all unexpired notices and clears the buffer
func (s *InMemoryNoticeStore) Drain(_ context.Context) ([]sync.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	notices := make([]sync.Notice, 0, len(s.entries))
	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			notices = append(notices, e.notice)
		}
	}
	s.entries = nil
	return notices, nil
}

// Close stops the expiry goroutine. Safe to call multiple times.
func (s *InMemoryNoticeStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryNoticeStore) cleanupLoop() {
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

func (s *InMemoryNoticeStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}
