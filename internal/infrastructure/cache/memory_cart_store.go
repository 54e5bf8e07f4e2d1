package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
)

type entry struct {
	data      []byte
	expiresAt time.Time // zero never expires
}

// MemoryCartStore keeps cart records in process. Records do not survive a
// restart and are not shared between instances.
type MemoryCartStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryCartStore creates an in-memory store. With a ttl it starts a
// goroutine that drops expired records; call Close to stop it.
func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	s := &MemoryCartStore{
		entries:  make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if ttl > 0 {
		s.wg.Add(1)
		go s.cleanupLoop(cleanupInterval(ttl))
	}
	return s
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if iv := ttl / 4; iv < time.Minute {
		return iv
	}
	return time.Minute
}

// Load returns a copy of the record or cart.ErrNoRecord
func (s *MemoryCartStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return nil, cart.ErrNoRecord
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

// Save stores a copy of data
func (s *MemoryCartStore) Save(_ context.Context, sessionID string, data []byte) error {
	e := entry{data: append([]byte(nil), data...)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sessionID] = e
	s.mu.Unlock()
	return nil
}

// SaveIfRevision stores data only while the live record still has the
// expected revision; an expired record counts as absent
func (s *MemoryCartStore) SaveIfRevision(_ context.Context, sessionID string, expected int64, data []byte) error {
	e := entry{data: append([]byte(nil), data...)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var current int64
	if old, ok := s.entries[sessionID]; ok && !s.expired(old) {
		current = cart.RevisionOf(old.data)
	}
	if current != expected {
		return cart.ErrRevisionConflict
	}
	s.entries[sessionID] = e
	return nil
}

// Delete removes the record
func (s *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Len returns the number of records, expired ones included until swept
func (s *MemoryCartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine
func (s *MemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	return nil
}

func (s *MemoryCartStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *MemoryCartStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			return
		}
	}
}

func (s *MemoryCartStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}

var _ cart.RevisionStore = (*MemoryCartStore)(nil)
