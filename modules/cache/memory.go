package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStorage is an in-process Storage with per-key expiry.
// Expired entries are invisible to readers and removed by a background janitor.
type MemoryStorage struct {
	mu         sync.RWMutex
	entries    map[string]*memoryEntry
	maxEntries int
	now        func() time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

var _ Storage = (*MemoryStorage)(nil)

// MemoryOption configures a MemoryStorage.
type MemoryOption func(*MemoryStorage)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStorage) {
		s.now = now
	}
}

// WithMaxEntries bounds the number of stored keys. When full, the entry
// closest to expiry is evicted.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStorage) {
		s.maxEntries = n
	}
}

// NewMemoryStorage creates the storage and starts its janitor, which runs
// every cleanupInterval until Close. A non-positive interval disables it.
func NewMemoryStorage(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStorage {
	s := &MemoryStorage{
		entries:    make(map[string]*memoryEntry),
		maxEntries: 10000,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cleanupInterval > 0 {
		go s.janitor(cleanupInterval)
	}
	return s
}

func (s *MemoryStorage) GetWithContext(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		return nil, nil
	}
	return e.value, nil
}

func (s *MemoryStorage) SetWithContext(_ context.Context, key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOne()
	}

	e := &memoryEntry{value: append([]byte(nil), val...)}
	if exp > 0 {
		e.expiresAt = s.now().Add(exp)
	}
	s.entries[key] = e
	return nil
}

func (s *MemoryStorage) DeleteWithContext(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStorage) ResetWithContext(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*memoryEntry)
	return nil
}

// Close stops the janitor. It is safe to call more than once.
func (s *MemoryStorage) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// Len returns the number of stored keys, expired or not.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStorage) expired(e *memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *MemoryStorage) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStorage) cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// evictOne removes the entry nearest to expiry. Caller holds the lock.
func (s *MemoryStorage) evictOne() {
	var victim string
	var soonest time.Time
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			return
		}
		if e.expiresAt.IsZero() {
			continue
		}
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = key, e.expiresAt
		}
	}
	if victim == "" {
		for key := range s.entries {
			victim = key
			break
		}
	}
	delete(s.entries, victim)
}
