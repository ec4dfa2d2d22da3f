package snapshot

import (
	"sync"
	"time"
)

// Store keeps the last-known snapshot per facility for the process
// lifetime. Facility count is bounded by subscription count, so there is
// no eviction.
type Store interface {
	Get(operationNumber string) (Snapshot, bool)
	Put(operationNumber string, snap Snapshot)
	LastChecked(operationNumber string) (time.Time, bool)
	Len() int
}

type storeEntry struct {
	snap      Snapshot
	checkedAt time.Time
}

// MemoryStore backs Store with a mutex-guarded map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]storeEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]storeEntry)}
}

// Get returns the stored snapshot, if any.
func (s *MemoryStore) Get(operationNumber string) (Snapshot, bool) {
	if s == nil {
		return Snapshot{}, false
	}
	s.mu.RLock()
	entry, ok := s.entries[operationNumber]
	s.mu.RUnlock()
	return entry.snap, ok
}

// Put unconditionally overwrites the stored snapshot and the last-check time.
func (s *MemoryStore) Put(operationNumber string, snap Snapshot) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.entries[operationNumber] = storeEntry{snap: snap, checkedAt: snap.ObservedAt}
	s.mu.Unlock()
}

// LastChecked returns when the facility was last written to the store.
func (s *MemoryStore) LastChecked(operationNumber string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	s.mu.RLock()
	entry, ok := s.entries[operationNumber]
	s.mu.RUnlock()
	return entry.checkedAt, ok
}

// Len returns the number of tracked facilities.
func (s *MemoryStore) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
