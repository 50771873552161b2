package gateway

import (
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/leapstack-labs/querygate/pkg/core"
)

// Entry is a cached read result.
type Entry struct {
	Key      string
	Columns  []string
	Rows     []core.Row
	StoredAt time.Time
}

// Store maps query fingerprints to cached results.
//
// Entries are never removed one by one; the store only grows until Clear.
// Every Clear advances the generation, and PutIfGeneration refuses entries
// produced under an older generation, so a read that overlapped a clear
// cannot put pre-clear data back.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	generation uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Get returns the entry for key, if any. Validity is the caller's concern.
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Generation returns the current clear generation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// PutIfGeneration stores e when no Clear happened since gen was read.
// It reports whether the entry was stored.
func (s *Store) PutIfGeneration(gen uint64, e *Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.entries[e.Key] = e
	return true
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = make(map[string]*Entry)
	s.generation++
	return n
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns the entries ordered oldest first.
func (s *Store) Snapshot() []*Entry {
	s.mu.RLock()
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StoredAt.Equal(out[j].StoredAt) {
			return out[i].Key < out[j].Key
		}
		return out[i].StoredAt.Before(out[j].StoredAt)
	})
	return out
}

// cloneRows copies rows so cached data is never shared with callers.
func cloneRows(rows []core.Row) []core.Row {
	out := make([]core.Row, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}
	return out
}
