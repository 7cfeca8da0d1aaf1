// Package dataset owns the in-memory record sequence for a dashboard
// variant and the session-local edit overlay merged onto it.
package dataset

import (
	"fmt"
	"sync"
)

// Record is one mapped sheet row that can participate in the edit
// overlay. The typed lead and signal records implement it.
type Record interface {
	// Key is the composite natural key used for overlay matching.
	Key() string
	// SetField assigns a field by canonical name; false means the
	// record has no such field.
	SetField(name, value string) bool
}

// Overlay holds session-local field overrides keyed by composite key.
// It starts empty, grows only through explicit saves, and is never
// persisted. Entries matching no current record are inert: they wait
// for a matching record to reappear on a later reload.
type Overlay map[string]map[string]string

func (o Overlay) Put(key, field, value string) {
	m, ok := o[key]
	if !ok {
		m = make(map[string]string)
		o[key] = m
	}
	m[field] = value
}

// Store is the single source of truth for one dashboard's records.
// Every derived view (metrics, charts, table) reads from it; nothing
// downstream mutates it.
type Store[R Record] struct {
	mu      sync.RWMutex
	records []R
	overlay Overlay
}

func NewStore[R Record]() *Store[R] {
	return &Store[R]{overlay: make(Overlay)}
}

// Replace installs a freshly loaded record sequence and shallow-merges
// the overlay: each record whose composite key has overlay entries
// gets those fields overridden; all other records pass through
// untouched.
func (s *Store[R]) Replace(records []R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if fields, ok := s.overlay[r.Key()]; ok {
			for name, value := range fields {
				r.SetField(name, value)
			}
		}
	}
	s.records = records
}

// Snapshot returns the records in stored order.
func (s *Store[R]) Snapshot() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}

// Reversed returns the presentation view (stored order flipped). It
// always holds exactly the same records as Snapshot.
func (s *Store[R]) Reversed() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]R, len(s.records))
	for i, r := range s.records {
		out[len(s.records)-1-i] = r
	}
	return out
}

func (s *Store[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// FindByKey returns the stored-order index of the first record with
// the given composite key, or -1.
func (s *Store[R]) FindByKey(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, r := range s.records {
		if r.Key() == key {
			return i
		}
	}
	return -1
}

// SaveEdit overrides one field of the record at index (stored order).
// The record is mutated in place so the next render reflects the edit
// without waiting on the external endpoint, and the override is
// recorded in the overlay for replay on every future reload. The
// overlay key is taken before the mutation, matching how an edit to
// a key field would behave.
func (s *Store[R]) SaveEdit(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("edit index %d out of range (len %d)", index, len(s.records))
	}
	r := s.records[index]
	key := r.Key()
	if !r.SetField(field, value) {
		return fmt.Errorf("unknown field %q", field)
	}
	s.overlay.Put(key, field, value)
	return nil
}

// OverlaySize reports how many composite keys currently carry
// overrides.
func (s *Store[R]) OverlaySize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overlay)
}
