// Package data provides the in-memory catalog stores and the container that
// owns the branded and generic catalogs.
package data

import (
	"sort"
	"strings"
	"sync"

	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/interfaces"
)

// Compile-time check to ensure Store implements RecordStore
var _ interfaces.RecordStore = (*Store)(nil)

// Store holds one catalog's records keyed by upper-cased name, guarded by a
// read-write mutex. A separate slice preserves insertion order so that scans
// are deterministic and first-encountered fuzzy tie-breaking is stable.
type Store struct {
	mu      sync.RWMutex
	records map[string]catalog.Record
	order   []string
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{records: make(map[string]catalog.Record)}
}

func nameKey(name string) string {
	return strings.ToUpper(name)
}

// Upsert writes a record by name and reports whether it was newly created.
// The name key is never altered by an update.
func (s *Store) Upsert(rec catalog.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := nameKey(rec.Name)
	_, existed := s.records[k]
	if !existed {
		s.order = append(s.order, k)
	}
	s.records[k] = rec
	return !existed
}

// FindByNameEquals looks a record up by case-insensitive name equality.
func (s *Store) FindByNameEquals(name string) (catalog.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[nameKey(name)]
	return rec, ok
}

// FindByNameContains returns the first record (in insertion order) whose
// name contains the query as a case-insensitive substring.
func (s *Store) FindByNameContains(substr string) (catalog.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToUpper(substr)
	for _, k := range s.order {
		if strings.Contains(k, needle) {
			return s.records[k], true
		}
	}
	return catalog.Record{}, false
}

// FindAll returns a copy of every record in insertion order.
func (s *Store) FindAll() []catalog.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Record, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.records[k])
	}
	return out
}

// FindBySaltEquals returns every record whose salt equals the given key
// (case-insensitive), in insertion order. Records without a salt never
// match.
func (s *Store) FindBySaltEquals(salt string) []catalog.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToUpper(strings.TrimSpace(salt))
	out := []catalog.Record{}
	if needle == "" {
		return out
	}
	for _, k := range s.order {
		if rec := s.records[k]; rec.Salt == needle {
			out = append(out, rec)
		}
	}
	return out
}

// FindBySaltContains returns every record whose salt contains the query as a
// case-insensitive substring, ordered by trade price ascending with unpriced
// records last (stable among equals).
func (s *Store) FindBySaltContains(substr string) []catalog.Record {
	s.mu.RLock()

	needle := strings.ToUpper(strings.TrimSpace(substr))
	out := []catalog.Record{}
	if needle == "" {
		s.mu.RUnlock()
		return out
	}
	for _, k := range s.order {
		if rec := s.records[k]; rec.Salt != "" && strings.Contains(rec.Salt, needle) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Ptr, out[j].Ptr
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return out
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
