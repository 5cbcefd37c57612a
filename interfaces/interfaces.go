// Package interfaces defines the contracts between the catalog stores,
// the matching engine and the HTTP layer.
package interfaces

import "github.com/rxbridge/generics-api/catalog"

// RecordStore is the per-catalog record store consumed by the matching
// engine and the ingestor. Name lookups are case-insensitive. FindAll and
// the salt queries iterate in insertion order so that first-encountered
// tie-breaking stays deterministic. Implementations must be safe for
// concurrent use.
type RecordStore interface {
	FindByNameEquals(name string) (catalog.Record, bool)
	FindByNameContains(substr string) (catalog.Record, bool)
	FindAll() []catalog.Record
	FindBySaltEquals(salt string) []catalog.Record
	// FindBySaltContains returns matches ordered by trade price ascending,
	// records without a price last.
	FindBySaltContains(substr string) []catalog.Record

	// Upsert writes a record by name and reports whether it was newly
	// created (true) or replaced an existing record (false).
	Upsert(rec catalog.Record) (created bool)
	Len() int
}

// InputValidator screens user-supplied search terms before they reach the
// matching engine.
type InputValidator interface {
	ValidateInput(input string) error
}

// Scheduler manages the background maintenance jobs (catalog audit and
// snapshot persistence).
type Scheduler interface {
	Start() error
	Stop()
}
