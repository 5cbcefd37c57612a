package matcher

import (
	"errors"

	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/interfaces"
)

// FuzzyThreshold is the similarity score a fuzzy candidate must strictly
// exceed to be accepted.
const FuzzyThreshold = 0.6

// ErrNotFound reports that no resolution tier produced a match. It is a
// normal lookup outcome, not a store failure.
var ErrNotFound = errors.New("no matching record")

// Tier names which resolution strategy produced a match.
type Tier string

const (
	TierExact    Tier = "exact"
	TierContains Tier = "contains"
	TierFuzzy    Tier = "fuzzy"
)

// Match is a successful name resolution.
type Match struct {
	Record catalog.Record
	Tier   Tier
	Score  float64
}

// Resolve looks a name up in one catalog using three tiers, first success
// wins: case-insensitive equality, case-insensitive substring (record name
// contains the query), then a fuzzy scan of the whole catalog. The fuzzy
// tier normalizes both sides, scores them with Similarity, and keeps the
// first candidate seen at the best score; the best candidate is only
// accepted strictly above FuzzyThreshold. The fuzzy tier is a full catalog
// scan and is always the last resort.
func Resolve(store interfaces.RecordStore, query string) (Match, error) {
	if rec, ok := store.FindByNameEquals(query); ok {
		return Match{Record: rec, Tier: TierExact, Score: 1.0}, nil
	}

	if rec, ok := store.FindByNameContains(query); ok {
		return Match{Record: rec, Tier: TierContains, Score: 1.0}, nil
	}

	normQuery := Normalize(query)
	var best catalog.Record
	bestScore := FuzzyThreshold
	found := false

	for _, rec := range store.FindAll() {
		if score := Similarity(normQuery, Normalize(rec.Name)); score > bestScore {
			best = rec
			bestScore = score
			found = true
		}
	}

	if !found {
		return Match{}, ErrNotFound
	}
	return Match{Record: best, Tier: TierFuzzy, Score: bestScore}, nil
}
