package matcher

import (
	"fmt"
	"sort"

	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/interfaces"
)

// Alternative is a counterpart-catalog record sharing the source record's
// salt, annotated with the percentage saved relative to the source trade
// price. Savings is nil when either price is missing or the source price is
// not positive.
type Alternative struct {
	catalog.Record
	Savings *string `json:"savings"`
}

// CrossReference finds every record in the counterpart catalog with the same
// active-ingredient key as the source record, cheapest trade price first and
// unpriced records last (stable among equals). A source record without a
// salt has nothing to join on and yields an empty list.
func CrossReference(source catalog.Record, other interfaces.RecordStore) []Alternative {
	if source.Salt == "" {
		return []Alternative{}
	}

	records := other.FindBySaltEquals(source.Salt)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Ptr, records[j].Ptr
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	alternatives := make([]Alternative, 0, len(records))
	for _, rec := range records {
		alternatives = append(alternatives, Alternative{
			Record:  rec,
			Savings: savingsPercent(source.Ptr, rec.Ptr),
		})
	}
	return alternatives
}

// savingsPercent computes (source-alt)/source*100 as a "40.00%" style
// string. The division is guarded: a missing price on either side, or a
// non-positive source price, yields nil.
func savingsPercent(source, alt *float64) *string {
	if source == nil || alt == nil || *source <= 0 {
		return nil
	}
	pct := (*source - *alt) / *source * 100
	s := fmt.Sprintf("%.2f%%", pct)
	return &s
}
