package validation

import (
	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/interfaces"
)

// QualityReport summarizes the health of one catalog after ingestion.
type QualityReport struct {
	Records      int                  `json:"records"`
	MissingSalt  int                  `json:"missing_salt"`
	MissingPrice int                  `json:"missing_price"`
	FormCounts   map[catalog.Form]int `json:"form_counts"`
}

// ReportQuality scans a catalog store and counts the records that the
// matching engine cannot fully use: missing salt keys rule a record out of
// cross-referencing, missing trade prices rule it out of savings figures.
func ReportQuality(store interfaces.RecordStore) *QualityReport {
	report := &QualityReport{
		FormCounts: make(map[catalog.Form]int),
	}

	for _, rec := range store.FindAll() {
		report.Records++
		if rec.Salt == "" {
			report.MissingSalt++
		}
		if rec.Ptr == nil {
			report.MissingPrice++
		}
		if rec.Form != "" {
			report.FormCounts[rec.Form]++
		}
	}

	return report
}
