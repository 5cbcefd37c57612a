package ingest

import (
	"strconv"
	"strings"

	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/interfaces"
	"github.com/rxbridge/generics-api/matcher"
	"github.com/rxbridge/generics-api/metrics"
)

// Result counts the outcome of one ingestion run.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Total returns the number of rows that produced a record.
func (r Result) Total() int {
	return r.Created + r.Updated
}

// Ingest derives a catalog record from each row and upserts it into the
// store. The product name is the upsert key, so a re-upload of the same file
// counts every row as updated. Unparseable numeric cells become absent
// values rather than failing the row.
func Ingest(rows []Row, kind catalog.Kind, store interfaces.RecordStore) Result {
	var result Result
	for _, row := range rows {
		if row.ProductName == "" {
			result.Skipped++
			metrics.IngestRowsTotal.WithLabelValues(string(kind), "skipped").Inc()
			continue
		}

		record := catalog.Record{
			Name:        row.ProductName,
			Salt:        matcher.ExtractSalt(row.Contents),
			Contents:    matcher.CleanContents(row.Contents),
			Form:        matcher.DetectForm(row.ProductName),
			Packing:     row.Packing,
			Ptr:         parseFloat(row.Ptr),
			Mrp:         parseFloat(row.Mrp),
			ShipperSize: parseInt(row.ShipperSize),
		}

		if store.Upsert(record) {
			result.Created++
			metrics.IngestRowsTotal.WithLabelValues(string(kind), "created").Inc()
		} else {
			result.Updated++
			metrics.IngestRowsTotal.WithLabelValues(string(kind), "updated").Inc()
		}
	}

	metrics.CatalogRecords.WithLabelValues(string(kind)).Set(float64(store.Len()))
	return result
}

// parseFloat reads a price cell, tolerating thousands separators. Returns
// nil when the cell is empty or not a number.
func parseFloat(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
