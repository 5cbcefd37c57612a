// Package ingest turns uploaded tabular files into catalog records: a
// delimiter-sniffing table reader that locates the header row, and the
// ingestor that derives salt, contents and dosage form per row and upserts
// into a catalog store.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Column headers the row mapper understands. Anything else in the header row
// is ignored.
const (
	colProductName = "PRODUCT NAME"
	colContents    = "CONTENTS"
	colPacking     = "PACKING"
	colPtr         = "PTR"
	colMrp         = "MRP"
	colShipperSize = "SHIPPER SIZE"
)

// ErrHeaderNotFound reports tabular input with no PRODUCT NAME header cell
// in any row.
var ErrHeaderNotFound = errors.New("header row with PRODUCT NAME column not found")

// Row is one parsed table row. Fields hold the raw trimmed cell text; the
// ingestor decides how to interpret them.
type Row struct {
	ProductName string
	Contents    string
	Packing     string
	Ptr         string
	Mrp         string
	ShipperSize string
}

// ParseTable reads a CSV or TSV table, locates the header row by scanning
// from the top for a PRODUCT NAME cell, and maps every following row into a
// typed Row. Rows whose product name is empty after trimming are omitted.
// Supplier exports are sometimes ISO-8859-1, so non-UTF-8 input is decoded
// before parsing.
func ParseTable(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode table as ISO-8859-1: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}

	headerIdx, columns := findHeader(lines)
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	var rows []Row
	for _, line := range lines[headerIdx+1:] {
		row := mapRow(line, columns)
		if row.ProductName == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// sniffDelimiter picks tab or comma based on the first non-empty line.
func sniffDelimiter(raw []byte) rune {
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, "\t") > strings.Count(line, ",") {
			return '\t'
		}
		return ','
	}
	return ','
}

// findHeader scans rows from the top and returns the index of the first one
// containing a PRODUCT NAME cell (after trimming and case-folding), along
// with a column-name to position map for that row.
func findHeader(lines [][]string) (int, map[string]int) {
	for i, line := range lines {
		columns := make(map[string]int, len(line))
		for pos, cell := range line {
			name := strings.ToUpper(strings.TrimSpace(cell))
			if name == "" {
				continue
			}
			if _, dup := columns[name]; !dup {
				columns[name] = pos
			}
		}
		if _, ok := columns[colProductName]; ok {
			return i, columns
		}
	}
	return -1, nil
}

func mapRow(line []string, columns map[string]int) Row {
	cell := func(name string) string {
		pos, ok := columns[name]
		if !ok || pos >= len(line) {
			return ""
		}
		return strings.TrimSpace(line[pos])
	}

	return Row{
		ProductName: cell(colProductName),
		Contents:    cell(colContents),
		Packing:     cell(colPacking),
		Ptr:         cell(colPtr),
		Mrp:         cell(colMrp),
		ShipperSize: cell(colShipperSize),
	}
}
