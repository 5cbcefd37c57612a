package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTableCSV(t *testing.T) {
	input := strings.Join([]string{
		"PRODUCT NAME,CONTENTS,PACKING,PTR,MRP,SHIPPER SIZE",
		"CROCIN 650 TAB,PARACETAMOL 650MG,15 TAB,60.00,75.00,100",
		"DOLO 650,PARACETAMOL 650MG,15 TAB,55.50,70.00,",
	}, "\n")

	rows, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ProductName != "CROCIN 650 TAB" {
		t.Errorf("Expected CROCIN 650 TAB, got %q", first.ProductName)
	}
	if first.Contents != "PARACETAMOL 650MG" {
		t.Errorf("Unexpected contents %q", first.Contents)
	}
	if first.Ptr != "60.00" || first.Mrp != "75.00" || first.ShipperSize != "100" {
		t.Errorf("Unexpected numeric cells: %+v", first)
	}

	if rows[1].ShipperSize != "" {
		t.Errorf("Expected empty shipper size, got %q", rows[1].ShipperSize)
	}
}

func TestParseTableTSV(t *testing.T) {
	input := "PRODUCT NAME\tCONTENTS\tPTR\nCROCIN\tPARACETAMOL 650MG\t60.00\n"

	rows, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].ProductName != "CROCIN" || rows[0].Ptr != "60.00" {
		t.Errorf("Unexpected row: %+v", rows[0])
	}
}

func TestParseTableHeaderNotOnFirstLine(t *testing.T) {
	input := strings.Join([]string{
		"Price list August 2026,,",
		",,",
		"PRODUCT NAME,CONTENTS,PTR",
		"CROCIN,PARACETAMOL 650MG,60.00",
	}, "\n")

	rows, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].ProductName != "CROCIN" {
		t.Errorf("Expected CROCIN, got %q", rows[0].ProductName)
	}
}

func TestParseTableHeaderCaseAndPadding(t *testing.T) {
	input := " product name , contents \nCROCIN,PARACETAMOL 650MG\n"

	rows, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Contents != "PARACETAMOL 650MG" {
		t.Errorf("Unexpected rows: %+v", rows)
	}
}

func TestParseTableNoHeader(t *testing.T) {
	input := "NAME,PRICE\nCROCIN,60.00\n"

	_, err := ParseTable(strings.NewReader(input))
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("Expected ErrHeaderNotFound, got %v", err)
	}
}

func TestParseTableSkipsBlankProductNames(t *testing.T) {
	input := strings.Join([]string{
		"PRODUCT NAME,CONTENTS",
		"CROCIN,PARACETAMOL 650MG",
		",ORPHAN ROW",
		"   ,ANOTHER ORPHAN",
		"DOLO,PARACETAMOL 650MG",
	}, "\n")

	rows, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
}

func TestParseTableShortRows(t *testing.T) {
	// Row has fewer cells than the header
	input := "PRODUCT NAME,CONTENTS,PTR\nCROCIN,PARACETAMOL 650MG\n"

	rows, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Ptr != "" {
		t.Errorf("Expected empty PTR for short row, got %q", rows[0].Ptr)
	}
}

func TestParseTableISO88591(t *testing.T) {
	// 0xE9 is é in ISO-8859-1 and invalid on its own in UTF-8
	input := []byte("PRODUCT NAME,CONTENTS\nCAF\xc9 PILLS,CAFFEINE 50MG\n")

	rows, err := ParseTable(strings.NewReader(string(input)))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].ProductName != "CAFÉ PILLS" {
		t.Errorf("Expected decoded CAFÉ PILLS, got %q", rows[0].ProductName)
	}
}
