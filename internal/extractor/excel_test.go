package extractor

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeReportFixture builds a workbook shaped like a regulator weekly report:
// title rows, a "Week-Ending" header, then data in columns A/C/F.
func writeReportFixture(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue("Sheet1", "A1", "Mobile Sports Wagering Weekly Report"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "A3", "Week-Ending"); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "C3", "Handle"); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "F3", "GGR"); err != nil {
		t.Fatalf("set header: %v", err)
	}

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+4)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestExtractFile(t *testing.T) {
	path := writeReportFixture(t, [][]any{
		{"2025-01-05", nil, "1,000,000", nil, nil, "$85,000.50"},
		{"2025-01-12", nil, "900000", nil, nil, "70000"},
	})

	rows, err := ExtractFile(path, "FanDuel")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	first := rows[0]
	if first.Date != "2025-01-05" || first.Brand != "FanDuel" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.GGR != "85000.5" {
		t.Errorf("GGR = %q, want 85000.5", first.GGR)
	}
	if first.Handle != "1000000" {
		t.Errorf("Handle = %q, want 1000000", first.Handle)
	}
}

func TestExtractFile_SkipsBadRows(t *testing.T) {
	path := writeReportFixture(t, [][]any{
		{"2025-01-05", nil, "1000", nil, nil, "500"},
		{"Totals", nil, "9999", nil, nil, "9999"},     // footer, no date
		{"2025-01-12", nil, "1000", nil, nil, "0"},    // zero GGR filtered
		{"2025-01-19", nil, "1000", nil, nil, "(25)"}, // negative GGR filtered
		{"2025-01-26", nil, "", nil, nil, "300"},      // empty handle kept
	})

	rows, err := ExtractFile(path, "BetMGM")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d: %+v", len(rows), rows)
	}
	if rows[1].Date != "2025-01-26" || rows[1].Handle != "" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestExtractFile_NoHeaderRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellValue("Sheet1", "A1", "nothing useful here"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	rows, err := ExtractFile(path, "FanDuel")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows without a header marker, got %d", len(rows))
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1,234.56", 1234.56, true},
		{"$500", 500, true},
		{"(42)", -42, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
