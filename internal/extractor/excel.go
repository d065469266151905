package extractor

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"WagerWatch/internal/model"

	"github.com/xuri/excelize/v2"
)

// headerMarker identifies the column-header row inside a regulator workbook.
// Everything above it is free-form title text.
const headerMarker = "Week-Ending"

// Known columns in the weekly report layout, relative to the header row.
const (
	colDate   = 0
	colHandle = 2
	colGGR    = 5
)

var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ExtractFile pulls weekly rows for one brand out of a report workbook.
// Rows that fail to parse are skipped here — structural validation of the
// combined dataset happens later at Dataset construction.
func ExtractFile(path, brand string) ([]model.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var out []model.RawRow
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Printf("[WARN] %s: read sheet %q: %v", brand, sheet, err)
			continue
		}

		headerRow := -1
		for i, row := range rows {
			if len(row) > 0 && strings.Contains(row[0], headerMarker) {
				headerRow = i
				break
			}
		}
		if headerRow < 0 {
			log.Printf("[WARN] %s: no %q header row in sheet %q", brand, headerMarker, sheet)
			continue
		}

		for _, row := range rows[headerRow+1:] {
			raw, ok := parseRow(row, brand)
			if ok {
				out = append(out, raw)
			}
		}
	}
	return out, nil
}

func parseRow(row []string, brand string) (model.RawRow, bool) {
	if len(row) <= colGGR {
		return model.RawRow{}, false
	}
	date, ok := parseReportDate(row[colDate])
	if !ok {
		return model.RawRow{}, false
	}
	ggr, ok := parseAmount(row[colGGR])
	if !ok || ggr <= 0 {
		// Negative and zero GGR weeks are filtered upstream of the dataset.
		return model.RawRow{}, false
	}

	var handle string
	if len(row) > colHandle {
		if h, ok := parseAmount(row[colHandle]); ok {
			handle = strconv.FormatFloat(h, 'f', -1, 64)
		}
	}
	return model.RawRow{
		Date:   date.Format(model.DateLayout),
		Handle: handle,
		GGR:    strconv.FormatFloat(ggr, 'f', -1, 64),
		Brand:  brand,
	}, true
}

func parseReportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	// Accounting notation for negatives.
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.Trim(s, "()")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
