package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 date format used across CSV files and reports.
const DateLayout = "2006-01-02"

// RawRow is a single extracted report row before validation.
type RawRow struct {
	Date   string // ISO 8601 date, required
	Handle string // numeric string, may be empty
	GGR    string // decimal, required
	Brand  string // operator display name, required
}

// Observation is one validated weekly figure for a brand.
type Observation struct {
	Date    time.Time
	Brand   string
	Handle  float64
	Revenue float64 // GGR
}

// InvalidDataError reports a raw row that failed structural validation.
type InvalidDataError struct {
	Row    int
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data at row %d: %s", e.Row, e.Reason)
}

// BrandSummary is the most recent observation for a single brand.
type BrandSummary struct {
	Brand         string
	LatestDate    time.Time
	LatestHandle  float64
	LatestRevenue float64
}

// Dataset is an ordered collection of observations, read-only once constructed.
type Dataset struct {
	obs []Observation
}

// NewDataset validates raw rows and builds a Dataset. Any row missing a date,
// brand, or GGR, or carrying a non-numeric amount, fails the whole construction
// with an InvalidDataError; row-level skipping belongs to the extractor, not here.
func NewDataset(rows []RawRow) (*Dataset, error) {
	obs := make([]Observation, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Date) == "" {
			return nil, &InvalidDataError{Row: i, Reason: "missing date"}
		}
		if strings.TrimSpace(row.Brand) == "" {
			return nil, &InvalidDataError{Row: i, Reason: "missing brand"}
		}
		if strings.TrimSpace(row.GGR) == "" {
			return nil, &InvalidDataError{Row: i, Reason: "missing GGR"}
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, &InvalidDataError{Row: i, Reason: fmt.Sprintf("unparseable date %q", row.Date)}
		}
		ggr, err := strconv.ParseFloat(strings.TrimSpace(row.GGR), 64)
		if err != nil {
			return nil, &InvalidDataError{Row: i, Reason: fmt.Sprintf("non-numeric GGR %q", row.GGR)}
		}
		var handle float64
		if h := strings.TrimSpace(row.Handle); h != "" {
			handle, err = strconv.ParseFloat(h, 64)
			if err != nil {
				return nil, &InvalidDataError{Row: i, Reason: fmt.Sprintf("non-numeric handle %q", row.Handle)}
			}
		}
		obs = append(obs, Observation{Date: date, Brand: row.Brand, Handle: handle, Revenue: ggr})
	}
	return &Dataset{obs: obs}, nil
}

// Count returns the number of observations.
func (d *Dataset) Count() int {
	return len(d.obs)
}

// Observations returns a copy of the observation sequence in input order.
func (d *Dataset) Observations() []Observation {
	out := make([]Observation, len(d.obs))
	copy(out, d.obs)
	return out
}

// DateRange returns the minimum and maximum observation dates.
// ok is false on an empty dataset; callers must check Count first.
func (d *Dataset) DateRange() (min, max time.Time, ok bool) {
	if len(d.obs) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.obs[0].Date, d.obs[0].Date
	for _, o := range d.obs[1:] {
		if o.Date.Before(min) {
			min = o.Date
		}
		if o.Date.After(max) {
			max = o.Date
		}
	}
	return min, max, true
}

// BrandNames returns the distinct brand identifiers, sorted.
func (d *Dataset) BrandNames() []string {
	seen := make(map[string]bool, len(d.obs))
	names := make([]string, 0)
	for _, o := range d.obs {
		if !seen[o.Brand] {
			seen[o.Brand] = true
			names = append(names, o.Brand)
		}
	}
	sort.Strings(names)
	return names
}

// LatestPerBrand reduces the dataset to the most recent observation for each
// brand. When several rows share a brand's maximum date the last one in input
// order wins.
func (d *Dataset) LatestPerBrand() map[string]BrandSummary {
	latest := make(map[string]BrandSummary)
	for _, o := range d.obs {
		cur, ok := latest[o.Brand]
		if !ok || !o.Date.Before(cur.LatestDate) {
			latest[o.Brand] = BrandSummary{
				Brand:         o.Brand,
				LatestDate:    o.Date,
				LatestHandle:  o.Handle,
				LatestRevenue: o.Revenue,
			}
		}
	}
	return latest
}
