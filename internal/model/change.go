package model

import (
	"fmt"
	"time"
)

// ChangeType classifies a detected difference between two snapshots.
type ChangeType string

const (
	ChangeRecordCount    ChangeType = "record_count"
	ChangeDateRange      ChangeType = "date_range"
	ChangeNewBrands      ChangeType = "new_brands"
	ChangeRemovedBrands  ChangeType = "removed_brands"
	ChangeNewWeeklyData  ChangeType = "new_weekly_data"
	ChangeSignificantGGR ChangeType = "significant_ggr_change"
)

// ChangeEvent is one detected difference. Only the fields relevant to its
// type are populated; Description is precomputed at detection time.
type ChangeEvent struct {
	Type        ChangeType `json:"type"`
	Description string     `json:"description"`

	PreviousCount int `json:"previous_count,omitempty"`
	CurrentCount  int `json:"current_count,omitempty"`

	PreviousRange string `json:"previous_range,omitempty"`
	CurrentRange  string `json:"current_range,omitempty"`

	Brands []string `json:"brands,omitempty"`

	Brand         string    `json:"brand,omitempty"`
	NewDate       time.Time `json:"new_date,omitzero"`
	PreviousDate  time.Time `json:"previous_date,omitzero"`
	ChangePercent float64   `json:"change_percent,omitempty"`
	PreviousGGR   float64   `json:"previous_ggr,omitempty"`
	CurrentGGR    float64   `json:"current_ggr,omitempty"`
}

// DateRange is an inclusive min/max span of observation dates.
type DateRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Min.Format(DateLayout), r.Max.Format(DateLayout))
}

// ComparisonResult is the outcome of one snapshot comparison.
// Built once by the change-detection engine and never mutated afterwards.
type ComparisonResult struct {
	IsInitial    bool          `json:"is_initial"`
	TotalRecords int           `json:"total_records"`
	DateRange    DateRange     `json:"date_range"`
	BrandCount   int           `json:"brand_count"`
	Changes      []ChangeEvent `json:"changes"`
}
