package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"WagerWatch/internal/model"

	"github.com/dustin/go-humanize"
)

// ErrEmptyDataset is returned when the current snapshot has no records.
// Malformed rows should already have failed at Dataset construction.
var ErrEmptyDataset = errors.New("current dataset has no records")

// SignificantChangePct is the GGR delta threshold, strictly exceeded, that
// turns a weekly revision into a significant-change event.
const SignificantChangePct = 20.0

// Compare diffs the current snapshot against the previous one and returns the
// detected changes in a fixed order: record count, date range, new brands,
// removed brands, then per-brand checks over the shared brands sorted by name.
// A nil previous dataset marks the bootstrap run and produces an initial
// result with no changes.
func Compare(current, previous *model.Dataset) (*model.ComparisonResult, error) {
	if current == nil || current.Count() == 0 {
		return nil, ErrEmptyDataset
	}

	curMin, curMax, _ := current.DateRange()
	result := &model.ComparisonResult{
		TotalRecords: current.Count(),
		DateRange:    model.DateRange{Min: curMin, Max: curMax},
		BrandCount:   len(current.BrandNames()),
		Changes:      []model.ChangeEvent{},
	}

	if previous == nil {
		result.IsInitial = true
		return result, nil
	}
	if previous.Count() == 0 {
		return nil, errors.New("previous dataset has no records")
	}

	if evt, ok := compareCounts(current, previous); ok {
		result.Changes = append(result.Changes, evt)
	}
	if evt, ok := compareDateRanges(result.DateRange, previous); ok {
		result.Changes = append(result.Changes, evt)
	}
	result.Changes = append(result.Changes, compareBrandSets(current, previous)...)
	result.Changes = append(result.Changes, compareBrandFigures(current, previous)...)

	return result, nil
}

func compareCounts(current, previous *model.Dataset) (model.ChangeEvent, bool) {
	if current.Count() == previous.Count() {
		return model.ChangeEvent{}, false
	}
	return model.ChangeEvent{
		Type: model.ChangeRecordCount,
		Description: fmt.Sprintf("Total records changed from %s to %s",
			humanize.Comma(int64(previous.Count())), humanize.Comma(int64(current.Count()))),
		PreviousCount: previous.Count(),
		CurrentCount:  current.Count(),
	}, true
}

func compareDateRanges(current model.DateRange, previous *model.Dataset) (model.ChangeEvent, bool) {
	prevMin, prevMax, _ := previous.DateRange()
	prev := model.DateRange{Min: prevMin, Max: prevMax}
	if prev.Min.Equal(current.Min) && prev.Max.Equal(current.Max) {
		return model.ChangeEvent{}, false
	}
	return model.ChangeEvent{
		Type:          model.ChangeDateRange,
		Description:   fmt.Sprintf("Date range changed from %s to %s", prev, current),
		PreviousRange: prev.String(),
		CurrentRange:  current.String(),
	}, true
}

// compareBrandSets emits at most two events, each carrying the complete set of
// appeared or disappeared brands.
func compareBrandSets(current, previous *model.Dataset) []model.ChangeEvent {
	curBrands := toSet(current.BrandNames())
	prevBrands := toSet(previous.BrandNames())

	var events []model.ChangeEvent
	if added := setDiff(curBrands, prevBrands); len(added) > 0 {
		events = append(events, model.ChangeEvent{
			Type:        model.ChangeNewBrands,
			Description: fmt.Sprintf("New brands detected: %s", strings.Join(added, ", ")),
			Brands:      added,
		})
	}
	if removed := setDiff(prevBrands, curBrands); len(removed) > 0 {
		events = append(events, model.ChangeEvent{
			Type:        model.ChangeRemovedBrands,
			Description: fmt.Sprintf("Brands removed: %s", strings.Join(removed, ", ")),
			Brands:      removed,
		})
	}
	return events
}

// compareBrandFigures walks the brands present in both snapshots and checks,
// per brand, whether a new weekly period landed and whether the latest GGR
// moved by more than the significance threshold. Brands with a zero or
// negative previous GGR skip the percentage check: there is no meaningful
// baseline to measure against.
func compareBrandFigures(current, previous *model.Dataset) []model.ChangeEvent {
	curLatest := current.LatestPerBrand()
	prevLatest := previous.LatestPerBrand()

	shared := make([]string, 0, len(curLatest))
	for brand := range curLatest {
		if _, ok := prevLatest[brand]; ok {
			shared = append(shared, brand)
		}
	}
	sort.Strings(shared)

	var events []model.ChangeEvent
	for _, brand := range shared {
		cur, prev := curLatest[brand], prevLatest[brand]

		if !cur.LatestDate.Equal(prev.LatestDate) {
			events = append(events, model.ChangeEvent{
				Type:         model.ChangeNewWeeklyData,
				Description:  fmt.Sprintf("%s: new weekly data available", brand),
				Brand:        brand,
				NewDate:      cur.LatestDate,
				PreviousDate: prev.LatestDate,
			})
		}

		if prev.LatestRevenue <= 0 {
			continue
		}
		pct := (cur.LatestRevenue - prev.LatestRevenue) / prev.LatestRevenue * 100
		if math.Abs(pct) > SignificantChangePct {
			events = append(events, model.ChangeEvent{
				Type: model.ChangeSignificantGGR,
				Description: fmt.Sprintf("%s: GGR changed by %.1f%% ($%s → $%s)",
					brand, pct, humanize.CommafWithDigits(prev.LatestRevenue, 0),
					humanize.CommafWithDigits(cur.LatestRevenue, 0)),
				Brand:         brand,
				ChangePercent: pct,
				PreviousGGR:   prev.LatestRevenue,
				CurrentGGR:    cur.LatestRevenue,
			})
		}
	}
	return events
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// setDiff returns the members of a that are absent from b, sorted.
func setDiff(a, b map[string]bool) []string {
	var out []string
	for n := range a {
		if !b[n] {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
