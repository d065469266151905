package compare

import (
	"errors"
	"testing"

	"WagerWatch/internal/model"
)

func mustDataset(t *testing.T, rows []model.RawRow) *model.Dataset {
	t.Helper()
	ds, err := model.NewDataset(rows)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}

func row(date, brand string, ggr string) model.RawRow {
	return model.RawRow{Date: date, Handle: "1000", GGR: ggr, Brand: brand}
}

func eventsOfType(result *model.ComparisonResult, typ model.ChangeType) []model.ChangeEvent {
	var out []model.ChangeEvent
	for _, c := range result.Changes {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

func TestCompare_InitialRun(t *testing.T) {
	current := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
		row("2025-01-05", "BetMGM", "50"),
	})
	result, err := Compare(current, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsInitial {
		t.Error("expected is_initial on bootstrap run")
	}
	if len(result.Changes) != 0 {
		t.Errorf("expected no changes on bootstrap run, got %d", len(result.Changes))
	}
	if result.TotalRecords != 2 {
		t.Errorf("expected 2 records, got %d", result.TotalRecords)
	}
	if result.BrandCount != 2 {
		t.Errorf("expected 2 brands, got %d", result.BrandCount)
	}
}

func TestCompare_IdenticalDatasets(t *testing.T) {
	rows := []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
		row("2025-01-12", "FanDuel", "110"),
		row("2025-01-12", "BetMGM", "50"),
	}
	current := mustDataset(t, rows)
	previous := mustDataset(t, rows)

	result, err := Compare(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsInitial {
		t.Error("comparison against a previous dataset must not be initial")
	}
	if len(result.Changes) != 0 {
		t.Errorf("identical datasets must produce no events, got %+v", result.Changes)
	}
}

func TestCompare_EmptyCurrentDataset(t *testing.T) {
	empty := mustDataset(t, nil)
	previous := mustDataset(t, []model.RawRow{row("2025-01-05", "FanDuel", "100")})

	if _, err := Compare(empty, previous); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
	if _, err := Compare(nil, previous); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset for nil current, got %v", err)
	}
}

func TestCompare_RecordCountChange(t *testing.T) {
	previous := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
	})
	current := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
		row("2025-01-05", "BetMGM", "50"),
	})

	result, err := Compare(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events := eventsOfType(result, model.ChangeRecordCount)
	if len(events) != 1 {
		t.Fatalf("expected exactly one record-count event, got %d", len(events))
	}
	if events[0].PreviousCount != 1 || events[0].CurrentCount != 2 {
		t.Errorf("count fields = (%d, %d), want (1, 2)", events[0].PreviousCount, events[0].CurrentCount)
	}
}

func TestCompare_BrandSetEventsCarryCompleteSets(t *testing.T) {
	previous := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
	})
	current := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
		row("2025-01-05", "Fanatics", "20"),
		row("2025-01-05", "Bally Bet", "10"),
	})

	result, err := Compare(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	added := eventsOfType(result, model.ChangeNewBrands)
	if len(added) != 1 {
		t.Fatalf("expected one new-brands event carrying the full set, got %d", len(added))
	}
	if len(added[0].Brands) != 2 {
		t.Errorf("expected 2 new brands in event, got %v", added[0].Brands)
	}
	if added[0].Brands[0] != "Bally Bet" || added[0].Brands[1] != "Fanatics" {
		t.Errorf("unexpected brand set: %v", added[0].Brands)
	}
	if len(eventsOfType(result, model.ChangeRemovedBrands)) != 0 {
		t.Error("no brands were removed")
	}
}

func TestCompare_RemovedBrands(t *testing.T) {
	previous := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
		row("2025-01-05", "BetMGM", "50"),
	})
	current := mustDataset(t, []model.RawRow{
		row("2025-01-05", "FanDuel", "100"),
	})

	result, err := Compare(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	removed := eventsOfType(result, model.ChangeRemovedBrands)
	if len(removed) != 1 || len(removed[0].Brands) != 1 || removed[0].Brands[0] != "BetMGM" {
		t.Errorf("expected one removed-brands event for BetMGM, got %+v", removed)
	}
}

func TestCompare_SignificantGGRThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name       string
		currentGGR string
		wantEvent  bool
	}{
		{"exactly +20 percent", "120", false},
		{"just above +20 percent", "120.01", true},
		{"well below threshold", "110", false},
		{"large drop", "70", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := mustDataset(t, []model.RawRow{row("2025-01-05", "FanDuel", "100")})
			current := mustDataset(t, []model.RawRow{row("2025-01-05", "FanDuel", tt.currentGGR)})

			result, err := Compare(current, previous)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			events := eventsOfType(result, model.ChangeSignificantGGR)
			if got := len(events) == 1; got != tt.wantEvent {
				t.Errorf("significant-change event present = %v, want %v", got, tt.wantEvent)
			}
		})
	}
}

func TestCompare_ZeroOrNegativeBaselineSkipsPercentage(t *testing.T) {
	for _, prevGGR := range []string{"0", "-50"} {
		previous := mustDataset(t, []model.RawRow{row("2025-01-05", "FanDuel", prevGGR)})
		current := mustDataset(t, []model.RawRow{row("2025-01-05", "FanDuel", "1000")})

		result, err := Compare(current, previous)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if events := eventsOfType(result, model.ChangeSignificantGGR); len(events) != 0 {
			t.Errorf("previous GGR %s must skip the percentage check, got %+v", prevGGR, events)
		}
	}
}

func TestCompare_NewWeeklyDataPerBrand(t *testing.T) {
	previous := mustDataset(t, []model.RawRow{
		row("2025-01-03", "FanDuel", "100"),
		row("2025-01-03", "BetMGM", "50"),
	})
	current := mustDataset(t, []model.RawRow{
		row("2025-01-10", "FanDuel", "100"),
		row("2025-01-10", "BetMGM", "50"),
	})

	result, err := Compare(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weekly := eventsOfType(result, model.ChangeNewWeeklyData)
	if len(weekly) != 2 {
		t.Fatalf("expected new-weekly-data for both brands, got %d", len(weekly))
	}
	seen := map[string]bool{}
	for _, e := range weekly {
		seen[e.Brand] = true
	}
	if !seen["FanDuel"] || !seen["BetMGM"] {
		t.Errorf("expected events for FanDuel and BetMGM, got %v", seen)
	}

	if events := eventsOfType(result, model.ChangeSignificantGGR); len(events) != 0 {
		t.Errorf("unchanged revenue must not emit significant-change events: %+v", events)
	}
	if events := eventsOfType(result, model.ChangeNewBrands); len(events) != 0 {
		t.Error("no brands were added")
	}
	if events := eventsOfType(result, model.ChangeRemovedBrands); len(events) != 0 {
		t.Error("no brands were removed")
	}
	if events := eventsOfType(result, model.ChangeRecordCount); len(events) != 0 {
		t.Error("record count is unchanged")
	}
	if events := eventsOfType(result, model.ChangeDateRange); len(events) != 1 {
		t.Errorf("expected one date-range event, got %d", len(events))
	}
}

func TestCompare_EmissionOrder(t *testing.T) {
	previous := mustDataset(t, []model.RawRow{
		row("2025-01-03", "FanDuel", "100"),
		row("2025-01-03", "Caesars", "80"),
	})
	current := mustDataset(t, []model.RawRow{
		row("2025-01-10", "FanDuel", "200"),
		row("2025-01-10", "BetMGM", "60"),
	})

	result, err := Compare(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.ChangeType{
		model.ChangeDateRange,
		model.ChangeNewBrands,
		model.ChangeRemovedBrands,
		model.ChangeNewWeeklyData,
		model.ChangeSignificantGGR,
	}
	if len(result.Changes) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(result.Changes), result.Changes)
	}
	for i, typ := range want {
		if result.Changes[i].Type != typ {
			t.Errorf("event %d: got type %s, want %s", i, result.Changes[i].Type, typ)
		}
	}
}
