package changelog

import (
	"path/filepath"
	"testing"

	"WagerWatch/internal/model"
)

func result(totalRecords int) *model.ComparisonResult {
	return &model.ComparisonResult{
		TotalRecords: totalRecords,
		BrandCount:   3,
		Changes:      []model.ChangeEvent{},
	}
}

func TestLog_AppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_changes.json")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := l.Append(result(10)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Append(result(20)); err != nil {
		t.Fatalf("append: %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", len(entries))
	}
	if entries[0].Comparison.TotalRecords != 10 || entries[1].Comparison.TotalRecords != 20 {
		t.Errorf("entries out of order: %d, %d",
			entries[0].Comparison.TotalRecords, entries[1].Comparison.TotalRecords)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("entries must carry a timestamp")
	}
}

func TestLog_CapEvictsOldestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_changes.json")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 1; i <= 105; i++ {
		if err := l.Append(result(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	if l.Len() != 100 {
		t.Fatalf("log must never exceed 100 entries, got %d", l.Len())
	}
	entries := l.Entries()
	if entries[0].Comparison.TotalRecords != 6 {
		t.Errorf("oldest surviving entry should be the 6th append, got %d",
			entries[0].Comparison.TotalRecords)
	}
	if entries[99].Comparison.TotalRecords != 105 {
		t.Errorf("newest entry should be the 105th append, got %d",
			entries[99].Comparison.TotalRecords)
	}
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "nope", "data_changes.json"))
	if err != nil {
		t.Fatalf("open missing file: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty log, got %d entries", l.Len())
	}
}
