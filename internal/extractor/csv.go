package extractor

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"WagerWatch/internal/model"
)

var csvHeader = []string{"Date", "Handle", "GGR", "Brand"}

// Store manages the canonical CSV dataset on disk: the current snapshot and
// the baseline the next run compares against.
type Store struct {
	CurrentPath  string
	BaselinePath string
}

// SaveCurrent writes rows, sorted by date then brand, as the current snapshot.
func (s *Store) SaveCurrent(rows []model.RawRow) error {
	sorted := make([]model.RawRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Brand < sorted[j].Brand
	})
	return writeCSV(s.CurrentPath, sorted)
}

// LoadCurrent reads and validates the current snapshot.
func (s *Store) LoadCurrent() (*model.Dataset, error) {
	rows, err := readCSV(s.CurrentPath)
	if err != nil {
		return nil, err
	}
	return model.NewDataset(rows)
}

// LoadBaseline reads the previous snapshot. ok is false on the first-ever
// run, when no baseline exists yet; that is not an error.
func (s *Store) LoadBaseline() (ds *model.Dataset, ok bool, err error) {
	if _, err := os.Stat(s.BaselinePath); os.IsNotExist(err) {
		return nil, false, nil
	}
	rows, err := readCSV(s.BaselinePath)
	if err != nil {
		return nil, false, err
	}
	ds, err = model.NewDataset(rows)
	if err != nil {
		return nil, false, err
	}
	return ds, true, nil
}

// PromoteBaseline makes the current snapshot the baseline for the next run.
func (s *Store) PromoteBaseline() error {
	data, err := os.ReadFile(s.CurrentPath)
	if err != nil {
		return fmt.Errorf("read current snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.BaselinePath), 0755); err != nil {
		return fmt.Errorf("create baseline dir: %w", err)
	}
	return os.WriteFile(s.BaselinePath, data, 0644)
}

func writeCSV(path string, rows []model.RawRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Date, r.Handle, r.GGR, r.Brand}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var rows []model.RawRow
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == csvHeader[0] {
			continue // header row
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("%s: row %d has %d columns, want 4", path, i, len(rec))
		}
		rows = append(rows, model.RawRow{Date: rec[0], Handle: rec[1], GGR: rec[2], Brand: rec[3]})
	}
	return rows, nil
}
