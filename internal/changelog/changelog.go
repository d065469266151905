package changelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"WagerWatch/internal/model"
)

// maxEntries caps the persisted history; the oldest entries are evicted first.
const maxEntries = 100

// Entry pairs a comparison result with the time it was recorded.
type Entry struct {
	Timestamp  time.Time              `json:"timestamp"`
	Comparison model.ComparisonResult `json:"comparison"`
}

// Log is a bounded append-only history of comparison runs, persisted as a
// JSON array. Appends rewrite the whole file; the cap keeps that cheap.
type Log struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// Open loads the log at path, starting empty if the file doesn't exist.
func Open(path string) (*Log, error) {
	l := &Log{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read change log: %w", err)
	}
	if err := json.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("parse change log: %w", err)
	}
	return l, nil
}

// Append records a comparison result with the current timestamp, evicts the
// oldest entries beyond the cap, and persists the log.
func (l *Log) Append(result *model.ComparisonResult) error {
	return l.appendAt(time.Now(), result)
}

func (l *Log) appendAt(ts time.Time, result *model.ComparisonResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{Timestamp: ts, Comparison: *result})
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
	return l.save()
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the stored entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) save() error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal change log: %w", err)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create change log dir: %w", err)
		}
	}
	return os.WriteFile(l.path, data, 0644)
}
