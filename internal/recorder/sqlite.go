package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"WagerWatch/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the monitor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			is_initial    INTEGER NOT NULL,
			total_records INTEGER,
			brand_count   INTEGER,
			date_min      TEXT,
			date_max      TEXT,
			change_count  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS change_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			type           TEXT NOT NULL,
			brand          TEXT,
			description    TEXT,
			change_percent REAL,
			previous_ggr   REAL,
			current_ggr    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_run ON change_events(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord, changes []model.ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, timestamp, is_initial, total_records, brand_count, date_min, date_max, change_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.RunID, now, run.IsInitial,
		run.TotalRecords, run.BrandCount,
		run.DateMin.Format(model.DateLayout), run.DateMax.Format(model.DateLayout),
		run.ChangeCount,
	)
	if err != nil {
		return err
	}

	for _, c := range changes {
		_, err = tx.Exec(`INSERT INTO change_events
			(run_id, timestamp, type, brand, description, change_percent, previous_ggr, current_ggr)
			VALUES (?,?,?,?,?,?,?,?)`,
			run.RunID, now, string(c.Type), c.Brand, c.Description,
			c.ChangePercent, c.PreviousGGR, c.CurrentGGR,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
