package recorder

import (
	"time"

	"WagerWatch/internal/model"
)

// RunRecord captures one monitoring run for later analysis.
type RunRecord struct {
	RunID        string
	IsInitial    bool
	TotalRecords int
	BrandCount   int
	DateMin      time.Time
	DateMax      time.Time
	ChangeCount  int
}

// Recorder persists run history.
type Recorder interface {
	RecordRun(run *RunRecord, changes []model.ChangeEvent) error
	Close() error
}
