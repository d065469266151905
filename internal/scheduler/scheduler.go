package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"WagerWatch/internal/changelog"
	"WagerWatch/internal/collector"
	"WagerWatch/internal/compare"
	"WagerWatch/internal/extractor"
	"WagerWatch/internal/model"
	"WagerWatch/internal/notifier"
	"WagerWatch/internal/recorder"
	"WagerWatch/internal/report"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Paths are the on-disk artifact locations the pipeline reads and writes.
type Paths struct {
	ReportsDir   string
	AnalysisXLSX string
	CurrentCSV   string
}

// Scheduler runs the weekly monitoring pipeline on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Store     *extractor.Store
	Notifier  *notifier.EmailNotifier
	Recorder  recorder.Recorder
	Log       *changelog.Log
	Paths     Paths
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, store *extractor.Store, en *notifier.EmailNotifier, rec recorder.Recorder, cl *changelog.Log, paths Paths) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Store:     store,
		Notifier:  en,
		Recorder:  rec,
		Log:       cl,
		Paths:     paths,
		Ctx:       ctx,
	}
}

// RegisterAll registers the weekly monitoring task.
func (s *Scheduler) RegisterAll(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the monitoring pipeline immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.weeklyTask()
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly monitoring task")
	if err := s.runOnce(); err != nil {
		log.Printf("[ERROR] weekly task: %v", err)
	}
}

// runOnce executes one full monitoring cycle: download, extract, compare,
// report, notify, record, then promote the baseline.
func (s *Scheduler) runOnce() error {
	runDir := filepath.Join(s.Paths.ReportsDir, time.Now().Format(model.DateLayout))
	downloaded, err := s.Collector.Download(s.Ctx, runDir)
	if err != nil {
		return fmt.Errorf("download reports: %w", err)
	}

	var rows []model.RawRow
	for _, rep := range s.Collector.Reports {
		path, ok := downloaded[rep.Name]
		if !ok {
			continue
		}
		fileRows, err := extractor.ExtractFile(path, rep.Name)
		if err != nil {
			log.Printf("[WARN] extract %s: %v", rep.Name, err)
			continue
		}
		log.Printf("[INFO] extracted %d rows from %s", len(fileRows), rep.Name)
		rows = append(rows, fileRows...)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows extracted from %d downloaded reports", len(downloaded))
	}

	if err := s.Store.SaveCurrent(rows); err != nil {
		return fmt.Errorf("save current snapshot: %w", err)
	}
	current, err := s.Store.LoadCurrent()
	if err != nil {
		return fmt.Errorf("load current snapshot: %w", err)
	}
	previous, hasBaseline, err := s.Store.LoadBaseline()
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	if !hasBaseline {
		log.Println("[INFO] no baseline found - this is the first run")
	}

	result, err := compare.Compare(current, previous)
	if err != nil {
		return fmt.Errorf("compare snapshots: %w", err)
	}
	log.Printf("[INFO] comparison result:\n%s", notifier.FormatSummary(result))

	if err := s.Log.Append(result); err != nil {
		log.Printf("[ERROR] append change log: %v", err)
	}

	if err := report.WriteWorkbook(s.Paths.AnalysisXLSX, report.BuildSheets(current)); err != nil {
		return fmt.Errorf("write analysis workbook: %w", err)
	}
	log.Printf("[INFO] analysis workbook written: %s", s.Paths.AnalysisXLSX)

	if result.IsInitial || len(result.Changes) > 0 {
		s.notify(result)
	}

	s.record(result)

	if err := s.Store.PromoteBaseline(); err != nil {
		return fmt.Errorf("promote baseline: %w", err)
	}
	log.Println("[INFO] baseline updated for next comparison")
	return nil
}

func (s *Scheduler) notify(result *model.ComparisonResult) {
	if !s.Notifier.Configured() {
		log.Println("[WARN] email not configured - skipping notification")
		return
	}
	subject := fmt.Sprintf("Sports Wagering Data Update - %s", time.Now().Format("2006-01-02 15:04"))
	body := notifier.FormatEmailBody(result)

	var attachments []notifier.Attachment
	if data, err := os.ReadFile(s.Paths.AnalysisXLSX); err == nil {
		attachments = append(attachments, notifier.Attachment{
			Filename: filepath.Base(s.Paths.AnalysisXLSX),
			MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:  data,
		})
	}
	if data, err := os.ReadFile(s.Paths.CurrentCSV); err == nil {
		attachments = append(attachments, notifier.Attachment{
			Filename: filepath.Base(s.Paths.CurrentCSV),
			MIMEType: "text/csv",
			Content:  data,
		})
	}

	if err := s.Notifier.SendWithRetry(s.Ctx, subject, body, attachments, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	} else {
		log.Printf("[INFO] notification sent to %s", s.Notifier.To)
	}
}

func (s *Scheduler) record(result *model.ComparisonResult) {
	run := &recorder.RunRecord{
		RunID:        uuid.NewString(),
		IsInitial:    result.IsInitial,
		TotalRecords: result.TotalRecords,
		BrandCount:   result.BrandCount,
		DateMin:      result.DateRange.Min,
		DateMax:      result.DateRange.Max,
		ChangeCount:  len(result.Changes),
	}
	if err := s.Recorder.RecordRun(run, result.Changes); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
