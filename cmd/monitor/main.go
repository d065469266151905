package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"WagerWatch/internal/changelog"
	"WagerWatch/internal/collector"
	"WagerWatch/internal/config"
	"WagerWatch/internal/extractor"
	"WagerWatch/internal/notifier"
	"WagerWatch/internal/recorder"
	"WagerWatch/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] WagerWatch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init collector
	fetcher := collector.NewHTTPFetcher(cfg.Proxy)
	col := collector.NewCollector(fetcher, cfg.Reports)
	log.Printf("[INFO] tracking %d operator reports", len(cfg.Reports))

	// Init dataset store
	store := &extractor.Store{
		CurrentPath:  cfg.Paths.CurrentCSV,
		BaselinePath: cfg.Paths.BaselineCSV,
	}

	// Init change log
	cl, err := changelog.Open(cfg.Paths.ChangeLog)
	if err != nil {
		log.Fatalf("[FATAL] open change log: %v", err)
	}

	// Init email notifier
	en := notifier.NewEmailNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.NotifyTo)
	if !en.Configured() {
		log.Println("[WARN] email credentials not configured - notifications will be skipped")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Paths.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Paths.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, store, en, rec, cl, scheduler.Paths{
		ReportsDir:   cfg.Paths.ReportsDir,
		AnalysisXLSX: cfg.Paths.AnalysisXLSX,
		CurrentCSV:   cfg.Paths.CurrentCSV,
	})
	if err := sched.RegisterAll(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing weekly task now")
		go sched.RunNow()
	}

	log.Println("[INFO] WagerWatch is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] WagerWatch stopped")
}
