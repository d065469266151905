package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"WagerWatch/internal/collector"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		NotifyTo string `yaml:"notify_to"`
	} `yaml:"smtp"`
	Reports []collector.Report `yaml:"reports"`
	Paths   struct {
		DataDir      string `yaml:"data_dir"`
		CurrentCSV   string `yaml:"current_csv"`
		BaselineCSV  string `yaml:"baseline_csv"`
		ChangeLog    string `yaml:"change_log"`
		AnalysisXLSX string `yaml:"analysis_xlsx"`
		SQLitePath   string `yaml:"sqlite_path"`
		ReportsDir   string `yaml:"reports_dir"`
	} `yaml:"paths"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// defaultReports are the operator weekly reports published by the NY regulator.
func defaultReports() []collector.Report {
	return []collector.Report{
		{Name: "Bally Bet", URL: "https://gaming.ny.gov/ballybet-weekly-report-excel", Filename: "Bally_Bet_Weekly_Report.xlsx"},
		{Name: "BetMGM", URL: "https://gaming.ny.gov/betmgm-weekly-report-excel", Filename: "BetMGM_Weekly_Report.xlsx"},
		{Name: "Caesars Sport Book", URL: "https://gaming.ny.gov/caesars-sport-book-weekly-report-excel", Filename: "Caesars_Sport_Book_Weekly_Report.xlsx"},
		{Name: "DraftKings Sport Book", URL: "https://gaming.ny.gov/draftkings-sport-book-weekly-report-excel", Filename: "DraftKings_Sport_Book_Weekly_Report.xlsx"},
		{Name: "ESPN Bet", URL: "https://gaming.ny.gov/wynn-interactive-weekly-report-excel", Filename: "ESPN_Bet_Wynn_Interactive_Weekly_Report.xlsx"},
		{Name: "Fanatics", URL: "https://gaming.ny.gov/fanatics-weekly-report-excel", Filename: "Fanatics_Weekly_Report.xlsx"},
		{Name: "FanDuel", URL: "https://gaming.ny.gov/fanduel-weekly-report-excel", Filename: "FanDuel_Weekly_Report.xlsx"},
		{Name: "Resorts World Bet", URL: "https://gaming.ny.gov/resorts-world-bet-weekly-report-excel", Filename: "Resorts_World_Bet_Weekly_Report.xlsx"},
		{Name: "Rush Street Interactive", URL: "https://gaming.ny.gov/rush-street-interactive-weekly-report-excel", Filename: "Rush_Street_Interactive_Weekly_Report.xlsx"},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.SMTP.User = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("NOTIFICATION_EMAIL"); v != "" {
		cfg.SMTP.NotifyTo = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Paths.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if len(cfg.Reports) == 0 {
		cfg.Reports = defaultReports()
	}
	if cfg.Schedule.WeeklyCron == "" {
		// Tuesday 09:00, after the regulator posts Monday-evening updates.
		cfg.Schedule.WeeklyCron = "0 0 9 * * 2"
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = "data"
	}
	if cfg.Paths.CurrentCSV == "" {
		cfg.Paths.CurrentCSV = filepath.Join(cfg.Paths.DataDir, "ny_gaming_data.csv")
	}
	if cfg.Paths.BaselineCSV == "" {
		cfg.Paths.BaselineCSV = filepath.Join(cfg.Paths.DataDir, "archive", "latest", "ny_gaming_data.csv")
	}
	if cfg.Paths.ChangeLog == "" {
		cfg.Paths.ChangeLog = filepath.Join(cfg.Paths.DataDir, "data_changes.json")
	}
	if cfg.Paths.AnalysisXLSX == "" {
		cfg.Paths.AnalysisXLSX = filepath.Join(cfg.Paths.DataDir, "ny_gaming_analysis.xlsx")
	}
	if cfg.Paths.SQLitePath == "" {
		cfg.Paths.SQLitePath = filepath.Join(cfg.Paths.DataDir, "wagerwatch.db")
	}
	if cfg.Paths.ReportsDir == "" {
		cfg.Paths.ReportsDir = filepath.Join(cfg.Paths.DataDir, "reports")
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Reports) == 0 {
		return fmt.Errorf("reports must not be empty")
	}
	for i, r := range c.Reports {
		if r.Name == "" || r.URL == "" || r.Filename == "" {
			return fmt.Errorf("reports[%d]: name, url, and filename are all required", i)
		}
	}
	if c.SMTP.Port <= 0 {
		return fmt.Errorf("smtp.port must be positive")
	}
	return nil
}
