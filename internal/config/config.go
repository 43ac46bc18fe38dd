package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
		UseMock    bool   `yaml:"use_mock"`
	} `yaml:"data_source"`
	Tickers []string `yaml:"tickers"`
	Range   struct {
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
		Days      int    `yaml:"days"`
	} `yaml:"range"`
	Insider struct {
		Limit int `yaml:"limit"`
	} `yaml:"insider"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		Watch       bool   `yaml:"watch"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Tickers = splitCSV(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("USE_MOCK"); v == "true" {
		cfg.DataSource.UseMock = true
	}

	// Defaults
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"AAPL", "GOOGL", "MSFT", "NVDA", "TSLA"}
	}
	if cfg.DataSource.TimeoutSec == 0 {
		cfg.DataSource.TimeoutSec = 10
	}
	if cfg.Range.Days == 0 {
		cfg.Range.Days = 30
	}
	if cfg.Insider.Limit == 0 {
		cfg.Insider.Limit = 1000
	}
	if cfg.Schedule.RefreshCron == "" {
		// Weekday evenings after US market close
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	if c.DataSource.TimeoutSec <= 0 {
		return fmt.Errorf("data_source.timeout_sec must be positive")
	}
	if c.Range.Days < 0 {
		return fmt.Errorf("range.days must not be negative")
	}
	if (c.Range.StartDate == "") != (c.Range.EndDate == "") {
		return fmt.Errorf("range.start_date and range.end_date must be set together")
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
