package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SectorSentinel/internal/calculator"
)

// Config holds all application configuration.
type Config struct {
	Dashboard struct {
		BaseURL      string `yaml:"base_url"`
		PrimaryPath  string `yaml:"primary_path"`
		FallbackPath string `yaml:"fallback_path"`
		LocalFile    string `yaml:"local_file"`
		EventDate    string `yaml:"event_date"`
		EventLabel   string `yaml:"event_label"`
	} `yaml:"dashboard"`
	Collector struct {
		OutputFile        string  `yaml:"output_file"`
		Cron              string  `yaml:"cron"`
		HistoryRange      string  `yaml:"history_range"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		RunOnStart        bool    `yaml:"run_on_start"`
	} `yaml:"collector"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
		MaxAge int    `yaml:"max_age"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present) and the YAML file, then applies environment
// variable overrides and defaults. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

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
	if v := os.Getenv("DASHBOARD_BASE_URL"); v != "" {
		cfg.Dashboard.BaseURL = v
	}
	if v := os.Getenv("SNAPSHOT_FILE"); v != "" {
		cfg.Dashboard.LocalFile = v
	}
	if v := os.Getenv("EVENT_DATE"); v != "" {
		cfg.Dashboard.EventDate = v
	}
	if v := os.Getenv("COLLECTOR_OUTPUT"); v != "" {
		cfg.Collector.OutputFile = v
	}
	if v := os.Getenv("CRON_COLLECT"); v != "" {
		cfg.Collector.Cron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Collector.RunOnStart = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Dashboard.PrimaryPath == "" {
		cfg.Dashboard.PrimaryPath = "/sector-voting-game/stock_data.json"
	}
	if cfg.Dashboard.FallbackPath == "" {
		cfg.Dashboard.FallbackPath = "/stock_data.json"
	}
	if cfg.Dashboard.EventDate == "" {
		cfg.Dashboard.EventDate = calculator.EventBaselineDate
	}
	if cfg.Dashboard.EventLabel == "" {
		cfg.Dashboard.EventLabel = "減税報道"
	}
	if cfg.Collector.OutputFile == "" {
		cfg.Collector.OutputFile = "public/stock_data.json"
	}
	if cfg.Collector.Cron == "" {
		cfg.Collector.Cron = "0 30 15 * * 1-5"
	}
	if cfg.Collector.HistoryRange == "" {
		cfg.Collector.HistoryRange = "1y"
	}
	if cfg.Collector.RequestsPerSecond == 0 {
		cfg.Collector.RequestsPerSecond = 2
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	return cfg, nil
}

// TelegramEnabled reports whether both bot credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// ValidateDashboard checks the fields the dashboard command needs.
func (c *Config) ValidateDashboard() error {
	if c.Dashboard.BaseURL == "" && c.Dashboard.LocalFile == "" {
		return fmt.Errorf("dashboard.base_url or dashboard.local_file is required")
	}
	if _, err := time.Parse(calculator.DateLayout, c.Dashboard.EventDate); err != nil {
		return fmt.Errorf("dashboard.event_date must be YYYY-MM-DD: %w", err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// ValidateCollector checks the fields the collect command needs.
func (c *Config) ValidateCollector() error {
	if c.Collector.OutputFile == "" {
		return fmt.Errorf("collector.output_file is required")
	}
	if c.Collector.RequestsPerSecond <= 0 {
		return fmt.Errorf("collector.requests_per_second must be positive")
	}
	switch c.Collector.HistoryRange {
	case "3mo", "6mo", "1y", "2y":
	default:
		return fmt.Errorf("collector.history_range must be one of 3mo, 6mo, 1y, 2y")
	}
	return nil
}
