package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"MarketAdvisor/internal/catalog"
)

// Config holds all application configuration.
type Config struct {
	App struct {
		Name     string `yaml:"name"`
		HTTPAddr string `yaml:"http_addr"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`
	Symbols  []string `yaml:"symbols"`
	Database struct {
		Driver      string `yaml:"driver"`
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresURL string `yaml:"postgres_url"`
		HistoryPath string `yaml:"history_path"`
	} `yaml:"database"`
	DataSource struct {
		Provider    string `yaml:"provider"`
		HistoryDays int    `yaml:"history_days"`
	} `yaml:"data_source"`
	Schedule struct {
		IngestCron string `yaml:"ingest_cron"`
		AdviceCron string `yaml:"advice_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// EnvFile is loaded before the YAML when present.
var EnvFile = ".env"

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", EnvFile, err)
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
	override := map[string]*string{
		"ADVISOR_HTTP_ADDR":  &cfg.App.HTTPAddr,
		"ADVISOR_LOG_LEVEL":  &cfg.App.LogLevel,
		"DATABASE_DRIVER":    &cfg.Database.Driver,
		"SQLITE_PATH":        &cfg.Database.SQLitePath,
		"DATABASE_URL":       &cfg.Database.PostgresURL,
		"TELEGRAM_BOT_TOKEN": &cfg.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &cfg.Telegram.ChatID,
		"HTTPS_PROXY":        &cfg.Proxy,
		"CRON_INGEST":        &cfg.Schedule.IngestCron,
		"CRON_ADVICE":        &cfg.Schedule.AdviceCron,
	}
	for key, dst := range override {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	// Defaults
	if cfg.App.Name == "" {
		cfg.App.Name = "market-advisor"
	}
	if cfg.App.HTTPAddr == "" {
		cfg.App.HTTPAddr = ":8080"
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = append([]string(nil), catalog.DefaultSymbols...)
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_advisor.db"
	}
	if cfg.Database.HistoryPath == "" {
		cfg.Database.HistoryPath = "data/advice_history.db"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 400
	}
	if cfg.Schedule.IngestCron == "" {
		cfg.Schedule.IngestCron = "0 30 22 * * 1-5"
	}
	if cfg.Schedule.AdviceCron == "" {
		cfg.Schedule.AdviceCron = "0 0 8 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr is required")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for sqlite")
		}
	case "postgres":
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("database.postgres_url is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if c.DataSource.HistoryDays < 0 {
		return fmt.Errorf("data_source.history_days must not be negative")
	}
	return nil
}

// TelegramEnabled reports whether both bot credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
