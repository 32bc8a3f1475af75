package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	NotionAPIKey   string `env:"NOTION_API_KEY"`
	NotionBaseURL  string `env:"NOTION_BASE_URL" envDefault:"https://api.notion.com/v1"`
	NotionVersion  string `env:"NOTION_VERSION" envDefault:"2022-06-28"`
	TrackRecordsDB string `env:"NOTION_DATABASE_ID_TRACK_RECORDS"`
	LiveDealsDB    string `env:"NOTION_DATABASE_ID_LIVE_TRANSACTIONS"`
	EmailCaptureDB string `env:"NOTION_DATABASE_ID_EMAIL_TEASER_DOWNLOADER"`

	TeaserPassword     string        `env:"TEASER_PASSWORD"`
	TeaserRequireEmail bool          `env:"TEASER_REQUIRE_EMAIL" envDefault:"false"`
	TeaserTokenSecret  string        `env:"TEASER_TOKEN_SECRET"`
	TeaserTokenTTL     time.Duration `env:"TEASER_TOKEN_TTL" envDefault:"15m"`

	HTTPPort          string        `env:"HTTP_PORT" envDefault:"3000"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"30s"`

	DatabaseURL       string `env:"DATABASE_URL"`
	LeadRetentionDays int    `env:"LEAD_RETENTION_DAYS" envDefault:"365"`
	RetentionCron     string `env:"LEAD_RETENTION_CRON" envDefault:"0 3 * * *"`

	TelegramToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChat     string `env:"TELEGRAM_CHAT_ID"`
	TelegramThreadID int    `env:"TELEGRAM_CHAT_THREAD_ID"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TeaserPassword == "" {
		return cfg, errors.New("missing TEASER_PASSWORD")
	}
	if cfg.TeaserRequireEmail && cfg.TeaserTokenSecret == "" {
		return cfg, errors.New("TEASER_REQUIRE_EMAIL is set but TEASER_TOKEN_SECRET is missing")
	}
	if cfg.LeadRetentionDays < 0 {
		return cfg, fmt.Errorf("invalid LEAD_RETENTION_DAYS: %d", cfg.LeadRetentionDays)
	}

	return cfg, nil
}

// TelegramEnabled reports whether lead alerts can be sent.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChat != ""
}

// TelegramThread returns the forum topic to post into, or nil for the main chat.
func (c Config) TelegramThread() *int {
	if c.TelegramThreadID == 0 {
		return nil
	}
	id := c.TelegramThreadID
	return &id
}
