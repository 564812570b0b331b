package config

import (
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port      string     `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	LogFile   string     `env:"LOG_FILE"`

	// BaseURL is the public origin; browser requests from other origins are rejected.
	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`

	CatalogPath string `env:"CATALOG_PATH"`

	// DatabaseURL is optional; without it proposals and clients live in memory.
	DatabaseURL string `env:"DATABASE_URL" validate:"omitempty,url"`

	CacheProvider         string        `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	DraftStoreProvider    string        `env:"DRAFT_STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string        `env:"REDIS_CONNECTION_STRING" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis,required_if=DraftStoreProvider redis"`
	DraftTTL              time.Duration `env:"DRAFT_TTL" envDefault:"24h" validate:"gte=1m"`
	ClientCacheTTL        time.Duration `env:"CLIENT_CACHE_TTL" envDefault:"10m" validate:"gte=0"`

	NotifyWebhookURL    string   `env:"NOTIFY_WEBHOOK_URL" validate:"omitempty,url"`
	NotifyEmailProvider string   `env:"NOTIFY_EMAIL_PROVIDER" validate:"omitempty,oneof=postmark resend"`
	NotifyEmailAPIKey   string   `env:"NOTIFY_EMAIL_API_KEY" validate:"required_with=NotifyEmailProvider"`
	NotifyEmailFrom     string   `env:"NOTIFY_EMAIL_FROM" validate:"required_with=NotifyEmailProvider"`
	NotifyEmailTo       []string `env:"NOTIFY_EMAIL_TO" envSeparator:","`

	DefaultSignatureName string `env:"DEFAULT_SIGNATURE_NAME" envDefault:"Christopher Helm" validate:"required"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	if c.NotifyEmailProvider != "" {
		if len(c.NotifyEmailTo) == 0 {
			return fmt.Errorf("NOTIFY_EMAIL_TO is required when NOTIFY_EMAIL_PROVIDER is set")
		}
		for _, addr := range append([]string{c.NotifyEmailFrom}, c.NotifyEmailTo...) {
			if _, err := mail.ParseAddress(strings.TrimSpace(addr)); err != nil {
				return fmt.Errorf("invalid notification email address %q: %w", addr, err)
			}
		}
	}

	return nil
}

// EmailNotificationsEnabled reports whether summaries are mailed.
func (c *Config) EmailNotificationsEnabled() bool {
	return c.NotifyEmailProvider != ""
}
