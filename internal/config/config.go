package config

import (
	"fmt"
	"time"

	"desyncbot/internal/domain"

	"github.com/caarlos0/env/v9"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration
type Config struct {
	BotToken          string          `env:"BOT_TOKEN,required,notEmpty"`
	InactivityTimeout time.Duration   `env:"INACTIVITY_TIMEOUT" envDefault:"5m"`
	DefaultLanguage   domain.Language `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	CatalogPath       string          `env:"CATALOG_PATH"`
	LocalesPath       string          `env:"LOCALES_PATH"`
	PollTimeout       time.Duration   `env:"POLL_TIMEOUT" envDefault:"10s"`
	SendMaxRetries    uint64          `env:"SEND_MAX_RETRIES" envDefault:"3"`
	RateLimit         float64         `env:"RATE_LIMIT" envDefault:"3"`
	RateBurst         int             `env:"RATE_BURST" envDefault:"5"`
	LogLevel          zapcore.Level   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", domain.ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that struct tags cannot express
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.InactivityTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.DefaultLanguage, validation.Required, validation.By(supportedLanguage)),
		validation.Field(&c.PollTimeout, validation.Required),
		validation.Field(&c.RateLimit, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.RateBurst, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return nil
}

func supportedLanguage(value interface{}) error {
	lang, _ := value.(domain.Language)
	if !lang.Supported() {
		return fmt.Errorf("unsupported language %q", string(lang))
	}
	return nil
}
