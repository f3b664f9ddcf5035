package config

import (
	"os"
	"testing"
	"time"

	"desyncbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var configKeys = []string{
	"BOT_TOKEN", "INACTIVITY_TIMEOUT", "DEFAULT_LANGUAGE", "CATALOG_PATH",
	"LOCALES_PATH", "POLL_TIMEOUT", "SEND_MAX_RETRIES", "RATE_LIMIT",
	"RATE_BURST", "LOG_LEVEL",
}

// clearEnv unsets every config variable, restoring them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_MissingBotToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, 5*time.Minute, cfg.InactivityTimeout)
	assert.Equal(t, domain.LanguageEnglish, cfg.DefaultLanguage)
	assert.Equal(t, 10*time.Second, cfg.PollTimeout)
	assert.Equal(t, uint64(3), cfg.SendMaxRetries)
	assert.Equal(t, 3.0, cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.CatalogPath)
	assert.Empty(t, cfg.LocalesPath)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("INACTIVITY_TIMEOUT", "90s")
	t.Setenv("DEFAULT_LANGUAGE", "ko")
	t.Setenv("CATALOG_PATH", "/etc/bot/catalog.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.InactivityTimeout)
	assert.Equal(t, domain.LanguageKorean, cfg.DefaultLanguage)
	assert.Equal(t, "/etc/bot/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		contains string
	}{
		{name: "unsupported language", key: "DEFAULT_LANGUAGE", value: "de", contains: "unsupported language"},
		{name: "unparsable timeout", key: "INACTIVITY_TIMEOUT", value: "soon", contains: "soon"},
		{name: "timeout too short", key: "INACTIVITY_TIMEOUT", value: "10ms", contains: "InactivityTimeout"},
		{name: "zero rate", key: "RATE_LIMIT", value: "0", contains: "RateLimit"},
		{name: "negative burst", key: "RATE_BURST", value: "-1", contains: "RateBurst"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud", contains: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "test_token")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
