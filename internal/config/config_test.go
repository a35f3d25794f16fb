package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okyu59/astro-seek/internal/config"
)

var allKeys = []string{
	"HTTP_ADDR", "LOG_LEVEL", "FRONTEND_DIR", "CORS_ORIGINS",
	"CHART_SOURCES", "CHART_TIMEOUT", "FALLBACK_MODE", "CACHE_TTL", "CACHE_SIZE",
	"EPHEMERIS_DIR", "VSOP87", "SCRAPER_URL", "SCRAPER_NAV_TIMEOUT", "SCRAPER_WAIT_TIMEOUT", "BROWSER_BIN",
	"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_TIMEOUT",
	"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "OPENROUTER_API_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, []string{"ephemeris", "scraper", "estimate"}, c.ChartSources)
	assert.Equal(t, 30*time.Second, c.ChartTimeout)
	assert.Equal(t, 10*time.Minute, c.CacheTTL)
	assert.Equal(t, "estimate", c.FallbackMode)
	assert.Equal(t, config.ProviderGemini, c.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", c.LLMModel)
	assert.Equal(t, 20*time.Second, c.LLMTimeout)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Empty(t, c.LLMAPIKey(), "a missing credential is not an error")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHART_SOURCES", "Static, estimate")
	t.Setenv("LLM_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://B.example")
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("VSOP87", "/data/vsop87")
	t.Setenv("GOOGLE_API_KEY", "g-key")

	c, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"static", "estimate"}, c.ChartSources)
	assert.Equal(t, "or-key", c.LLMAPIKey())
	assert.Equal(t, "qwen/qwen3-4b:free", c.LLMModel)
	assert.Equal(t, []string{"https://a.example", "https://B.example"}, c.CORSOrigins)
	assert.Equal(t, time.Duration(0), c.CacheTTL)
	assert.Equal(t, "/data/vsop87", c.EphemerisDir)
	assert.Equal(t, "g-key", c.GeminiAPIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LOG_LEVEL", "loud"},
		{"CHART_TIMEOUT", "soon"},
		{"LLM_TIMEOUT", "-1s"},
		{"LLM_PROVIDER", "oracle-of-delphi"},
		{"FALLBACK_MODE", "guess"},
		{"CHART_SOURCES", "ephemeris,astrolabe"},
		{"CACHE_SIZE", "12abc"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:9999\nLLM_PROVIDER=offline\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("LLM_PROVIDER")
	})
	os.Unsetenv("HTTP_ADDR")
	os.Unsetenv("LLM_PROVIDER")

	require.NoError(t, config.LoadDotEnv(path))
	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", c.HTTPAddr)
	assert.Equal(t, config.ProviderOffline, c.LLMProvider)

	assert.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))
}
