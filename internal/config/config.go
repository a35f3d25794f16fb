package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Chart source names accepted in CHART_SOURCES.
const (
	SourceEphemeris = "ephemeris"
	SourceScraper   = "scraper"
	SourceEstimate  = "estimate"
	SourceStatic    = "static"
)

// LLM providers accepted in LLM_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOffline    = "offline"
)

var defaultModels = map[string]string{
	ProviderGemini:     "gemini-2.0-flash",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "qwen/qwen3-4b:free",
}

type Config struct {
	HTTPAddr    string
	LogLevel    slog.Level
	FrontendDir string
	CORSOrigins []string

	ChartSources []string
	ChartTimeout time.Duration
	FallbackMode string
	CacheTTL     time.Duration
	CacheSize    int

	EphemerisDir       string
	ScraperURL         string
	ScraperNavTimeout  time.Duration
	ScraperWaitTimeout time.Duration
	BrowserBin         string

	LLMProvider      string
	LLMModel         string
	LLMBaseURL       string
	LLMTimeout       time.Duration
	GeminiAPIKey     string
	OpenAIAPIKey     string
	OpenRouterAPIKey string
}

// LoadDotEnv copies variables from the given files (default .env) into the
// process environment without overriding what is already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment. A missing LLM
// credential is not an error.
func Load() (Config, error) {
	c := Config{
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		FrontendDir:      envOr("FRONTEND_DIR", "frontend/dist"),
		CORSOrigins:      splitList(envOr("CORS_ORIGINS", "*")),
		ChartSources:     splitList(strings.ToLower(envOr("CHART_SOURCES", "ephemeris,scraper,estimate"))),
		FallbackMode:     strings.ToLower(envOr("FALLBACK_MODE", "estimate")),
		EphemerisDir:     envOr("EPHEMERIS_DIR", os.Getenv("VSOP87")),
		ScraperURL:       os.Getenv("SCRAPER_URL"),
		BrowserBin:       os.Getenv("BROWSER_BIN"),
		LLMProvider:      strings.ToLower(envOr("LLM_PROVIDER", ProviderGemini)),
		LLMModel:         os.Getenv("LLM_MODEL"),
		LLMBaseURL:       os.Getenv("LLM_BASE_URL"),
		GeminiAPIKey:     envOr("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"CHART_TIMEOUT", 30 * time.Second, &c.ChartTimeout},
		{"CACHE_TTL", 10 * time.Minute, &c.CacheTTL},
		{"SCRAPER_NAV_TIMEOUT", 20 * time.Second, &c.ScraperNavTimeout},
		{"SCRAPER_WAIT_TIMEOUT", 15 * time.Second, &c.ScraperWaitTimeout},
		{"LLM_TIMEOUT", 20 * time.Second, &c.LLMTimeout},
	}
	for _, d := range durations {
		v, err := durationOr(d.key, d.def)
		if err != nil {
			return Config{}, err
		}
		*d.dest = v
	}

	size, err := intOr("CACHE_SIZE", 512)
	if err != nil {
		return Config{}, err
	}
	c.CacheSize = size

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	if c.LLMModel == "" {
		c.LLMModel = defaultModels[c.LLMProvider]
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderOpenRouter, ProviderOffline:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}
	switch c.FallbackMode {
	case "estimate", "static":
	default:
		return fmt.Errorf("invalid FALLBACK_MODE %q", c.FallbackMode)
	}
	for _, s := range c.ChartSources {
		switch s {
		case SourceEphemeris, SourceScraper, SourceEstimate, SourceStatic:
		default:
			return fmt.Errorf("invalid CHART_SOURCES entry %q", s)
		}
	}
	return nil
}

// LLMAPIKey returns the credential of the selected provider.
func (c Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	default:
		return ""
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return d, nil
}

func intOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
