package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Okyu59/astro-seek/internal/adapters/cache"
	"github.com/Okyu59/astro-seek/internal/adapters/ephemeris"
	"github.com/Okyu59/astro-seek/internal/adapters/estimate"
	"github.com/Okyu59/astro-seek/internal/adapters/llm/gemini"
	"github.com/Okyu59/astro-seek/internal/adapters/llm/openaicompat"
	"github.com/Okyu59/astro-seek/internal/adapters/markdown"
	"github.com/Okyu59/astro-seek/internal/adapters/oracle"
	"github.com/Okyu59/astro-seek/internal/adapters/scraper"
	"github.com/Okyu59/astro-seek/internal/app"
	"github.com/Okyu59/astro-seek/internal/config"
	"github.com/Okyu59/astro-seek/internal/ports"
)

type services struct {
	charts *app.ChartService
	asker  *app.AskService
	caps   app.Capabilities
}

// build probes every optional dependency once and wires the services.
// Nothing here fails: a missing dependency only removes its source or
// downgrades the interpreter.
func build(ctx context.Context, cfg config.Config, logger *slog.Logger) services {
	var caps app.Capabilities

	sources := buildSources(cfg, logger, &caps)
	opts := []app.ChartOption{
		app.WithAttemptTimeout(cfg.ChartTimeout),
		app.WithLogger(logger),
	}
	if cfg.CacheTTL > 0 {
		opts = append(opts, app.WithCache(cache.NewMemory(cfg.CacheTTL, cfg.CacheSize)))
	}
	charts := app.NewChartService(sources, app.NewFallback(app.FallbackMode(cfg.FallbackMode)), opts...)
	caps.Sources = charts.Sources()

	interp, configured := buildInterpreter(ctx, cfg, logger)
	caps.LLMProvider = cfg.LLMProvider
	caps.LLM = configured

	_, err := os.Stat(filepath.Join(cfg.FrontendDir, "index.html"))
	caps.Frontend = err == nil

	return services{
		charts: charts,
		asker:  app.NewAskService(interp, markdown.New(), cfg.LLMTimeout, logger),
		caps:   caps,
	}
}

func buildSources(cfg config.Config, logger *slog.Logger, caps *app.Capabilities) []ports.ChartSource {
	var sources []ports.ChartSource
	for _, name := range cfg.ChartSources {
		switch name {
		case config.SourceEphemeris:
			calc, err := ephemeris.Probe(cfg.EphemerisDir)
			if err != nil {
				logger.Warn("ephemeris source disabled", "error", err)
				continue
			}
			caps.Ephemeris = true
			sources = append(sources, calc)
		case config.SourceScraper:
			l := scraper.NewRodLauncher(cfg.BrowserBin)
			bin, ok := l.LookPath()
			if !ok {
				logger.Warn("scraper source disabled", "reason", "no browser binary found", "browser_bin", cfg.BrowserBin)
				continue
			}
			logger.Debug("browser found", "path", bin)
			caps.Browser = true
			sources = append(sources, scraper.New(l, scraper.Config{
				URL:         cfg.ScraperURL,
				NavTimeout:  cfg.ScraperNavTimeout,
				WaitTimeout: cfg.ScraperWaitTimeout,
			}, logger))
		case config.SourceEstimate:
			sources = append(sources, estimate.SunSign{})
		case config.SourceStatic:
			sources = append(sources, estimate.Static{})
		}
	}
	return sources
}

func buildInterpreter(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Interpreter, bool) {
	if cfg.LLMProvider == config.ProviderOffline {
		return oracle.New(nil), true
	}

	key := cfg.LLMAPIKey()
	if key == "" {
		logger.Warn("interpretation not configured", "provider", cfg.LLMProvider)
		return app.NewForwarder(nil), false
	}

	httpClient := &http.Client{Timeout: cfg.LLMTimeout}
	var gen ports.Generator
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:     key,
			Model:      cfg.LLMModel,
			BaseURL:    cfg.LLMBaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			logger.Warn("gemini client unavailable", "error", err)
			return app.NewForwarder(nil), false
		}
		gen = c
	case config.ProviderOpenRouter:
		baseURL := cfg.LLMBaseURL
		if baseURL == "" {
			baseURL = openaicompat.OpenRouterBaseURL
		}
		gen = openaicompat.NewClient(httpClient, key, baseURL, cfg.LLMModel, logger)
	default:
		gen = openaicompat.NewClient(httpClient, key, cfg.LLMBaseURL, cfg.LLMModel, logger)
	}
	return app.NewForwarder(gen), true
}
