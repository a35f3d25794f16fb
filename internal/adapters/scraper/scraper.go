// Package scraper resolves charts by driving a headless browser through an
// external horoscope site and parsing its planet table.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/Okyu59/astro-seek/internal/domain"
)

const Name = "scraper"

// Launcher starts a browser. Every Browser it returns must be closed.
type Launcher interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser is a running browser process. Close releases the process and
// everything it owns, pages included.
type Browser interface {
	Open(ctx context.Context, url string) (Page, error)
	Close() error
}

// Page is a loaded results page.
type Page interface {
	Title(ctx context.Context) (string, error)
	// Rows waits for tableSelector to appear and returns the text of every
	// element matching rowSelector.
	Rows(ctx context.Context, tableSelector, rowSelector string) ([]string, error)
}

type Config struct {
	URL           string
	TableSelector string
	RowSelector   string
	NavTimeout    time.Duration
	WaitTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:           "https://horoscopes.astro-seek.com/calculate-birth-chart-horoscope-online/",
		TableSelector: "table",
		RowSelector:   "table tr",
		NavTimeout:    20 * time.Second,
		WaitTimeout:   15 * time.Second,
	}
}

// Scraper is a ChartSource backed by a browser-driven scrape.
type Scraper struct {
	launcher Launcher
	cfg      Config
	logger   *slog.Logger
}

func New(l Launcher, cfg Config, logger *slog.Logger) *Scraper {
	def := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.TableSelector == "" {
		cfg.TableSelector = def.TableSelector
	}
	if cfg.RowSelector == "" {
		cfg.RowSelector = def.RowSelector
	}
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = def.NavTimeout
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = def.WaitTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{launcher: l, cfg: cfg, logger: logger}
}

func (s *Scraper) Name() string { return Name }

// Resolve launches a browser for this request only and closes it on every
// exit path, panics included.
func (s *Scraper) Resolve(ctx context.Context, bd domain.BirthData) domain.Outcome {
	browser, err := s.launcher.Launch(ctx)
	if err != nil {
		return domain.Failure{Reason: "browser launch failed", Err: err}
	}
	defer func() {
		if err := browser.Close(); err != nil {
			s.logger.Warn("close browser", "error", err)
		}
	}()

	navCtx, cancelNav := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancelNav()
	page, err := browser.Open(navCtx, s.URL(bd))
	if err != nil {
		return domain.Failure{Reason: "navigation failed", Err: err}
	}

	if title, err := page.Title(navCtx); err == nil && IsChallengeTitle(title) {
		return domain.Failure{
			Reason: fmt.Sprintf("blocked by anti-bot page %q", title),
			Err:    domain.ErrChallengePage,
		}
	}

	waitCtx, cancelWait := context.WithTimeout(ctx, s.cfg.WaitTimeout)
	defer cancelWait()
	rows, err := page.Rows(waitCtx, s.cfg.TableSelector, s.cfg.RowSelector)
	if err != nil {
		return domain.Failure{Reason: "results table did not appear", Err: err}
	}

	planets := ParseRows(rows)
	if len(planets) == 0 {
		return domain.Failure{
			Reason: fmt.Sprintf("no placements matched in %d rows", len(rows)),
			Err:    domain.ErrEmptyChart,
		}
	}

	summary := fmt.Sprintf("Chart for %s from astro-seek.", bd.Label())
	for _, p := range planets {
		if p.Name == string(domain.Sun) {
			summary = fmt.Sprintf("Chart for %s from astro-seek: Sun in %s.", bd.Label(), p.Sign)
		}
	}
	return domain.Success{Chart: domain.ChartResult{Summary: summary, Planets: planets}}
}

// URL encodes the birth data into the site's calculation form parameters.
func (s *Scraper) URL(bd domain.BirthData) string {
	q := url.Values{}
	q.Set("send_calculation", "1")
	q.Set("narozeni_den", strconv.Itoa(bd.Day))
	q.Set("narozeni_mesic", strconv.Itoa(bd.Month))
	q.Set("narozeni_rok", strconv.Itoa(bd.Year))
	q.Set("narozeni_hodina", fmt.Sprintf("%02d", bd.Hour))
	q.Set("narozeni_minuta", fmt.Sprintf("%02d", bd.Minute))
	q.Set("narozeni_city", bd.City)
	q.Set("narozeni_sirka_stupne", strconv.FormatFloat(domain.Latitude, 'f', 4, 64))
	q.Set("narozeni_delka_stupne", strconv.FormatFloat(domain.Longitude, 'f', 4, 64))
	q.Set("narozeni_timezone_form", "auto")
	return s.cfg.URL + "?" + q.Encode()
}
