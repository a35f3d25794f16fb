package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Okyu59/astro-seek/internal/domain"
	"github.com/Okyu59/astro-seek/internal/ports"
)

const defaultAttemptTimeout = 30 * time.Second

// ChartService tries each chart source in priority order and degrades to
// the fallback chart once every source has failed. A request moves from
// attempting to degraded at most once and never retries a source.
type ChartService struct {
	sources  []ports.ChartSource
	fallback *Fallback
	cache    ports.ChartCache
	timeout  time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

type ChartOption func(*ChartService)

// WithCache caches successful charts. Degraded charts are never cached.
func WithCache(c ports.ChartCache) ChartOption {
	return func(s *ChartService) { s.cache = c }
}

// WithAttemptTimeout bounds each source attempt.
func WithAttemptTimeout(d time.Duration) ChartOption {
	return func(s *ChartService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) ChartOption {
	return func(s *ChartService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewChartService(sources []ports.ChartSource, fb *Fallback, opts ...ChartOption) *ChartService {
	if fb == nil {
		fb = NewFallback(FallbackEstimate)
	}
	s := &ChartService{
		sources:  sources,
		fallback: fb,
		timeout:  defaultAttemptTimeout,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sources returns the names of the configured sources in priority order.
func (s *ChartService) Sources() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name()
	}
	return names
}

// Resolve always returns a well-formed chart.
func (s *ChartService) Resolve(ctx context.Context, req domain.ChartRequest) domain.ChartResult {
	bd, err := domain.ParseBirthData(req)
	if err != nil {
		s.logger.InfoContext(ctx, "invalid chart request", "date", req.Date, "time", req.Time, "error", err)
		res := s.fallback.Generate(req.Date, "invalid birth date or time, expected YYYY-MM-DD and HH:MM")
		res.Status = domain.StatusInvalidInput
		return res
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(req); ok {
			return cached
		}
	}

	// The shared resolution outlives any single caller; each source attempt
	// is still bounded by the attempt timeout.
	key := req.Date + "|" + req.Time + "|" + req.City
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (v any, _ error) {
		defer func() {
			if r := recover(); r != nil {
				v = s.fallback.Generate(req.Date, fmt.Sprintf("unexpected error: %v", r))
			}
		}()
		res := s.resolve(shared, bd, req.Date)
		if s.cache != nil && res.Status == domain.StatusOK {
			s.cache.Set(req, res)
		}
		return res, nil
	})

	select {
	case r := <-ch:
		return r.Val.(domain.ChartResult)
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "chart request cancelled", "date", req.Date, "error", ctx.Err())
		return s.fallback.Generate(req.Date, "request cancelled")
	}
}

// Degraded returns the fallback chart for date without trying any source.
func (s *ChartService) Degraded(date, reason string) domain.ChartResult {
	return s.fallback.Generate(date, reason)
}

func (s *ChartService) resolve(ctx context.Context, bd domain.BirthData, date string) domain.ChartResult {
	var reasons []string
	for _, src := range s.sources {
		start := time.Now()
		switch out := s.attempt(ctx, src, bd).(type) {
		case domain.Success:
			if len(out.Chart.Planets) == 0 {
				s.logger.WarnContext(ctx, "chart source returned no placements", "source", src.Name())
				reasons = append(reasons, src.Name()+": "+domain.ErrEmptyChart.Error())
				continue
			}
			s.logger.DebugContext(ctx, "chart resolved", "source", src.Name(), "latency_ms", time.Since(start).Milliseconds())
			return normalize(out.Chart, src.Name(), bd)
		case domain.Failure:
			s.logger.WarnContext(ctx, "chart source failed", "source", src.Name(), "reason", out.Reason, "error", out.Err)
			reasons = append(reasons, src.Name()+": "+out.Error())
		default:
			reasons = append(reasons, src.Name()+": no result")
		}
	}

	reason := "no chart sources available"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return s.fallback.Generate(date, reason)
}

// attempt runs one source under the attempt timeout and turns a panic into
// a Failure.
func (s *ChartService) attempt(ctx context.Context, src ports.ChartSource, bd domain.BirthData) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.Failure{Reason: fmt.Sprintf("unexpected error: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return src.Resolve(ctx, bd)
}

func normalize(c domain.ChartResult, source string, bd domain.BirthData) domain.ChartResult {
	planets := make([]domain.PlanetPlacement, len(c.Planets))
	for i, p := range c.Planets {
		if p.Sign == "" {
			p.Sign = domain.SignUnknown
		}
		if p.House == "" {
			p.House = domain.HouseUnknown
		}
		planets[i] = p
	}
	c.Planets = planets
	if strings.TrimSpace(c.Summary) == "" {
		c.Summary = defaultSummary(c, bd)
	}
	c.Status = domain.StatusOK
	c.Source = source
	return c
}

func defaultSummary(c domain.ChartResult, bd domain.BirthData) string {
	if sun, ok := c.Placement(domain.Sun); ok {
		return fmt.Sprintf("Chart for %s: Sun in %s.", bd.Label(), sun.Sign)
	}
	return fmt.Sprintf("Chart for %s.", bd.Label())
}
