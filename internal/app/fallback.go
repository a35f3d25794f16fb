package app

import (
	"fmt"
	"strings"

	"github.com/Okyu59/astro-seek/internal/domain"
)

// FallbackMode selects what the fallback chart contains.
type FallbackMode string

const (
	// FallbackEstimate computes the Sun sign from the date and marks every
	// other body as pending.
	FallbackEstimate FallbackMode = "estimate"
	// FallbackStatic returns the fixed illustrative chart.
	FallbackStatic FallbackMode = "static"
)

// FallbackSource is the Source reported for fallback charts.
const FallbackSource = "fallback"

// DegradedMarker starts every fallback summary.
const DegradedMarker = "[Degraded mode]"

// Fallback produces the placeholder chart used when no source succeeds.
type Fallback struct {
	mode FallbackMode
}

func NewFallback(mode FallbackMode) *Fallback {
	if mode != FallbackStatic {
		mode = FallbackEstimate
	}
	return &Fallback{mode: mode}
}

// Generate never panics: any internal failure yields the illustrative chart.
func (f *Fallback) Generate(date, reason string) (res domain.ChartResult) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.ChartResult{
				Summary: DegradedMarker + " Chart data is unavailable right now.",
				Planets: domain.IllustrativeChart(),
				Status:  domain.StatusDegraded,
				Source:  FallbackSource,
			}
		}
	}()

	if reason == "" {
		reason = "all chart sources failed"
	}
	label := strings.TrimSpace(date)
	if label == "" {
		label = "an unknown date"
	}

	if f.mode == FallbackStatic {
		return domain.ChartResult{
			Summary: fmt.Sprintf("%s Showing a sample chart instead of %s (%s).", DegradedMarker, label, reason),
			Planets: domain.IllustrativeChart(),
			Status:  domain.StatusDegraded,
			Source:  FallbackSource,
		}
	}

	sun := estimateSun(date)
	planets := make([]domain.PlanetPlacement, 0, len(domain.Bodies))
	planets = append(planets, domain.PlanetPlacement{Name: string(domain.Sun), Sign: sun, House: domain.HousePending})
	for _, b := range domain.Bodies[1:] {
		planets = append(planets, domain.PlanetPlacement{Name: string(b), Sign: domain.SignPending, House: domain.HousePending})
	}
	return domain.ChartResult{
		Summary: fmt.Sprintf("%s Estimated Sun sign for %s: %s. The full chart is unavailable (%s).", DegradedMarker, label, sun, reason),
		Planets: planets,
		Status:  domain.StatusDegraded,
		Source:  FallbackSource,
	}
}

func estimateSun(date string) string {
	_, month, day, err := domain.ParseDate(date)
	if err != nil {
		return domain.SignUnknown
	}
	sign, ok := domain.SunSign(month, day)
	if !ok {
		return domain.SignUnknown
	}
	return sign
}
