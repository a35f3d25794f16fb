package ports

import (
	"context"

	"github.com/Okyu59/astro-seek/internal/domain"
)

// ChartSource computes or fetches planetary placements for validated birth
// data. Implementations never panic on bad input and release every external
// resource they acquire before returning.
type ChartSource interface {
	Name() string
	Resolve(ctx context.Context, bd domain.BirthData) domain.Outcome
}

// ChartCache stores resolved charts keyed by the raw request.
type ChartCache interface {
	Get(key domain.ChartRequest) (domain.ChartResult, bool)
	Set(key domain.ChartRequest, chart domain.ChartResult)
}
