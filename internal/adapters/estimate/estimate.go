// Package estimate provides chart sources that need no external data: the
// closed-form Sun sign table and the fixed sample chart.
package estimate

import (
	"context"
	"fmt"

	"github.com/Okyu59/astro-seek/internal/domain"
)

const (
	SunSignName = "estimate"
	StaticName  = "static"
)

// SunSign reports only the Sun sign, derived from the month/day cutoffs.
type SunSign struct{}

func (SunSign) Name() string { return SunSignName }

func (SunSign) Resolve(ctx context.Context, bd domain.BirthData) domain.Outcome {
	if err := ctx.Err(); err != nil {
		return domain.Fail(err)
	}
	sign, ok := domain.SunSign(bd.Month, bd.Day)
	if !ok {
		return domain.Fail(fmt.Errorf("%w: month %d day %d", domain.ErrInvalidBirthData, bd.Month, bd.Day))
	}
	return domain.Success{Chart: domain.ChartResult{
		Summary: fmt.Sprintf("Your Sun sign is %s (born %s). Other placements need a full ephemeris.", sign, bd.Label()),
		Planets: []domain.PlanetPlacement{
			{Name: string(domain.Sun), Sign: sign, House: domain.HouseUnknown},
		},
	}}
}

// Static always returns the illustrative chart. It is used to check the
// frontend wiring without any computation.
type Static struct{}

func (Static) Name() string { return StaticName }

func (Static) Resolve(_ context.Context, bd domain.BirthData) domain.Outcome {
	return domain.Success{Chart: domain.ChartResult{
		Summary: fmt.Sprintf("Connected to the chart server. Showing the sample chart for %s.", bd.Label()),
		Planets: domain.IllustrativeChart(),
	}}
}
