// Package ephemeris computes charts with the VSOP87 and ELP theories from
// Meeus' Astronomical Algorithms.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/Okyu59/astro-seek/internal/domain"
)

const Name = "ephemeris"

// Positioner returns heliocentric ecliptic coordinates for a Julian
// ephemeris day. *planetposition.V87Planet satisfies it.
type Positioner interface {
	Position(jde float64) (L, B unit.Angle, R float64)
}

var planetIDs = map[domain.Body]int{
	domain.Mercury: pp.Mercury,
	domain.Venus:   pp.Venus,
	domain.Mars:    pp.Mars,
	domain.Jupiter: pp.Jupiter,
	domain.Saturn:  pp.Saturn,
}

var errNoPosition = errors.New("no ephemeris for body")

// Calculator is a ChartSource backed by the meeus library.
type Calculator struct {
	earth   Positioner
	planets map[domain.Body]Positioner
}

func New(earth Positioner, planets map[domain.Body]Positioner) *Calculator {
	return &Calculator{earth: earth, planets: planets}
}

// Probe loads the VSOP87 data files once. An empty dir falls back to the
// VSOP87 environment variable read by the library. The error wraps
// domain.ErrSourceUnavailable.
func Probe(dir string) (*Calculator, error) {
	load := func(id int) (*pp.V87Planet, error) {
		if dir == "" {
			return pp.LoadPlanet(id)
		}
		return pp.LoadPlanetPath(id, dir)
	}

	earth, err := load(pp.Earth)
	if err != nil {
		return nil, fmt.Errorf("%w: load earth: %w", domain.ErrSourceUnavailable, err)
	}
	planets := make(map[domain.Body]Positioner, len(planetIDs))
	for body, id := range planetIDs {
		p, err := load(id)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s: %w", domain.ErrSourceUnavailable, body, err)
		}
		planets[body] = p
	}
	return New(earth, planets), nil
}

func (c *Calculator) Name() string { return Name }

func (c *Calculator) Resolve(ctx context.Context, bd domain.BirthData) domain.Outcome {
	if err := ctx.Err(); err != nil {
		return domain.Fail(err)
	}

	jd := julianDay(bd)
	ascSign := -1
	if asc, err := ascendant(jd, domain.Latitude, domain.Longitude); err == nil {
		ascSign = domain.SignFromLongitude(asc)
	}

	planets := make([]domain.PlanetPlacement, 0, len(domain.Bodies))
	var headline []string
	for _, body := range domain.Bodies {
		p := domain.PlanetPlacement{Name: string(body), Sign: domain.SignUnknown, House: domain.HouseUnknown}
		lon, err := c.longitude(body, jd, ascSign)
		if err == nil {
			sign := domain.SignFromLongitude(lon)
			p.Sign = domain.Signs[sign]
			if ascSign >= 0 {
				p.House = domain.HouseNumber(domain.WholeSignHouse(sign, ascSign))
			}
		}
		if body == domain.Sun || body == domain.Moon || body == domain.Ascendant {
			headline = append(headline, fmt.Sprintf("%s in %s", body, p.Sign))
		}
		planets = append(planets, p)
	}

	return domain.Success{Chart: domain.ChartResult{
		Summary: fmt.Sprintf("Chart for %s: %s.", bd.Label(), strings.Join(headline, ", ")),
		Planets: planets,
	}}
}

// longitude returns the geocentric ecliptic longitude of body in degrees.
func (c *Calculator) longitude(body domain.Body, jd float64, ascSign int) (float64, error) {
	switch body {
	case domain.Sun:
		return domain.NormalizeDegrees(solar.ApparentLongitude(base.J2000Century(jd)).Deg()), nil
	case domain.Moon:
		lon, _, _ := moonposition.Position(jd)
		return domain.NormalizeDegrees(lon.Deg()), nil
	case domain.Ascendant:
		if ascSign < 0 {
			return 0, errNoPosition
		}
		return ascendant(jd, domain.Latitude, domain.Longitude)
	}

	planet, ok := c.planets[body]
	if !ok || planet == nil || c.earth == nil {
		return 0, fmt.Errorf("%w: %s", errNoPosition, body)
	}
	return geocentric(c.earth, planet, jd), nil
}

func julianDay(bd domain.BirthData) float64 {
	t := bd.Local().UTC()
	day := float64(t.Day()) + (float64(t.Hour())+float64(t.Minute())/60)/24
	return julian.CalendarGregorianToJD(t.Year(), int(t.Month()), day)
}

// geocentric converts heliocentric positions of earth and planet into the
// planet's geocentric longitude. Light time is ignored.
func geocentric(earth, planet Positioner, jde float64) float64 {
	l0, b0, r0 := earth.Position(jde)
	l, b, r := planet.Position(jde)
	x := r*math.Cos(b.Rad())*math.Cos(l.Rad()) - r0*math.Cos(b0.Rad())*math.Cos(l0.Rad())
	y := r*math.Cos(b.Rad())*math.Sin(l.Rad()) - r0*math.Cos(b0.Rad())*math.Sin(l0.Rad())
	return domain.NormalizeDegrees(math.Atan2(y, x) * 180 / math.Pi)
}

// ascendant returns the ecliptic longitude of the eastern horizon.
func ascendant(jd, lat, lon float64) (float64, error) {
	t := base.J2000Century(jd)
	gmst := 280.46061837 + 360.98564736629*(jd-2451545) + 0.000387933*t*t - t*t*t/38710000
	ramc := domain.NormalizeDegrees(gmst+lon) * math.Pi / 180
	eps := nutation.MeanObliquity(jd).Rad()
	phi := lat * math.Pi / 180

	asc := math.Atan2(math.Cos(ramc), -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	if math.IsNaN(asc) || math.IsInf(asc, 0) {
		return 0, fmt.Errorf("ascendant undefined at latitude %.2f", lat)
	}
	return domain.NormalizeDegrees(asc * 180 / math.Pi), nil
}
