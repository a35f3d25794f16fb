package ephemeris

import (
	"context"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okyu59/astro-seek/internal/domain"
)

type fixedPositioner struct {
	lonDeg float64
	r      float64
}

func (f fixedPositioner) Position(float64) (unit.Angle, unit.Angle, float64) {
	return unit.AngleFromDeg(f.lonDeg), 0, f.r
}

func birth(t *testing.T, date, tm string) domain.BirthData {
	t.Helper()
	bd, err := domain.ParseBirthData(domain.ChartRequest{Date: date, Time: tm, City: "Seoul"})
	require.NoError(t, err)
	return bd
}

func success(t *testing.T, out domain.Outcome) domain.ChartResult {
	t.Helper()
	s, ok := out.(domain.Success)
	require.True(t, ok, "expected success, got %#v", out)
	return s.Chart
}

func TestCalculator_SunSign(t *testing.T) {
	c := New(nil, nil)

	chart := success(t, c.Resolve(context.Background(), birth(t, "1990-05-15", "14:30")))

	sun, ok := chart.Placement(domain.Sun)
	require.True(t, ok)
	assert.Equal(t, "Taurus", sun.Sign)
	assert.Contains(t, chart.Summary, "Sun in Taurus")
	assert.Len(t, chart.Planets, len(domain.Bodies))
}

func TestCalculator_MissingPlanetDegradesOneBody(t *testing.T) {
	c := New(fixedPositioner{lonDeg: 0, r: 1}, map[domain.Body]Positioner{
		domain.Mars: fixedPositioner{lonDeg: 90, r: 1.5},
	})

	chart := success(t, c.Resolve(context.Background(), birth(t, "1990-05-15", "14:30")))

	mars, _ := chart.Placement(domain.Mars)
	// atan2(1.5, -1) is about 123.7°, which is Leo.
	assert.Equal(t, "Leo", mars.Sign)
	assert.NotEqual(t, domain.HouseUnknown, mars.House)

	mercury, _ := chart.Placement(domain.Mercury)
	assert.Equal(t, domain.SignUnknown, mercury.Sign)
	assert.Equal(t, domain.HouseUnknown, mercury.House)
}

func TestCalculator_AscendantIsFirstHouse(t *testing.T) {
	c := New(nil, nil)

	chart := success(t, c.Resolve(context.Background(), birth(t, "1995-09-22", "14:30")))

	asc, ok := chart.Placement(domain.Ascendant)
	require.True(t, ok)
	assert.True(t, domain.IsSign(asc.Sign), "unexpected ascendant sign %q", asc.Sign)
	assert.Equal(t, "1", asc.House)
}

func TestCalculator_Idempotent(t *testing.T) {
	c := New(fixedPositioner{lonDeg: 10, r: 1}, map[domain.Body]Positioner{
		domain.Venus: fixedPositioner{lonDeg: 200, r: 0.72},
	})
	bd := birth(t, "1984-12-01", "06:05")

	a := success(t, c.Resolve(context.Background(), bd))
	b := success(t, c.Resolve(context.Background(), bd))

	assert.Equal(t, a, b)
}

func TestCalculator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := New(nil, nil).Resolve(ctx, birth(t, "1990-05-15", "14:30")).(domain.Failure)
	assert.True(t, ok)
}

func TestAscendant_Quadrants(t *testing.T) {
	// Midnight and noon ascendants at the same place are roughly opposite.
	jd := julianDay(birth(t, "2000-03-20", "00:00"))
	a, err := ascendant(jd, domain.Latitude, domain.Longitude)
	require.NoError(t, err)
	b, err := ascendant(jd+0.5, domain.Latitude, domain.Longitude)
	require.NoError(t, err)

	diff := domain.NormalizeDegrees(b - a)
	assert.InDelta(t, 180, diff, 60)
}

func TestProbe_MissingData(t *testing.T) {
	_, err := Probe(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
