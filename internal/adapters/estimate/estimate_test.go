package estimate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Okyu59/astro-seek/internal/adapters/estimate"
	"github.com/Okyu59/astro-seek/internal/domain"
)

func resolve(t *testing.T, date string) domain.ChartResult {
	t.Helper()
	bd, err := domain.ParseBirthData(domain.ChartRequest{Date: date, Time: "14:30", City: "Seoul"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s, ok := estimate.SunSign{}.Resolve(context.Background(), bd).(domain.Success)
	if !ok {
		t.Fatalf("expected success for %s", date)
	}
	return s.Chart
}

func TestSunSign_Boundary(t *testing.T) {
	if got := resolve(t, "1990-03-20").Planets[0].Sign; got != "Pisces" {
		t.Errorf("1990-03-20: expected Pisces, got %s", got)
	}
	if got := resolve(t, "1990-03-21").Planets[0].Sign; got != "Aries" {
		t.Errorf("1990-03-21: expected Aries, got %s", got)
	}
}

func TestSunSign_SummaryAndIdempotence(t *testing.T) {
	a := resolve(t, "1990-05-15")
	b := resolve(t, "1990-05-15")

	if a.Planets[0].Sign != "Taurus" || b.Planets[0].Sign != "Taurus" {
		t.Fatalf("expected Taurus twice, got %s and %s", a.Planets[0].Sign, b.Planets[0].Sign)
	}
	if !strings.Contains(a.Summary, "Taurus") {
		t.Errorf("summary missing sign: %s", a.Summary)
	}
	if a.Planets[0].House != domain.HouseUnknown {
		t.Errorf("expected Unknown house, got %s", a.Planets[0].House)
	}
}

func TestStatic(t *testing.T) {
	s, ok := estimate.Static{}.Resolve(context.Background(), domain.BirthData{Year: 1995, Month: 9, Day: 22}).(domain.Success)
	if !ok {
		t.Fatal("expected success")
	}
	if len(s.Chart.Planets) != len(domain.IllustrativeChart()) {
		t.Errorf("unexpected planets: %d", len(s.Chart.Planets))
	}
}
