package scraper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Okyu59/astro-seek/internal/adapters/scraper"
	"github.com/Okyu59/astro-seek/internal/domain"
)

func TestParseRows(t *testing.T) {
	rows := []string{
		"Sunday horoscope for you",
		"Sun: taurus 24°21' 10.",
		"Mars in Gemini",
		"Mars Aquarius 1°00' 7",
		"Jupiter retrograde",
	}

	got := scraper.ParseRows(rows)

	assert.Equal(t, []domain.PlanetPlacement{
		{Name: "Sun", Sign: "Taurus", House: "10"},
		{Name: "Mars", Sign: "Gemini", House: domain.HouseUnknown},
	}, got)
}

func TestParseRows_Empty(t *testing.T) {
	assert.Empty(t, scraper.ParseRows(nil))
	assert.Empty(t, scraper.ParseRows([]string{"Loading...", "Please wait"}))
}

func TestIsChallengeTitle(t *testing.T) {
	assert.True(t, scraper.IsChallengeTitle("Just a moment..."))
	assert.True(t, scraper.IsChallengeTitle("Attention Required! | Cloudflare"))
	assert.False(t, scraper.IsChallengeTitle("Birth Chart Calculator Online"))
}
