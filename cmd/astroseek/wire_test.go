package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okyu59/astro-seek/internal/app"
	"github.com/Okyu59/astro-seek/internal/config"
	"github.com/Okyu59/astro-seek/internal/domain"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuild_EstimateOnly(t *testing.T) {
	cfg := config.Config{
		ChartSources: []string{config.SourceEstimate},
		FallbackMode: "estimate",
		LLMProvider:  config.ProviderOffline,
		FrontendDir:  t.TempDir(),
	}

	svc := build(context.Background(), cfg, quiet)

	assert.Equal(t, []string{"estimate"}, svc.caps.Sources)
	assert.True(t, svc.caps.LLM)
	assert.False(t, svc.caps.Frontend)

	res := svc.charts.Resolve(context.Background(), domain.ChartRequest{Date: "1990-05-15", Time: "14:30", City: "Seoul"})
	assert.Equal(t, domain.StatusOK, res.Status)
	assert.Contains(t, res.Summary, "Taurus")
}

func TestBuild_MissingCredentialDowngrades(t *testing.T) {
	cfg := config.Config{
		ChartSources: []string{config.SourceStatic},
		FallbackMode: "static",
		LLMProvider:  config.ProviderGemini,
	}

	svc := build(context.Background(), cfg, quiet)
	assert.False(t, svc.caps.LLM)

	resp := svc.asker.Ask(context.Background(), domain.InterpretationRequest{Question: "love?"})
	assert.Equal(t, app.AnswerNotConfigured, resp.Answer)
}

func TestBuildSources_SkipsUnavailable(t *testing.T) {
	cfg := config.Config{
		ChartSources: []string{config.SourceEphemeris, config.SourceEstimate},
		EphemerisDir: t.TempDir(),
	}
	var caps app.Capabilities

	sources := buildSources(cfg, quiet, &caps)

	require.Len(t, sources, 1)
	assert.Equal(t, "estimate", sources[0].Name())
	assert.False(t, caps.Ephemeris)
}
