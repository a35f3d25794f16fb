// Package gemini generates interpretations with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/Okyu59/astro-seek/internal/domain"
	"github.com/Okyu59/astro-seek/internal/ports"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Client implements ports.Generator.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrNotConfigured
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: cfg.Model}, nil
}

func (c *Client) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(p.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.8),
		MaxOutputTokens:   1024,
	})
	if err != nil {
		return "", mapError(err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response from %s", domain.ErrUpstreamLLM, c.model)
	}
	return text, nil
}

func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
}
