package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Okyu59/astro-seek/internal/domain"
	"github.com/Okyu59/astro-seek/internal/ports"
)

// OpenRouterBaseURL is the OpenAI-compatible endpoint of OpenRouter.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Client implements ports.Generator against any OpenAI-compatible chat
// completions API (OpenAI itself, OpenRouter, local gateways).
type Client struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}
}

// Generate makes exactly one completion call. Failures are returned to the
// caller, never retried.
func (c *Client) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
	})
	if err != nil {
		c.logger.DebugContext(ctx, "completion failed", "model", c.model, "error", err)
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", domain.ErrUpstreamLLM)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
}
