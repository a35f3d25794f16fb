package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Okyu59/astro-seek/internal/domain"
	"github.com/Okyu59/astro-seek/internal/ports"
)

// Fixed answers returned instead of errors.
const (
	AnswerNotConfigured = "The interpretation service is not configured on this server yet. Please ask the administrator to set an API key."
	AnswerRateLimited   = "The stars are a little crowded right now. Please try again in a minute."
	AnswerUnavailable   = "Sorry, I couldn't read your chart right now. Please try again later."
	AnswerNoQuestion    = "Please ask a question about your chart."
)

const defaultAskTimeout = 20 * time.Second

// Forwarder interprets a chart by forwarding a prompt to a text-generation
// service. A nil generator means no credential was configured; Interpret
// then fails with ErrNotConfigured without touching the network.
type Forwarder struct {
	gen ports.Generator
}

func NewForwarder(gen ports.Generator) *Forwarder {
	return &Forwarder{gen: gen}
}

// Configured reports whether a generator is available.
func (f *Forwarder) Configured() bool { return f.gen != nil }

func (f *Forwarder) Interpret(ctx context.Context, in domain.InterpretationRequest) (string, error) {
	if f.gen == nil {
		return "", domain.ErrNotConfigured
	}
	text, err := f.gen.Generate(ctx, BuildPrompt(in))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty answer", domain.ErrUpstreamLLM)
	}
	return text, nil
}

// AskResponse is the application-level answer.
type AskResponse struct {
	Answer     string
	AnswerHTML string
	Degraded   bool
}

// AskService makes a single interpretation attempt and turns every failure
// into a fixed user-facing answer.
type AskService struct {
	interp   ports.Interpreter
	renderer ports.Renderer
	timeout  time.Duration
	logger   *slog.Logger
}

func NewAskService(interp ports.Interpreter, renderer ports.Renderer, timeout time.Duration, logger *slog.Logger) *AskService {
	if timeout <= 0 {
		timeout = defaultAskTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AskService{interp: interp, renderer: renderer, timeout: timeout, logger: logger}
}

func (s *AskService) Ask(ctx context.Context, req domain.InterpretationRequest) AskResponse {
	if strings.TrimSpace(req.Question) == "" {
		return s.respond(AnswerNoQuestion, true)
	}
	if req.Planets == nil {
		req.Planets = []domain.PlanetPlacement{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.interpret(ctx, req)
	if err != nil {
		msg := classify(err)
		if errors.Is(err, domain.ErrNotConfigured) {
			s.logger.DebugContext(ctx, "interpretation skipped", "error", err)
		} else {
			s.logger.WarnContext(ctx, "interpretation failed", "error", err)
		}
		return s.respond(msg, true)
	}
	return s.respond(answer, false)
}

func (s *AskService) interpret(ctx context.Context, req domain.InterpretationRequest) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrUpstreamLLM, r)
		}
	}()
	return s.interp.Interpret(ctx, req)
}

func (s *AskService) respond(answer string, degraded bool) AskResponse {
	resp := AskResponse{Answer: answer, Degraded: degraded}
	if s.renderer != nil {
		html, err := s.renderer.Render(answer)
		if err != nil {
			s.logger.Warn("render answer", "error", err)
		} else {
			resp.AnswerHTML = html
		}
	}
	return resp
}

// classify maps an interpretation error to a fixed answer.
func classify(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return AnswerNotConfigured
	case errors.Is(err, domain.ErrRateLimited), looksRateLimited(err.Error()):
		return AnswerRateLimited
	default:
		return AnswerUnavailable
	}
}

func looksRateLimited(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range []string{"429", "resource_exhausted", "quota", "rate limit"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
