package ports

import (
	"context"

	"github.com/Okyu59/astro-seek/internal/domain"
)

// Prompt is the system/user message pair sent to a text-generation service.
type Prompt struct {
	System string
	User   string
}

// Generator forwards a prompt to an external text-generation service.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Interpreter answers a question about a chart.
type Interpreter interface {
	Interpret(ctx context.Context, in domain.InterpretationRequest) (string, error)
}

// Renderer turns a plain-text or Markdown answer into HTML.
type Renderer interface {
	Render(src string) (string, error)
}
