package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Okyu59/astro-seek/internal/domain"
	"github.com/Okyu59/astro-seek/internal/ports"
)

const systemPrompt = `You are a warm, perceptive astrologer reading a natal chart for the person asking.

Rules:
- Answer in the same language as the question.
- Keep the answer short: at most 150 words in two or three paragraphs.
- Be encouraging and balanced; never predict disasters or specific events.
- Never give medical, legal, or financial advice.
- Base every statement on the placements listed in the chart. Do not invent planets, signs, houses or aspects that are not listed.
- If the chart does not contain what the question needs, say so plainly.`

// BuildPrompt renders the planets as a compact context block and frames the
// question with a fixed persona and grounding rules.
func BuildPrompt(in domain.InterpretationRequest) ports.Prompt {
	var b strings.Builder
	b.WriteString("Natal chart:\n")
	b.WriteString(ChartContext(in.Planets))
	fmt.Fprintf(&b, "\nQuestion: %s\n", strings.TrimSpace(in.Question))
	b.WriteString("\nAnswer using only the chart above.")
	return ports.Prompt{System: systemPrompt, User: b.String()}
}

// ChartContext renders one line per placement.
func ChartContext(planets []domain.PlanetPlacement) string {
	if len(planets) == 0 {
		return "(no placements available)\n"
	}
	var b strings.Builder
	for _, p := range planets {
		if _, err := strconv.Atoi(p.House); err == nil {
			fmt.Fprintf(&b, "- %s in %s, house %s\n", p.Name, p.Sign, p.House)
		} else {
			fmt.Fprintf(&b, "- %s in %s, house unknown\n", p.Name, p.Sign)
		}
	}
	return b.String()
}
