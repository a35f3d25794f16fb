// Package oracle answers chart questions offline by matching the question
// to a topic and quoting sign phrases for the bodies that rule it.
package oracle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Okyu59/astro-seek/internal/domain"
)

type Topic string

const (
	TopicLove        Topic = "love"
	TopicCareer      Topic = "career"
	TopicPersonality Topic = "personality"
	TopicFuture      Topic = "future"
	TopicGeneral     Topic = "general"
)

// Checked in order; the first topic with a matching keyword wins.
var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicLove, []string{"love", "romance", "relationship", "partner", "marriage", "연애", "사랑", "결혼"}},
	{TopicCareer, []string{"career", "job", "work", "money", "business", "직업", "커리어", "일자리", "회사", "취업", "돈"}},
	{TopicPersonality, []string{"personality", "character", "who am i", "성격"}},
	{TopicFuture, []string{"future", "next year", "미래", "운세"}},
}

var topicBodies = map[Topic][]domain.Body{
	TopicLove:        {domain.Venus, domain.Moon, domain.Mars},
	TopicCareer:      {domain.Saturn, domain.Sun, domain.Mars, domain.Jupiter},
	TopicPersonality: {domain.Sun, domain.Moon, domain.Ascendant},
	TopicFuture:      {domain.Jupiter, domain.Saturn},
	TopicGeneral:     {domain.Sun, domain.Moon},
}

// ClassifyTopic picks the topic of a question from its keywords.
func ClassifyTopic(question string) Topic {
	q := strings.ToLower(question)
	for _, tk := range topicKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(q, kw) {
				return tk.topic
			}
		}
	}
	return TopicGeneral
}

// Interpreter is the keyword-driven offline interpreter. It never calls
// the network.
type Interpreter struct {
	book *Phrasebook
}

func New(book *Phrasebook) *Interpreter {
	if book == nil {
		book = NewPhrasebook()
	}
	return &Interpreter{book: book}
}

func (o *Interpreter) Interpret(ctx context.Context, in domain.InterpretationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	topic := ClassifyTopic(in.Question)

	var lines []string
	for _, body := range topicBodies[topic] {
		p, ok := find(in.Planets, body)
		if !ok || !domain.IsSign(p.Sign) {
			continue
		}
		phrase, err := o.book.Phrase(p.Sign, topic)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("- **%s in %s**%s: %s.", p.Name, p.Sign, houseSuffix(p.House), phrase))
	}

	if len(lines) == 0 {
		return fmt.Sprintf("Your chart does not show the placements needed to read %s yet. Try again once the full chart is available.", topicLabel(topic)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here is what your chart says about %s:\n\n", topicLabel(topic))
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nTake this as a reflection rather than a prediction.")
	return b.String(), nil
}

func find(planets []domain.PlanetPlacement, body domain.Body) (domain.PlanetPlacement, bool) {
	for _, p := range planets {
		if strings.EqualFold(p.Name, string(body)) {
			p.Name = string(body)
			return p, true
		}
	}
	return domain.PlanetPlacement{}, false
}

func houseSuffix(house string) string {
	if n, err := strconv.Atoi(house); err == nil && n >= 1 && n <= 12 {
		return ", house " + house
	}
	return ""
}

func topicLabel(t Topic) string {
	switch t {
	case TopicLove:
		return "love and relationships"
	case TopicCareer:
		return "work and career"
	case TopicPersonality:
		return "your personality"
	case TopicFuture:
		return "the road ahead"
	default:
		return "you in general"
	}
}
