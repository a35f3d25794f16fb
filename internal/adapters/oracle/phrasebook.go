package oracle

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Okyu59/astro-seek/internal/domain"
)

//go:embed data/phrases.yaml
var phraseFS embed.FS

const phraseFile = "data/phrases.yaml"

// Phrasebook holds one phrase per sign and topic, loaded from the embedded
// YAML file on first use.
type Phrasebook struct {
	once    sync.Once
	phrases map[string]map[Topic]string
	err     error
}

func NewPhrasebook() *Phrasebook {
	return &Phrasebook{}
}

func (p *Phrasebook) init() {
	raw, err := phraseFS.ReadFile(phraseFile)
	if err != nil {
		p.err = fmt.Errorf("read embedded phrasebook: %w", err)
		return
	}
	var book map[string]map[Topic]string
	if err := yaml.Unmarshal(raw, &book); err != nil {
		p.err = fmt.Errorf("parse embedded phrasebook: %w", err)
		return
	}
	for _, sign := range domain.Signs {
		if _, ok := book[sign]; !ok {
			p.err = fmt.Errorf("embedded phrasebook: missing sign %s", sign)
			return
		}
	}
	p.phrases = book
}

// Phrase returns the phrase for sign and topic, falling back to the sign's
// general phrase.
func (p *Phrasebook) Phrase(sign string, topic Topic) (string, error) {
	p.once.Do(p.init)
	if p.err != nil {
		return "", p.err
	}
	bySign, ok := p.phrases[sign]
	if !ok {
		return "", fmt.Errorf("no phrases for sign %q", sign)
	}
	if phrase, ok := bySign[topic]; ok && phrase != "" {
		return phrase, nil
	}
	return bySign[TopicGeneral], nil
}
