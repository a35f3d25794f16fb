package http

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/Okyu59/astro-seek/internal/app"
	"github.com/Okyu59/astro-seek/internal/domain"
)

// ChartRequest is the JSON body of POST /api/chart.
type ChartRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	City string `json:"city"`
}

// ChartResponse is the JSON shape returned by POST /api/chart.
type ChartResponse struct {
	Summary string      `json:"summary"`
	Planets []PlanetDTO `json:"planets"`
	Status  string      `json:"status,omitempty"`
	Source  string      `json:"source,omitempty"`
}

type PlanetDTO struct {
	Name  string    `json:"name"`
	Sign  string    `json:"sign"`
	House HouseText `json:"house"`
}

// HouseText accepts a house as either a JSON string or a number.
type HouseText string

func (h *HouseText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*h = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*h = HouseText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*h = HouseText(n.String())
	return nil
}

// AskRequest is the JSON body of POST /api/ask.
type AskRequest struct {
	Question string      `json:"question"`
	Planets  []PlanetDTO `json:"planets"`
}

type AskResponse struct {
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html,omitempty"`
	Degraded   bool   `json:"degraded,omitempty"`
}

type HealthResponse struct {
	Status       string           `json:"status"`
	Capabilities CapabilitiesResp `json:"capabilities"`
}

type CapabilitiesResp struct {
	Ephemeris   bool     `json:"ephemeris"`
	Browser     bool     `json:"browser"`
	LLM         bool     `json:"llm"`
	LLMProvider string   `json:"llm_provider"`
	Sources     []string `json:"sources"`
	Frontend    bool     `json:"frontend"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func toChartResponse(r domain.ChartResult) ChartResponse {
	planets := make([]PlanetDTO, len(r.Planets))
	for i, p := range r.Planets {
		planets[i] = PlanetDTO{Name: p.Name, Sign: p.Sign, House: HouseText(p.House)}
	}
	return ChartResponse{
		Summary: r.Summary,
		Planets: planets,
		Status:  string(r.Status),
		Source:  r.Source,
	}
}

func toInterpretationRequest(r AskRequest) domain.InterpretationRequest {
	planets := make([]domain.PlanetPlacement, 0, len(r.Planets))
	for _, p := range r.Planets {
		house := string(p.House)
		if house == "" {
			house = domain.HouseUnknown
		} else if n, err := strconv.Atoi(house); err == nil {
			house = domain.HouseNumber(n)
		}
		planets = append(planets, domain.PlanetPlacement{Name: p.Name, Sign: p.Sign, House: house})
	}
	return domain.InterpretationRequest{Question: r.Question, Planets: planets}
}

func toCapabilitiesResp(c app.Capabilities) CapabilitiesResp {
	sources := c.Sources
	if sources == nil {
		sources = []string{}
	}
	return CapabilitiesResp{
		Ephemeris:   c.Ephemeris,
		Browser:     c.Browser,
		LLM:         c.LLM,
		LLMProvider: c.LLMProvider,
		Sources:     sources,
		Frontend:    c.Frontend,
	}
}
