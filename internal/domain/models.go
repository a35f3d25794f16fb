package domain

// Body is a celestial body or chart point that a chart reports.
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	Ascendant Body = "Ascendant"
)

// Bodies lists every chart body in display order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Ascendant}

// House placeholders used when a house number is not available.
const (
	HouseUnknown = "Unknown"
	HousePending = "?"
	SignUnknown  = "Unknown"
	SignPending  = "Calculating..."
)

// Status values reported next to the chart summary.
type Status string

const (
	StatusOK           Status = "ok"
	StatusDegraded     Status = "degraded"
	StatusInvalidInput Status = "invalid_input"
)

// ChartRequest is the raw birth data as sent by the caller.
type ChartRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	City string `json:"city"`
}

// PlanetPlacement places one body in a sign and house. House is a decimal
// number "1".."12" or one of the house placeholders.
type PlanetPlacement struct {
	Name  string `json:"name"`
	Sign  string `json:"sign"`
	House string `json:"house"`
}

// ChartResult is the canonical chart shape every source and the fallback
// produce. Summary is never empty and Planets is never nil.
type ChartResult struct {
	Summary string            `json:"summary"`
	Planets []PlanetPlacement `json:"planets"`
	Status  Status            `json:"status,omitempty"`
	Source  string            `json:"source,omitempty"`
}

// Placement returns the entry for body, if present.
func (r ChartResult) Placement(body Body) (PlanetPlacement, bool) {
	for _, p := range r.Planets {
		if p.Name == string(body) {
			return p, true
		}
	}
	return PlanetPlacement{}, false
}

// InterpretationRequest carries a question and the planets of a chart the
// caller resolved earlier.
type InterpretationRequest struct {
	Question string            `json:"question"`
	Planets  []PlanetPlacement `json:"planets"`
}

// InterpretationResult is a free-text answer. Failures are encoded as
// user-facing text.
type InterpretationResult struct {
	Answer string `json:"answer"`
}
