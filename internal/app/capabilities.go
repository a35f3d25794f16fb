package app

// Capabilities records what the process found at startup. It is built once
// and never changes while the process runs.
type Capabilities struct {
	Ephemeris   bool
	Browser     bool
	LLM         bool
	LLMProvider string
	Sources     []string
	Frontend    bool
}
