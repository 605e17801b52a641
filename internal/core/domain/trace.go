package domain

import "time"

// Trace step outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeSkipped  = "skipped"
	OutcomeFallback = "fallback"
)

// TraceStep records one processing step for observability. Steps are
// appended in pipeline order and returned uninterpreted; nothing in
// decision-making or assembly reads them back.
type TraceStep struct {
	Name       string    `json:"name"`
	Start      time.Time `json:"start"`
	DurationMS float64   `json:"duration_ms"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
}

// NewTraceStep closes a step started at the given instant.
func NewTraceStep(name string, start time.Time, outcome, detail string) TraceStep {
	return TraceStep{
		Name:       name,
		Start:      start.UTC(),
		DurationMS: float64(time.Since(start).Microseconds()) / 1000.0,
		Outcome:    outcome,
		Detail:     detail,
	}
}
