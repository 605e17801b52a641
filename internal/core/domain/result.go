package domain

import "time"

// ToolInvocation is one executed (or rejected) tool call. Failed calls
// carry the error text instead of an output; they never abort sibling
// branches.
type ToolInvocation struct {
	Tool   string             `json:"tool"`
	Input  map[string]float64 `json:"input,omitempty"`
	Output map[string]float64 `json:"output,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Succeeded reports whether the invocation produced an output.
func (t ToolInvocation) Succeeded() bool {
	return t.Error == ""
}

// Result is the complete answer contract surfaced to the request layer.
type Result struct {
	Answer            string           `json:"answer"`
	Citations         []Citation       `json:"citations"`
	ToolsUsed         []ToolInvocation `json:"tools_used"`
	Trace             []TraceStep      `json:"trace"`
	DecisionReasoning string           `json:"decision_reasoning"`
	Engine            string           `json:"engine"`
	RetrievalUsed     bool             `json:"retrieval_used"`
	DurationMS        float64          `json:"duration_ms"`
}

// QueryLogEntry is the persisted record of one answered question.
type QueryLogEntry struct {
	TraceID       string
	Question      string
	Answer        string
	Citations     []Citation
	ToolsUsed     []string
	RetrievalUsed bool
	DurationMS    int64
	CreatedAt     time.Time
}
