package domain

// SettlementParams are the inputs of the immediate settlement tool.
type SettlementParams struct {
	Load    float64 `json:"load"`
	Modulus float64 `json:"modulus"`
}

// BearingParams are the inputs of the Terzaghi bearing capacity tool.
type BearingParams struct {
	Width         float64 `json:"width"`
	UnitWeight    float64 `json:"unit_weight"`
	Depth         float64 `json:"depth"`
	FrictionAngle float64 `json:"friction_angle"`
}

// Decision engine provenance values, recorded in the trace.
const (
	EngineRules    = "rules"
	EngineBackend  = "backend"
	EngineFallback = "fallback"
)

// Decision is the per-request capability selection. Exactly one is
// produced per request; strategies never fail to return one.
type Decision struct {
	NeedsRetrieval   bool              `json:"needs_retrieval"`
	NeedsSettlement  bool              `json:"needs_settlement"`
	NeedsBearing     bool              `json:"needs_bearing"`
	SettlementParams *SettlementParams `json:"settlement_params,omitempty"`
	BearingParams    *BearingParams    `json:"bearing_params,omitempty"`
	Reasoning        string            `json:"reasoning"`

	// Engine names the strategy that produced the decision
	// (rules, backend, or fallback). Observability only.
	Engine string `json:"engine"`
}
