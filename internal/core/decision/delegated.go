package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// ReasoningBackend is the call contract of an external reasoning
// service. The response is free text expected to embed one JSON object
// matching the decision schema.
type ReasoningBackend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Delegated forwards the question to a reasoning backend and parses its
// response into a Decision. Any unparseable or schema-violating
// response counts as backend failure and the deterministic strategy
// takes over; the caller never sees an error.
type Delegated struct {
	backend  ReasoningBackend
	fallback Strategy
	timeout  time.Duration
	logger   *slog.Logger
}

func NewDelegated(backend ReasoningBackend, fallback Strategy, timeout time.Duration, logger *slog.Logger) *Delegated {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Delegated{
		backend:  backend,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

const decisionSchema = `{
  "needsRetrieval": boolean,
  "needsSettlementCalc": boolean,
  "needsBearingCalc": boolean,
  "settlementParams": {"load": number, "modulus": number} | null,
  "bearingParams": {"width": number, "unitWeight": number, "depth": number, "frictionAngle": number} | null,
  "reasoning": string
}`

type decisionWire struct {
	NeedsRetrieval      bool `json:"needsRetrieval"`
	NeedsSettlementCalc bool `json:"needsSettlementCalc"`
	NeedsBearingCalc    bool `json:"needsBearingCalc"`
	SettlementParams    *struct {
		Load    float64 `json:"load"`
		Modulus float64 `json:"modulus"`
	} `json:"settlementParams"`
	BearingParams *struct {
		Width         float64 `json:"width"`
		UnitWeight    float64 `json:"unitWeight"`
		Depth         float64 `json:"depth"`
		FrictionAngle float64 `json:"frictionAngle"`
	} `json:"bearingParams"`
	Reasoning string `json:"reasoning"`
}

func (d *Delegated) Decide(ctx context.Context, question, questionContext string) domain.Decision {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	raw, err := d.backend.Complete(callCtx, buildDecisionPrompt(question, questionContext))
	if err != nil {
		return d.fallbackDecision(ctx, question, questionContext, fmt.Sprintf("backend call failed: %v", err))
	}

	decision, err := parseDecision(raw)
	if err != nil {
		return d.fallbackDecision(ctx, question, questionContext, fmt.Sprintf("backend response rejected: %v", err))
	}
	return decision
}

func (d *Delegated) fallbackDecision(ctx context.Context, question, questionContext, reason string) domain.Decision {
	d.logger.Warn("decision_fallback", "reason", reason)
	decision := d.fallback.Decide(ctx, question, questionContext)
	decision.Engine = domain.EngineFallback
	decision.Reasoning = "fallback (" + reason + "): " + decision.Reasoning
	return decision
}

func parseDecision(raw string) (domain.Decision, error) {
	payload := extractJSONObject(raw)
	if strings.TrimSpace(payload) == "" {
		return domain.Decision{}, fmt.Errorf("no JSON object in backend response")
	}

	var wire decisionWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return domain.Decision{}, fmt.Errorf("unmarshal decision json: %w", err)
	}

	decision := domain.Decision{
		// Retrieval stays on regardless of the backend's vote: it is
		// the safety fallback that keeps citations on every answer.
		NeedsRetrieval:  true,
		NeedsSettlement: wire.NeedsSettlementCalc,
		NeedsBearing:    wire.NeedsBearingCalc,
		Reasoning:       strings.TrimSpace(wire.Reasoning),
		Engine:          domain.EngineBackend,
	}
	if decision.Reasoning == "" {
		decision.Reasoning = "reasoning backend decision"
	}

	if wire.NeedsSettlementCalc {
		if wire.SettlementParams != nil {
			p := domain.SettlementParams{Load: wire.SettlementParams.Load, Modulus: wire.SettlementParams.Modulus}
			if !finite(p.Load) || !finite(p.Modulus) {
				return domain.Decision{}, fmt.Errorf("non-finite settlement parameters")
			}
			decision.SettlementParams = &p
		}
	}
	if wire.NeedsBearingCalc {
		if wire.BearingParams != nil {
			p := domain.BearingParams{
				Width:         wire.BearingParams.Width,
				UnitWeight:    wire.BearingParams.UnitWeight,
				Depth:         wire.BearingParams.Depth,
				FrictionAngle: wire.BearingParams.FrictionAngle,
			}
			if !finite(p.Width) || !finite(p.UnitWeight) || !finite(p.Depth) || !finite(p.FrictionAngle) {
				return domain.Decision{}, fmt.Errorf("non-finite bearing parameters")
			}
			decision.BearingParams = &p
		}
	}
	return decision, nil
}

func buildDecisionPrompt(question, questionContext string) string {
	return fmt.Sprintf(`You are the decision component of a geotechnical QA service.
Return ONLY one JSON object with this schema:
%s

Set needsSettlementCalc when the question asks for an immediate
settlement calculation and both load and modulus are given.
Set needsBearingCalc when the question asks for a Terzaghi ultimate
bearing capacity calculation and width, unit weight, depth, and
friction angle are all given.
Fill the matching params objects with the numeric values from the text.

Question:
%s

Context:
%s
`, decisionSchema, question, questionContext)
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
