// Package decision selects the capabilities a question needs. The two
// strategies share one contract; both always return a decision and
// never surface an error to the caller.
package decision

import (
	"context"
	"strings"

	"github.com/rocklab/geoqa/internal/core/domain"
	"github.com/rocklab/geoqa/internal/core/extract"
)

// Strategy produces exactly one Decision per call.
type Strategy interface {
	Decide(ctx context.Context, question, questionContext string) domain.Decision
}

var (
	settlementKeywords = []string{
		"settlement", "immediate settlement", "elastic settlement",
		"calculate settlement", "settlement calculation",
	}
	loadTokens    = []string{"load"}
	modulusTokens = []string{"modulus", "young", "e =", "e="}

	bearingKeywords = []string{
		"bearing capacity", "terzaghi", "ultimate bearing",
		"q_ult", "foundation capacity",
	}
)

// Deterministic is the rule-based strategy: keyword and phrase matching
// over the lowered question+context, with retrieval enabled
// unconditionally so every answer can carry contextual citations.
type Deterministic struct{}

func NewDeterministic() Deterministic { return Deterministic{} }

func (Deterministic) Decide(_ context.Context, question, questionContext string) domain.Decision {
	text := strings.ToLower(question + " " + questionContext)
	params := extract.Parameters(question, questionContext)

	needsSettlement := containsAny(text, settlementKeywords) &&
		containsAny(text, loadTokens) &&
		containsAny(text, modulusTokens)
	needsBearing := containsAny(text, bearingKeywords) && params.HasBearing()

	decision := domain.Decision{
		NeedsRetrieval:  true,
		NeedsSettlement: needsSettlement,
		NeedsBearing:    needsBearing,
		Engine:          domain.EngineRules,
		Reasoning:       ruleReasoning(needsSettlement, needsBearing),
	}
	if needsSettlement && params.HasSettlement() {
		decision.SettlementParams = &domain.SettlementParams{Load: *params.Load, Modulus: *params.Modulus}
	}
	if needsBearing {
		decision.BearingParams = &domain.BearingParams{
			Width:         *params.Width,
			UnitWeight:    *params.UnitWeight,
			Depth:         *params.Depth,
			FrictionAngle: *params.FrictionAngle,
		}
	}
	return decision
}

func ruleReasoning(settlement, bearing bool) string {
	signals := make([]string, 0, 2)
	if settlement {
		signals = append(signals, "settlement calculation signals")
	}
	if bearing {
		signals = append(signals, "bearing capacity signals with a full parameter set")
	}
	if len(signals) == 0 {
		return "rule match: no calculation signals; retrieval only"
	}
	return "rule match: " + strings.Join(signals, "; ") + "; retrieval enabled as fallback"
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
