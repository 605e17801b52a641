package decision

import (
	"context"
	"testing"

	"github.com/rocklab/geoqa/internal/core/domain"
)

func TestDeterministicRetrievalAlwaysOn(t *testing.T) {
	strategy := NewDeterministic()
	questions := []string{
		"What is CPT analysis used for?",
		"Calculate settlement for load = 150 and Young's modulus = 30000",
		"",
	}
	for _, q := range questions {
		d := strategy.Decide(context.Background(), q, "")
		if !d.NeedsRetrieval {
			t.Fatalf("retrieval must always be enabled, question %q", q)
		}
		if d.Engine != domain.EngineRules {
			t.Fatalf("expected rules engine, got %q", d.Engine)
		}
	}
}

func TestDeterministicSettlementSignals(t *testing.T) {
	strategy := NewDeterministic()

	d := strategy.Decide(context.Background(), "Calculate settlement for load = 150 and Young's modulus = 30000", "")
	if !d.NeedsSettlement {
		t.Fatalf("expected settlement calc, got %+v", d)
	}
	if d.SettlementParams == nil {
		t.Fatalf("expected extracted settlement params")
	}
	if d.SettlementParams.Load != 150 || d.SettlementParams.Modulus != 30000 {
		t.Fatalf("unexpected params %+v", d.SettlementParams)
	}
	if d.NeedsBearing {
		t.Fatalf("did not expect bearing calc")
	}
}

func TestDeterministicSettlementKeywordWithoutNumbers(t *testing.T) {
	strategy := NewDeterministic()

	// Settlement keyword plus load/modulus mentions but no usable
	// values still selects the branch; the tool reports the missing
	// parameters.
	d := strategy.Decide(context.Background(), "How do I calculate settlement from load and modulus?", "")
	if !d.NeedsSettlement {
		t.Fatalf("expected settlement branch from keyword signals, got %+v", d)
	}
	if d.SettlementParams != nil {
		t.Fatalf("expected nil params without numeric values, got %+v", d.SettlementParams)
	}
}

func TestDeterministicConceptualQuestionIsRetrievalOnly(t *testing.T) {
	strategy := NewDeterministic()

	d := strategy.Decide(context.Background(), "What is the difference between immediate and consolidation settlement?", "")
	if d.NeedsSettlement || d.NeedsBearing {
		t.Fatalf("conceptual question must not trigger tools, got %+v", d)
	}
	if !d.NeedsRetrieval {
		t.Fatalf("expected retrieval")
	}
}

func TestDeterministicBearingRequiresFullParameterSet(t *testing.T) {
	strategy := NewDeterministic()

	full := strategy.Decide(context.Background(),
		"Calculate bearing capacity for B = 2, gamma = 18, Df = 1.5, friction angle = 35", "")
	if !full.NeedsBearing || full.BearingParams == nil {
		t.Fatalf("expected bearing calc with params, got %+v", full)
	}
	if full.BearingParams.Width != 2 || full.BearingParams.UnitWeight != 18 ||
		full.BearingParams.Depth != 1.5 || full.BearingParams.FrictionAngle != 35 {
		t.Fatalf("unexpected bearing params %+v", full.BearingParams)
	}

	partial := strategy.Decide(context.Background(), "Calculate bearing capacity for B = 2 and gamma = 18", "")
	if partial.NeedsBearing {
		t.Fatalf("bearing calc must not trigger on a partial parameter set, got %+v", partial)
	}
}

func TestDeterministicReadsContextField(t *testing.T) {
	strategy := NewDeterministic()

	d := strategy.Decide(context.Background(), "Calculate the settlement", "load = 80, Young's modulus = 20000")
	if !d.NeedsSettlement || d.SettlementParams == nil {
		t.Fatalf("expected params from context field, got %+v", d)
	}
	if d.SettlementParams.Load != 80 {
		t.Fatalf("expected load 80, got %g", d.SettlementParams.Load)
	}
}
