package extract

import "testing"

func TestParametersSettlementInputs(t *testing.T) {
	p := Parameters("Calculate settlement for load = 150 and Young's modulus = 30000", "")
	if !p.HasSettlement() {
		t.Fatalf("expected both settlement parameters, got %+v", p)
	}
	if *p.Load != 150 {
		t.Fatalf("expected load 150, got %g", *p.Load)
	}
	if *p.Modulus != 30000 {
		t.Fatalf("expected modulus 30000, got %g", *p.Modulus)
	}
}

func TestParametersBearingInputs(t *testing.T) {
	p := Parameters("Calculate bearing capacity for B = 2, gamma = 18, Df = 1.5, friction angle = 35", "")
	if !p.HasBearing() {
		t.Fatalf("expected all bearing parameters, got %+v", p)
	}
	if *p.Width != 2 || *p.UnitWeight != 18 || *p.Depth != 1.5 || *p.FrictionAngle != 35 {
		t.Fatalf("unexpected values: width=%g unitWeight=%g depth=%g angle=%g",
			*p.Width, *p.UnitWeight, *p.Depth, *p.FrictionAngle)
	}
}

func TestParametersProseVariants(t *testing.T) {
	p := Parameters("What is the settlement of a 2 meter wide footing under a load of 250?", "")
	if p.Width == nil || *p.Width != 2 {
		t.Fatalf("expected width 2 from prose, got %+v", p.Width)
	}
	if p.Load == nil || *p.Load != 250 {
		t.Fatalf("expected load 250 from prose, got %+v", p.Load)
	}
}

func TestParametersFromContextField(t *testing.T) {
	p := Parameters("Calculate settlement", "load = 80, modulus = 20000")
	if !p.HasSettlement() {
		t.Fatalf("expected settlement parameters from context, got %+v", p)
	}
}

func TestParametersShortSymbolForms(t *testing.T) {
	p := Parameters("bearing capacity with phi = 30, b = 1.2, unit weight 19, depth of 2", "")
	if !p.HasBearing() {
		t.Fatalf("expected all bearing parameters, got %+v", p)
	}
	if *p.FrictionAngle != 30 || *p.Width != 1.2 || *p.UnitWeight != 19 || *p.Depth != 2 {
		t.Fatalf("unexpected values: angle=%g width=%g unitWeight=%g depth=%g",
			*p.FrictionAngle, *p.Width, *p.UnitWeight, *p.Depth)
	}
}

func TestParametersRangeGates(t *testing.T) {
	if p := Parameters("friction angle = 95", ""); p.FrictionAngle != nil {
		t.Fatalf("expected friction angle above 90 to be dropped, got %g", *p.FrictionAngle)
	}
	if p := Parameters("load = -10", ""); p.Load != nil {
		t.Fatalf("expected negative load to be dropped, got %g", *p.Load)
	}
	if p := Parameters("modulus = 0", ""); p.Modulus != nil {
		t.Fatalf("expected zero modulus to be dropped, got %g", *p.Modulus)
	}
	if p := Parameters("gamma = 5000", ""); p.UnitWeight != nil {
		t.Fatalf("expected implausible unit weight to be dropped, got %g", *p.UnitWeight)
	}
}

func TestParametersAbsent(t *testing.T) {
	p := Parameters("What is CPT analysis used for?", "")
	if p.HasSettlement() || p.HasBearing() {
		t.Fatalf("expected no parameters in a conceptual question, got %+v", p)
	}
}
