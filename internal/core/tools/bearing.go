package tools

import (
	"fmt"
	"math"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// ToolBearing is the wire name of the bearing capacity calculator.
const ToolBearing = "bearing_capacity_calculator"

// BearingFactors is one row of the Terzaghi factor table.
type BearingFactors struct {
	Angle  float64
	Nq     float64
	Ngamma float64
}

// Terzaghi bearing capacity factors for cohesionless soils, tabulated
// by friction angle (degrees), strictly increasing and spanning [0,45].
// Bowles' tabulation; Nγ=33.9 at φ=35°.
var terzaghiFactors = []BearingFactors{
	{0, 1.0, 0.0},
	{5, 1.6, 0.1},
	{10, 2.5, 0.4},
	{15, 3.9, 1.2},
	{20, 6.4, 2.9},
	{25, 10.7, 6.8},
	{30, 18.4, 15.1},
	{32, 23.2, 20.8},
	{34, 29.4, 28.8},
	{35, 33.3, 33.9},
	{36, 37.8, 40.1},
	{38, 48.9, 56.3},
	{40, 64.2, 79.5},
	{42, 85.4, 113.0},
	{45, 134.9, 200.8},
}

// FactorTable returns a copy of the Terzaghi factor table.
func FactorTable() []BearingFactors {
	out := make([]BearingFactors, len(terzaghiFactors))
	copy(out, terzaghiFactors)
	return out
}

// BearingResult carries the ultimate bearing capacity together with the
// factors used, so they stay visible for citation.
type BearingResult struct {
	Qu     float64
	Nq     float64
	Ngamma float64
}

// ComputeBearing calculates ultimate bearing capacity with Terzaghi's
// equation qu = γ·Df·Nq + 0.5·γ·B·Nγ. An exact table angle uses that
// row directly; anything between rows interpolates Nq and Nγ linearly
// and independently.
func ComputeBearing(width, unitWeight, depth, frictionAngle float64) (BearingResult, error) {
	checks := []struct {
		name  string
		value float64
	}{
		{"width", width},
		{"unit weight", unitWeight},
		{"depth", depth},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value <= 0 {
			return BearingResult{}, domain.WrapError(domain.ErrValidation, "bearing capacity",
				fmt.Errorf("%s must be positive and finite, got %g", c.name, c.value))
		}
	}
	if math.IsNaN(frictionAngle) || frictionAngle < 0 || frictionAngle > 45 {
		return BearingResult{}, domain.WrapError(domain.ErrValidation, "bearing capacity",
			fmt.Errorf("friction angle must be between 0 and 45 degrees, got %g", frictionAngle))
	}

	nq, ngamma := interpolateFactors(frictionAngle)
	qu := unitWeight*depth*nq + 0.5*unitWeight*width*ngamma
	return BearingResult{Qu: qu, Nq: nq, Ngamma: ngamma}, nil
}

// interpolateFactors expects an angle already validated into [0,45], so
// a bracketing pair always exists. Exact rows are returned verbatim:
// φ=0 must yield Nγ=0, never a zero-width interpolation artifact.
func interpolateFactors(angle float64) (nq, ngamma float64) {
	for _, row := range terzaghiFactors {
		if row.Angle == angle {
			return row.Nq, row.Ngamma
		}
	}
	for i := 0; i < len(terzaghiFactors)-1; i++ {
		lower, upper := terzaghiFactors[i], terzaghiFactors[i+1]
		if angle > lower.Angle && angle < upper.Angle {
			ratio := (angle - lower.Angle) / (upper.Angle - lower.Angle)
			return lower.Nq + ratio*(upper.Nq-lower.Nq),
				lower.Ngamma + ratio*(upper.Ngamma-lower.Ngamma)
		}
	}
	last := terzaghiFactors[len(terzaghiFactors)-1]
	return last.Nq, last.Ngamma
}
