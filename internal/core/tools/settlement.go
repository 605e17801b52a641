package tools

import (
	"fmt"
	"math"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// ToolSettlement is the wire name of the settlement calculator.
const ToolSettlement = "settlement_calculator"

// ComputeSettlement calculates immediate elastic settlement as
// load / modulus. Unit-agnostic: the caller ensures consistent units.
// Deterministic, no transient failure modes.
func ComputeSettlement(load, modulus float64) (float64, error) {
	if math.IsNaN(load) || math.IsInf(load, 0) || math.IsNaN(modulus) || math.IsInf(modulus, 0) {
		return 0, domain.WrapError(domain.ErrValidation, "settlement", fmt.Errorf("load and modulus must be finite"))
	}
	if load < 0 {
		return 0, domain.WrapError(domain.ErrValidation, "settlement", fmt.Errorf("load cannot be negative, got %g", load))
	}
	if modulus <= 0 {
		return 0, domain.WrapError(domain.ErrValidation, "settlement", fmt.Errorf("modulus must be positive, got %g", modulus))
	}
	return load / modulus, nil
}
