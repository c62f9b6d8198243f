package pricing

import (
	"fmt"
	"math"
)

const defaultAreaRoundingM2 = 0.01

// resolvedQuantity is the billable quantity in the unit the product is priced
// in. WasteInQuantity marks methods (roll coverage) that already consumed the
// waste factor while counting material, so the surcharge stage must not apply
// it a second time.
type resolvedQuantity struct {
	Value           float64
	Unit            string
	WasteInQuantity bool
}

// resolveQuantity dispatches on the calculation method. Every rounding here
// is a ceiling: the customer is never charged for less material than the cut
// requires.
func resolveQuantity(dims billableDimensions, m Model, wasteFactor float64) (resolvedQuantity, error) {
	switch m.Method {
	case MethodLinear:
		return resolvedQuantity{Value: dims.WidthCm / 100, Unit: unitOrDefault(m.Unit, UnitLinearMeter)}, nil

	case MethodArea:
		return resolvedQuantity{Value: areaQuantity(dims, m), Unit: unitOrDefault(m.Unit, UnitSquareMeter)}, nil

	case MethodAreaWithMinimum:
		if m.MinAreaM2 == nil {
			return resolvedQuantity{}, &InvalidPricingModelError{Reason: "min_area is required for area_with_minimum"}
		}
		area := areaQuantity(dims, m)
		if area < *m.MinAreaM2 {
			area = *m.MinAreaM2
		}
		return resolvedQuantity{Value: area, Unit: unitOrDefault(m.Unit, UnitSquareMeter)}, nil

	case MethodRollCoverage:
		if m.CoveragePerUnitM2 == nil || *m.CoveragePerUnitM2 <= 0 {
			return resolvedQuantity{}, &InvalidPricingModelError{Reason: "coverage_per_unit must be positive for roll_coverage"}
		}
		required := areaQuantity(dims, m)
		rolls := math.Ceil(required*wasteFactor / *m.CoveragePerUnitM2 - 1e-9)
		return resolvedQuantity{Value: rolls, Unit: unitOrDefault(m.Unit, UnitRoll), WasteInQuantity: true}, nil

	case MethodSteppedTable:
		// The table is keyed by whatever measure the product is priced in.
		if m.Unit == UnitLinearMeter {
			return resolvedQuantity{Value: dims.WidthCm / 100, Unit: UnitLinearMeter}, nil
		}
		return resolvedQuantity{Value: areaQuantity(dims, m), Unit: unitOrDefault(m.Unit, UnitSquareMeter)}, nil

	default:
		return resolvedQuantity{}, &InvalidPricingModelError{Reason: fmt.Sprintf("unrecognized calculation method %q", m.Method)}
	}
}

// areaQuantity computes m² from billable dimensions, applies the optional
// area factor and rounds up to the configured granularity (default 0.01 m²).
func areaQuantity(dims billableDimensions, m Model) float64 {
	area := dims.WidthCm * dims.HeightCm / 10000
	if m.AreaFactor != nil && *m.AreaFactor > 0 {
		area *= *m.AreaFactor
	}
	granularity := defaultAreaRoundingM2
	if m.AreaRoundingM2 != nil && *m.AreaRoundingM2 > 0 {
		granularity = *m.AreaRoundingM2
	}
	return ceilTo(area, granularity)
}

func unitOrDefault(unit, fallback string) string {
	if unit != "" {
		return unit
	}
	return fallback
}
