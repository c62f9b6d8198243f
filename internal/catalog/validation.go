package catalog

import (
	"fmt"

	"github.com/drapehaus/drapehaus/internal/pricing"
)

// validatePricingShape rejects products whose pricing fields do not match
// their calculation method. Catching the mismatch at admin time keeps
// InvalidPricingModelError out of the storefront.
func validatePricingShape(req CreateProductRequest) error {
	switch req.Method {
	case pricing.MethodSteppedTable:
		if len(req.Tiers) == 0 {
			return fmt.Errorf("%w: stepped_table requires a price table", ErrInvalidModel)
		}
		return validateTiers(req.Tiers)
	case pricing.MethodRollCoverage:
		if req.CoveragePerUnitM2 == nil {
			return fmt.Errorf("%w: roll_coverage requires coverage_per_unit_m2", ErrInvalidModel)
		}
	case pricing.MethodAreaWithMinimum:
		if req.MinAreaM2 == nil {
			return fmt.Errorf("%w: area_with_minimum requires min_area_m2", ErrInvalidModel)
		}
	}
	if req.Method != pricing.MethodSteppedTable && req.PricePerUnit <= 0 {
		return fmt.Errorf("%w: price_per_unit must be positive", ErrInvalidModel)
	}
	return nil
}

func validateTiers(tiers []pricing.PriceTier) error {
	for i, t := range tiers {
		if t.Threshold < 0 || t.Price < 0 {
			return fmt.Errorf("%w: tier %d has negative values", ErrInvalidModel, i)
		}
		if i > 0 && t.Threshold <= tiers[i-1].Threshold {
			return fmt.Errorf("%w: tier thresholds must be strictly increasing", ErrInvalidModel)
		}
	}
	return nil
}
