package catalog

import (
	"time"

	"github.com/drapehaus/drapehaus/internal/pricing"
)

// Category groups products and keys the waste factor configuration
// (waste_factor_<code>).
type Category struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Brand is a manufacturer label shown on product pages.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is one made-to-measure catalog item together with its pricing
// model. Constraint columns are nullable: NULL means no constraint.
type Product struct {
	ID           int64                     `json:"id"`
	SKU          string                    `json:"sku"`
	Name         string                    `json:"name"`
	Slug         string                    `json:"slug"`
	BrandID      *int64                    `json:"brand_id,omitempty"`
	CategoryID   int64                     `json:"category_id"`
	CategoryCode string                    `json:"category_code"`
	Unit         string                    `json:"unit"`
	Method       pricing.CalculationMethod `json:"method"`
	PricePerUnit float64                   `json:"price_per_unit"`
	Tiers        []pricing.PriceTier       `json:"tiers,omitempty"`

	MinWidthCm          *float64 `json:"min_width_cm,omitempty"`
	MaxWidthCm          *float64 `json:"max_width_cm,omitempty"`
	MaxHeightCm         *float64 `json:"max_height_cm,omitempty"`
	MinBillableWidthCm  *float64 `json:"min_billable_width_cm,omitempty"`
	MinBillableHeightCm *float64 `json:"min_billable_height_cm,omitempty"`
	WidthStepCm         *float64 `json:"width_step_cm,omitempty"`
	HeightStepCm        *float64 `json:"height_step_cm,omitempty"`
	MinAreaM2           *float64 `json:"min_area_m2,omitempty"`
	AreaFactor          *float64 `json:"area_factor,omitempty"`
	AreaRoundingM2      *float64 `json:"area_rounding_m2,omitempty"`
	CoveragePerUnitM2   *float64 `json:"coverage_per_unit_m2,omitempty"`
	RollWidthCm         *float64 `json:"roll_width_cm,omitempty"`
	RollLengthCm        *float64 `json:"roll_length_cm,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricingModel projects the product row into the engine's closed pricing
// model.
func (p *Product) PricingModel() pricing.Model {
	return pricing.Model{
		ProductID:           p.ID,
		Category:            p.CategoryCode,
		Unit:                p.Unit,
		Method:              p.Method,
		PricePerUnit:        p.PricePerUnit,
		Tiers:               p.Tiers,
		MinWidthCm:          p.MinWidthCm,
		MaxWidthCm:          p.MaxWidthCm,
		MaxHeightCm:         p.MaxHeightCm,
		MinBillableWidthCm:  p.MinBillableWidthCm,
		MinBillableHeightCm: p.MinBillableHeightCm,
		WidthStepCm:         p.WidthStepCm,
		HeightStepCm:        p.HeightStepCm,
		MinAreaM2:           p.MinAreaM2,
		AreaFactor:          p.AreaFactor,
		AreaRoundingM2:      p.AreaRoundingM2,
		CoveragePerUnitM2:   p.CoveragePerUnitM2,
		RollWidthCm:         p.RollWidthCm,
		RollLengthCm:        p.RollLengthCm,
	}
}
