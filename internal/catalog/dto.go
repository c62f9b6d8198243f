package catalog

import "github.com/drapehaus/drapehaus/internal/pricing"

type CreateProductRequest struct {
	SKU          string                    `json:"sku" validate:"required,max=40"`
	Name         string                    `json:"name" validate:"required,max=200"`
	Slug         string                    `json:"slug" validate:"required,max=200"`
	BrandID      *int64                    `json:"brand_id,omitempty" validate:"omitempty,gt=0"`
	CategoryID   int64                     `json:"category_id" validate:"required,gt=0"`
	Unit         string                    `json:"unit" validate:"required,oneof=m m2 roll box"`
	Method       pricing.CalculationMethod `json:"method" validate:"required,oneof=linear area area_with_minimum roll_coverage stepped_table"`
	PricePerUnit float64                   `json:"price_per_unit" validate:"gte=0"`
	Tiers        []pricing.PriceTier       `json:"tiers,omitempty" validate:"omitempty,min=1,dive"`

	MinWidthCm          *float64 `json:"min_width_cm,omitempty" validate:"omitempty,gt=0"`
	MaxWidthCm          *float64 `json:"max_width_cm,omitempty" validate:"omitempty,gt=0"`
	MaxHeightCm         *float64 `json:"max_height_cm,omitempty" validate:"omitempty,gt=0"`
	MinBillableWidthCm  *float64 `json:"min_billable_width_cm,omitempty" validate:"omitempty,gt=0"`
	MinBillableHeightCm *float64 `json:"min_billable_height_cm,omitempty" validate:"omitempty,gt=0"`
	WidthStepCm         *float64 `json:"width_step_cm,omitempty" validate:"omitempty,gt=0"`
	HeightStepCm        *float64 `json:"height_step_cm,omitempty" validate:"omitempty,gt=0"`
	MinAreaM2           *float64 `json:"min_area_m2,omitempty" validate:"omitempty,gt=0"`
	AreaFactor          *float64 `json:"area_factor,omitempty" validate:"omitempty,gt=0"`
	AreaRoundingM2      *float64 `json:"area_rounding_m2,omitempty" validate:"omitempty,gt=0"`
	CoveragePerUnitM2   *float64 `json:"coverage_per_unit_m2,omitempty" validate:"omitempty,gt=0"`
	RollWidthCm         *float64 `json:"roll_width_cm,omitempty" validate:"omitempty,gt=0"`
	RollLengthCm        *float64 `json:"roll_length_cm,omitempty" validate:"omitempty,gt=0"`
}

type UpdateProductRequest struct {
	Name         *string              `json:"name,omitempty" validate:"omitempty,max=200"`
	PricePerUnit *float64             `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
	Tiers        *[]pricing.PriceTier `json:"tiers,omitempty" validate:"omitempty,min=1,dive"`
	IsActive     *bool                `json:"is_active,omitempty"`
}

type ListProductsRequest struct {
	CategoryID *int64 `json:"category_id,omitempty"`
	BrandID    *int64 `json:"brand_id,omitempty"`
	Search     string `json:"search,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
	Page       int    `json:"page" validate:"gte=0"`
	PerPage    int    `json:"per_page" validate:"gte=0,lte=200"`
}
