package pricing

// CalculationMethod selects the strategy used to turn billable dimensions into
// a billable quantity. The set is closed; anything else fails pricing.
type CalculationMethod string

const (
	MethodLinear          CalculationMethod = "linear"
	MethodArea            CalculationMethod = "area"
	MethodAreaWithMinimum CalculationMethod = "area_with_minimum"
	MethodRollCoverage    CalculationMethod = "roll_coverage"
	MethodSteppedTable    CalculationMethod = "stepped_table"
)

// Billing units used by the catalog.
const (
	UnitLinearMeter = "m"
	UnitSquareMeter = "m2"
	UnitRoll        = "roll"
	UnitBox         = "box"
)

// PriceTier is one row of a stepped price table. Thresholds must be strictly
// increasing; the tier price applies flatly to the whole quantity.
type PriceTier struct {
	Threshold float64 `json:"threshold" validate:"gte=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// Model describes how one catalog item is priced. Constraint pointers are
// optional: nil means no constraint, never zero.
type Model struct {
	ProductID int64
	Category  string
	Unit      string
	Method    CalculationMethod

	// PricePerUnit is ignored when Method is MethodSteppedTable; Tiers is
	// ignored for every other method.
	PricePerUnit float64
	Tiers        []PriceTier

	MinWidthCm          *float64
	MaxWidthCm          *float64
	MaxHeightCm         *float64
	MinBillableWidthCm  *float64
	MinBillableHeightCm *float64
	WidthStepCm         *float64
	HeightStepCm        *float64

	MinAreaM2      *float64
	AreaFactor     *float64
	AreaRoundingM2 *float64

	CoveragePerUnitM2 *float64
	RollWidthCm       *float64
	RollLengthCm      *float64
}
