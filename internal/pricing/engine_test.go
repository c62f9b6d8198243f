package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func testConfig() Config {
	return Config{
		VATRatePercent:     7,
		InstallationFeeMin: 0,
		WasteFactorByCategory: map[string]float64{
			"curtains":  1.2,
			"wallpaper": 1.15,
		},
	}
}

func TestQuoteLinearCurtain(t *testing.T) {
	m := Model{
		ProductID:    1,
		Category:     "curtains",
		Unit:         UnitLinearMeter,
		Method:       MethodLinear,
		PricePerUnit: 500,
	}

	item, err := Quote(m, testConfig(), 150, 200, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.5, item.Quantity)
	assert.Equal(t, 750.0, item.Subtotal)
	assert.Equal(t, 900.0, item.MaterialCost)
	assert.False(t, item.InstallationApplied)
	assert.Equal(t, 963.00, item.Total)
}

func TestQuoteRollCoverageWallpaper(t *testing.T) {
	m := Model{
		ProductID:         2,
		Category:          "wallpaper",
		Unit:              UnitRoll,
		Method:            MethodRollCoverage,
		PricePerUnit:      1200,
		CoveragePerUnitM2: fp(5),
	}

	item, err := Quote(m, testConfig(), 300, 250, 1)
	require.NoError(t, err)

	// required 7.5m² × 1.15 waste / 5m² per roll → ceil(1.725) = 2 rolls
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, 2400.0, item.Subtotal)
	// Waste is consumed by the roll count, never applied to cost again.
	assert.Equal(t, 2400.0, item.MaterialCost)
	assert.Equal(t, 2568.00, item.Total)
}

func TestQuoteInstallationMinimumFloor(t *testing.T) {
	cfg := Config{VATRatePercent: 7, InstallationFeeMin: 1500}
	m := Model{ProductID: 3, Category: "blinds", Unit: UnitLinearMeter, Method: MethodLinear, PricePerUnit: 1000}

	item, err := Quote(m, cfg, 100, 120, 1)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, item.MaterialCost)
	assert.True(t, item.InstallationApplied)
	assert.Equal(t, 1605.00, item.Total)

	var found bool
	for _, line := range item.Breakdown {
		if line.Label == "Installation minimum applied" {
			found = true
			assert.Equal(t, 1500.0, line.Amount)
		}
	}
	assert.True(t, found, "breakdown should carry the installation adjustment")
}

func TestQuoteSteppedTableBelowFirstTier(t *testing.T) {
	m := Model{
		ProductID: 4,
		Category:  "wallpaper",
		Unit:      UnitSquareMeter,
		Method:    MethodSteppedTable,
		Tiers: []PriceTier{
			{Threshold: 5, Price: 900},
			{Threshold: 10, Price: 800},
		},
	}

	item, err := Quote(m, testConfig(), 100, 200, 1) // 2m², below first threshold
	require.Nil(t, item)

	var modelErr *InvalidPricingModelError
	require.True(t, errors.As(err, &modelErr))
}

func TestQuoteSteppedTableTierSelection(t *testing.T) {
	m := Model{
		ProductID: 4,
		Category:  "wallpaper",
		Unit:      UnitSquareMeter,
		Method:    MethodSteppedTable,
		Tiers: []PriceTier{
			{Threshold: 0, Price: 1000},
			{Threshold: 5, Price: 900},
			{Threshold: 10, Price: 800},
		},
	}
	cfg := Config{VATRatePercent: 0}

	cases := []struct {
		name          string
		width, height float64
		wantUnitPrice float64
	}{
		{"first tier", 100, 200, 1000},  // 2m²
		{"second tier lower bound", 100, 500, 900}, // 5m² exactly
		{"second tier upper range", 300, 300, 900}, // 9m²
		{"third tier", 400, 300, 800},   // 12m²
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item, err := Quote(m, cfg, tc.width, tc.height, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantUnitPrice, item.UnitPrice)
			assert.Equal(t, round2(item.Quantity*tc.wantUnitPrice), round2(item.Subtotal))
		})
	}
}

func TestQuoteMinWidthClamp(t *testing.T) {
	m := Model{
		ProductID:    5,
		Category:     "blinds",
		Unit:         UnitLinearMeter,
		Method:       MethodLinear,
		PricePerUnit: 400,
		MinWidthCm:   fp(80),
	}

	item, err := Quote(m, testConfig(), 40, 150, 1)
	require.NoError(t, err)

	assert.Equal(t, 80.0, item.BillableWidthCm)
	assert.Equal(t, 40.0, item.WidthCm, "raw measurement is preserved")
	assert.Equal(t, 0.8, item.Quantity)
}

func TestQuoteAreaWithMinimum(t *testing.T) {
	m := Model{
		ProductID:    6,
		Category:     "wallpaper",
		Unit:         UnitSquareMeter,
		Method:       MethodAreaWithMinimum,
		PricePerUnit: 300,
		MinAreaM2:    fp(2),
	}

	item, err := Quote(m, testConfig(), 100, 100, 1) // 1m² raw
	require.NoError(t, err)
	assert.Equal(t, 2.0, item.Quantity)

	m.MinAreaM2 = nil
	_, err = Quote(m, testConfig(), 100, 100, 1)
	var modelErr *InvalidPricingModelError
	require.True(t, errors.As(err, &modelErr), "missing min_area must fail, not default")
}

func TestQuoteOrderedQuantityMultipliesLine(t *testing.T) {
	cfg := Config{VATRatePercent: 7, InstallationFeeMin: 1500}
	m := Model{ProductID: 7, Category: "blinds", Unit: UnitLinearMeter, Method: MethodLinear, PricePerUnit: 1000}

	// Two items at 1000 each clear the 1500 floor together.
	item, err := Quote(m, cfg, 100, 120, 2)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, item.Subtotal)
	assert.False(t, item.InstallationApplied)
	assert.Equal(t, 2140.00, item.Total)
}

func TestQuoteUnrecognizedMethod(t *testing.T) {
	m := Model{ProductID: 8, Unit: UnitLinearMeter, Method: "per_panel", PricePerUnit: 100}

	_, err := Quote(m, testConfig(), 100, 100, 1)
	var modelErr *InvalidPricingModelError
	require.True(t, errors.As(err, &modelErr))
}

func TestQuoteIdempotent(t *testing.T) {
	m := Model{
		ProductID:         9,
		Category:          "wallpaper",
		Unit:              UnitRoll,
		Method:            MethodRollCoverage,
		PricePerUnit:      1150,
		CoveragePerUnitM2: fp(5.3),
		WidthStepCm:       fp(10),
	}
	cfg := testConfig()

	first, err := Quote(m, cfg, 287, 243, 3)
	require.NoError(t, err)
	second, err := Quote(m, cfg, 287, 243, 3)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestMonotonicSurchargeLaw(t *testing.T) {
	m := Model{ProductID: 10, Category: "curtains", Unit: UnitSquareMeter, Method: MethodArea, PricePerUnit: 250}
	for _, vat := range []float64{0, 7, 21} {
		for _, waste := range []float64{1.0, 1.1, 1.5} {
			cfg := Config{VATRatePercent: vat, WasteFactorByCategory: map[string]float64{"curtains": waste}}
			item, err := Quote(m, cfg, 175, 230, 1)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, item.Total, round2(item.Subtotal))
		}
	}
}

func TestAreaCeilingLaw(t *testing.T) {
	granularity := 0.1
	m := Model{ProductID: 11, Unit: UnitSquareMeter, Method: MethodArea, PricePerUnit: 100, AreaRoundingM2: fp(granularity)}

	for _, dims := range [][2]float64{{101, 99}, {87, 251}, {300, 250}, {33, 41}, {199, 199}} {
		item, err := Quote(m, Config{}, dims[0], dims[1], 1)
		require.NoError(t, err)
		raw := dims[0] * dims[1] / 10000
		assert.GreaterOrEqual(t, item.Quantity, raw-1e-9)
		assert.Less(t, item.Quantity, raw+granularity+1e-9)
	}
}

func TestRollCoverageLaw(t *testing.T) {
	coverage := 5.0
	waste := 1.15
	cfg := Config{WasteFactorByCategory: map[string]float64{"wallpaper": waste}}
	m := Model{ProductID: 12, Category: "wallpaper", Unit: UnitRoll, Method: MethodRollCoverage, PricePerUnit: 1200, CoveragePerUnitM2: fp(coverage)}

	for _, dims := range [][2]float64{{300, 250}, {120, 260}, {455, 312}, {90, 210}} {
		item, err := Quote(m, cfg, dims[0], dims[1], 1)
		require.NoError(t, err)
		required := ceilTo(dims[0]*dims[1]/10000, defaultAreaRoundingM2)
		assert.GreaterOrEqual(t, item.Quantity*coverage, required*waste-1e-9,
			"material must never be under-provisioned")
	}
}

func TestBreakdownOrderIsStable(t *testing.T) {
	m := Model{ProductID: 13, Category: "curtains", Unit: UnitLinearMeter, Method: MethodLinear, PricePerUnit: 500}

	item, err := Quote(m, testConfig(), 150, 200, 1)
	require.NoError(t, err)

	require.Len(t, item.Breakdown, 5)
	assert.Equal(t, "Quantity (m)", item.Breakdown[0].Label)
	assert.Equal(t, "Base subtotal", item.Breakdown[1].Label)
	assert.Equal(t, "Material cost (waste ×1.20)", item.Breakdown[2].Label)
	assert.Equal(t, "VAT 7%", item.Breakdown[3].Label)
	assert.Equal(t, "Total", item.Breakdown[4].Label)
	assert.Equal(t, item.Total, item.Breakdown[4].Amount)
}
