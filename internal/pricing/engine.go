// Package pricing implements the quotation pricing engine: a strict linear
// pipeline from raw room measurements to an auditable line total with an
// itemized breakdown. Every stage is a pure function of its inputs plus an
// immutable Config, so a quotation computed today reproduces bit-identically
// when a saved draft is reloaded weeks later.
package pricing

// LineItem is the self-contained result of pricing one cart line. It stores
// resolved values, not catalog references: redisplaying a saved draft must
// never require re-resolving against the live catalog. Immutable once
// created; repricing produces a new LineItem.
type LineItem struct {
	ProductID int64             `json:"product_id" validate:"required,gt=0"`
	Category  string            `json:"category"`
	Unit      string            `json:"unit" validate:"required"`
	Method    CalculationMethod `json:"method" validate:"required"`

	WidthCm          float64 `json:"width_cm" validate:"gt=0"`
	HeightCm         float64 `json:"height_cm" validate:"gt=0"`
	BillableWidthCm  float64 `json:"billable_width_cm" validate:"gt=0"`
	BillableHeightCm float64 `json:"billable_height_cm" validate:"gt=0"`

	OrderedQuantity int     `json:"ordered_quantity" validate:"gte=1"`
	Quantity        float64 `json:"quantity" validate:"gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`

	// Monetary fields are line-level: the per-item subtotal multiplied by
	// OrderedQuantity before surcharges, so the installation minimum floors
	// the order line as a whole.
	Subtotal            float64 `json:"subtotal"`
	WasteFactor         float64 `json:"waste_factor" validate:"gte=1"`
	MaterialCost        float64 `json:"material_cost"`
	InstallationApplied bool    `json:"installation_applied"`
	VATRatePercent      float64 `json:"vat_rate_percent" validate:"gte=0"`
	VATAmount           float64 `json:"vat_amount"`
	Total               float64 `json:"total"`

	Breakdown []BreakdownLine `json:"breakdown" validate:"required,min=4,dive"`
}

// Quote prices one line item. It is the engine's single entry point: no I/O,
// no shared state, safe to call concurrently. Errors are typed —
// *OutOfRangeError for customer-correctable dimension problems,
// *InvalidPricingModelError for catalog data bugs. An orderedQuantity below 1
// is treated as 1.
func Quote(m Model, cfg Config, widthCm, heightCm float64, orderedQuantity int) (*LineItem, error) {
	if orderedQuantity < 1 {
		orderedQuantity = 1
	}

	dims, err := normalizeDimensions(widthCm, heightCm, m)
	if err != nil {
		return nil, err
	}

	qty, err := resolveQuantity(dims, m, cfg.WasteFactor(m.Category))
	if err != nil {
		return nil, err
	}

	unitPrice, itemSubtotal, err := evaluatePrice(qty, m)
	if err != nil {
		return nil, err
	}

	lineSubtotal := itemSubtotal * float64(orderedQuantity)
	surcharges := applySurcharges(lineSubtotal, m.Category, cfg, qty.WasteInQuantity)

	return &LineItem{
		ProductID:           m.ProductID,
		Category:            m.Category,
		Unit:                qty.Unit,
		Method:              m.Method,
		WidthCm:             widthCm,
		HeightCm:            heightCm,
		BillableWidthCm:     dims.WidthCm,
		BillableHeightCm:    dims.HeightCm,
		OrderedQuantity:     orderedQuantity,
		Quantity:            qty.Value,
		UnitPrice:           unitPrice,
		Subtotal:            lineSubtotal,
		WasteFactor:         surcharges.WasteFactor,
		MaterialCost:        surcharges.MaterialCost,
		InstallationApplied: surcharges.InstallationApplied,
		VATRatePercent:      surcharges.VATRatePercent,
		VATAmount:           surcharges.VATAmount,
		Total:               surcharges.Total,
		Breakdown:           buildBreakdown(qty, lineSubtotal, surcharges),
	}, nil
}
