package pricing

import "fmt"

// BreakdownLine is one labeled amount in the persisted cost breakdown. The
// sequence is stored verbatim in a quotation line item so a reloaded draft
// displays exactly what the customer saw, independent of later config edits.
type BreakdownLine struct {
	Label  string  `json:"label" validate:"required"`
	Amount float64 `json:"amount"`
}

// buildBreakdown renders the pipeline steps in a stable order: quantity and
// unit, base subtotal, waste-adjusted material cost, the installation minimum
// (only when it raised the value), VAT, total.
func buildBreakdown(q resolvedQuantity, lineSubtotal float64, s surchargeResult) []BreakdownLine {
	lines := []BreakdownLine{
		{Label: fmt.Sprintf("Quantity (%s)", q.Unit), Amount: q.Value},
		{Label: "Base subtotal", Amount: round2(lineSubtotal)},
	}
	if q.WasteInQuantity {
		lines = append(lines, BreakdownLine{Label: "Material cost (waste included in count)", Amount: round2(s.MaterialCost)})
	} else {
		lines = append(lines, BreakdownLine{Label: fmt.Sprintf("Material cost (waste ×%.2f)", s.WasteFactor), Amount: round2(s.MaterialCost)})
	}
	if s.InstallationApplied {
		lines = append(lines, BreakdownLine{Label: "Installation minimum applied", Amount: round2(s.AfterInstallation)})
	}
	lines = append(lines,
		BreakdownLine{Label: fmt.Sprintf("VAT %g%%", s.VATRatePercent), Amount: s.VATAmount},
		BreakdownLine{Label: "Total", Amount: s.Total},
	)
	return lines
}
