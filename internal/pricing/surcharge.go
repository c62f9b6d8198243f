package pricing

type surchargeResult struct {
	WasteFactor         float64
	MaterialCost        float64
	AfterInstallation   float64
	InstallationApplied bool
	VATRatePercent      float64
	VATAmount           float64
	Total               float64
}

// applySurcharges runs the three surcharge steps over the line subtotal:
// waste factor, installation minimum (a floor on the line, not an additive
// fee), then VAT. Arithmetic stays at full precision; only the final total is
// rounded to the smallest currency unit.
func applySurcharges(lineSubtotal float64, category string, cfg Config, wasteInQuantity bool) surchargeResult {
	res := surchargeResult{
		WasteFactor:    cfg.WasteFactor(category),
		VATRatePercent: cfg.VATRatePercent,
	}

	res.MaterialCost = lineSubtotal
	if !wasteInQuantity {
		res.MaterialCost = lineSubtotal * res.WasteFactor
	}

	res.AfterInstallation = res.MaterialCost
	if cfg.InstallationFeeMin > res.AfterInstallation {
		res.AfterInstallation = cfg.InstallationFeeMin
		res.InstallationApplied = true
	}

	res.Total = round2(res.AfterInstallation * (1 + cfg.VATRatePercent/100))
	res.VATAmount = round2(res.AfterInstallation * cfg.VATRatePercent / 100)
	return res
}
