package pricing

import "strings"

// Keys understood by ConfigFromValues. Waste factors are stored one key per
// category, e.g. waste_factor_wallpaper.
const (
	KeyVATRate            = "vat_rate"
	KeyInstallationFeeMin = "installation_fee_min"
	WasteFactorKeyPrefix  = "waste_factor_"
)

// Config is an immutable snapshot of the global pricing constants. The engine
// never fetches configuration itself; callers build a Config once and thread
// it through every calculation.
type Config struct {
	VATRatePercent        float64
	InstallationFeeMin    float64
	WasteFactorByCategory map[string]float64
}

// ConfigFromValues builds a Config from the flat key→numeric collection the
// settings store exposes. Missing keys fall back to documented defaults (VAT
// 0, installation minimum 0, waste factor 1.0) and are reported as warnings
// rather than errors. Waste factors below 1.0 are lifted to 1.0: a factor
// under one would bill for less material than was cut.
func ConfigFromValues(values map[string]float64) (Config, []ConfigDefaultedWarning) {
	cfg := Config{WasteFactorByCategory: make(map[string]float64)}
	var warnings []ConfigDefaultedWarning

	if v, ok := values[KeyVATRate]; ok {
		cfg.VATRatePercent = v
	} else {
		warnings = append(warnings, ConfigDefaultedWarning{Key: KeyVATRate, Fallback: 0})
	}
	if v, ok := values[KeyInstallationFeeMin]; ok {
		cfg.InstallationFeeMin = v
	} else {
		warnings = append(warnings, ConfigDefaultedWarning{Key: KeyInstallationFeeMin, Fallback: 0})
	}
	for key, v := range values {
		if !strings.HasPrefix(key, WasteFactorKeyPrefix) {
			continue
		}
		category := strings.TrimPrefix(key, WasteFactorKeyPrefix)
		if category == "" {
			continue
		}
		if v < 1.0 {
			warnings = append(warnings, ConfigDefaultedWarning{Key: key, Fallback: 1.0})
			v = 1.0
		}
		cfg.WasteFactorByCategory[category] = v
	}
	return cfg, warnings
}

// WasteFactor returns the multiplier for a category, defaulting to 1.0 when
// the category is absent from the snapshot.
func (c Config) WasteFactor(category string) float64 {
	if f, ok := c.WasteFactorByCategory[category]; ok && f >= 1.0 {
		return f
	}
	return 1.0
}
