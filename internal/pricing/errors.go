package pricing

import "fmt"

// OutOfRangeError reports a dimension that violates a hard min/max bound. It
// carries the offending bound so the storefront can tell the customer what to
// fix.
type OutOfRangeError struct {
	Dimension string // "width" or "height"
	ValueCm   float64
	BoundCm   float64
	Bound     string // "min" or "max"
}

func (e *OutOfRangeError) Error() string {
	if e.Bound == "min" {
		return fmt.Sprintf("%s %.1fcm is below the minimum of %.1fcm", e.Dimension, e.ValueCm, e.BoundCm)
	}
	return fmt.Sprintf("%s %.1fcm exceeds the maximum of %.1fcm", e.Dimension, e.ValueCm, e.BoundCm)
}

// InvalidPricingModelError reports an internally inconsistent product pricing
// configuration. This is a catalog data bug, never a customer input problem,
// and must not be silently defaulted.
type InvalidPricingModelError struct {
	Reason string
}

func (e *InvalidPricingModelError) Error() string {
	return "invalid pricing model: " + e.Reason
}

// ConfigDefaultedWarning records that a pricing configuration key was absent
// and a documented fallback was used. Informational only; it never blocks a
// calculation.
type ConfigDefaultedWarning struct {
	Key      string  `json:"key"`
	Fallback float64 `json:"fallback"`
}

func (w ConfigDefaultedWarning) String() string {
	return fmt.Sprintf("config key %q missing, defaulted to %g", w.Key, w.Fallback)
}
