package pricing

import "math"

// billableDimensions holds width/height after clamping and stepping. Billable
// dimensions may exceed the physical measurement, never the other way around.
type billableDimensions struct {
	WidthCm  float64
	HeightCm float64
}

// normalizeDimensions turns raw measurements into billable ones. Order
// matters: hard bounds first, then the fabrication minimum, then step
// rounding, then the billable floors as a final pass.
func normalizeDimensions(widthCm, heightCm float64, m Model) (billableDimensions, error) {
	if widthCm <= 0 {
		return billableDimensions{}, &OutOfRangeError{Dimension: "width", ValueCm: widthCm, BoundCm: 0, Bound: "min"}
	}
	if heightCm <= 0 {
		return billableDimensions{}, &OutOfRangeError{Dimension: "height", ValueCm: heightCm, BoundCm: 0, Bound: "min"}
	}
	if m.MaxWidthCm != nil && widthCm > *m.MaxWidthCm {
		return billableDimensions{}, &OutOfRangeError{Dimension: "width", ValueCm: widthCm, BoundCm: *m.MaxWidthCm, Bound: "max"}
	}
	if m.MaxHeightCm != nil && heightCm > *m.MaxHeightCm {
		return billableDimensions{}, &OutOfRangeError{Dimension: "height", ValueCm: heightCm, BoundCm: *m.MaxHeightCm, Bound: "max"}
	}

	w, h := widthCm, heightCm
	if m.MinWidthCm != nil && w < *m.MinWidthCm {
		w = *m.MinWidthCm
	}
	if m.WidthStepCm != nil && *m.WidthStepCm > 0 {
		w = ceilTo(w, *m.WidthStepCm)
	}
	if m.HeightStepCm != nil && *m.HeightStepCm > 0 {
		h = ceilTo(h, *m.HeightStepCm)
	}
	if m.MinBillableWidthCm != nil && w < *m.MinBillableWidthCm {
		w = *m.MinBillableWidthCm
	}
	if m.MinBillableHeightCm != nil && h < *m.MinBillableHeightCm {
		h = *m.MinBillableHeightCm
	}
	return billableDimensions{WidthCm: w, HeightCm: h}, nil
}

// ceilTo rounds v up to the next multiple of step. The epsilon keeps values
// that are already an exact multiple (up to float noise) from jumping a full
// step.
func ceilTo(v, step float64) float64 {
	n := math.Ceil(v/step - 1e-9)
	return n * step
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
