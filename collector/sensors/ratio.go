// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import "math"

// Ratio is an exact rational scale factor. The zero value means 1/1.
//
// Values are stored into netdata as integers after multiplication by the
// ratio; the reverse scaling is delegated to netdata via the dimension
// multiplier (denominator) and divisor (numerator), so the ratio itself
// must stay exact end to end.
type Ratio struct {
	Num int64
	Den int64
}

// Numerator returns the numerator, treating a zero numerator as 1.
func (r Ratio) Numerator() int64 {
	if r.Num == 0 {
		return 1
	}
	return r.Num
}

// Denominator returns the denominator, treating a zero denominator as 1.
func (r Ratio) Denominator() int64 {
	if r.Den == 0 {
		return 1
	}
	return r.Den
}

// IsOne reports whether the ratio equals 1/1.
func (r Ratio) IsOne() bool {
	return r.Numerator() == r.Denominator()
}

// Scale multiplies v by the ratio, keeping the result in floating point.
func (r Ratio) Scale(v float64) float64 {
	if r.IsOne() {
		return v
	}
	return v * float64(r.Numerator()) / float64(r.Denominator())
}

// ScaleInt64 multiplies v by the ratio and rounds to the nearest integer.
// This is the single float-to-fixed-point conversion in the pipeline.
func (r Ratio) ScaleInt64(v float64) int64 {
	return int64(math.Round(r.Scale(v)))
}
