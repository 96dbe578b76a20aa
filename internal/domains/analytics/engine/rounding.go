package engine

import "math"

// Round rounds v to d decimal places by scaling to 10^d, rounding the scaled
// IEEE-754 double half-up away from zero, and dividing back. Rounding an
// already-rounded value to the same precision changes nothing.
func Round(v float64, d int) float64 {
	scale := math.Pow(10, float64(d))
	return math.Round(v*scale) / scale
}

// Round2 rounds to two decimal places, the precision used for money values.
func Round2(v float64) float64 { return Round(v, 2) }

// Round1 rounds to one decimal place, the precision used for ratings.
func Round1(v float64) float64 { return Round(v, 1) }
