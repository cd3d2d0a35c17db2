package engine

import "math"

// PotentialReturn projects the outcome of committing amount soldiers to a
// market whose status is statusPercent (the signed percentage change for the
// market in the current cycle; may be negative). Pure: callers pass the
// market status explicitly, there is no lookup of ambient cycle state.
//
// Rounding is half-up to the nearest integer so results are exact:
// PotentialReturn(50, -15) = round(50 * 0.85) = 43.
func PotentialReturn(amount int, statusPercent int) int {
	v := float64(amount) * (100 + float64(statusPercent)) / 100
	return int(math.Floor(v + 0.5))
}
