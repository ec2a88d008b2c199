// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/opscost/factory-planner/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Clamp restricts a value to the inclusive range [min, max]. A NaN
// bound never clips, so Clamp(val, min, NaN) only enforces the minimum.
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CeilDiv returns the smallest whole count of capacity-sized units that
// covers total. Callers must guarantee capacity > 0.
func CeilDiv(total, capacity float64) int {
	return int(math.Ceil(total / capacity))
}
