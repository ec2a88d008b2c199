// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/opscost/factory-planner/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// Probability checks that value is a valid probability in [0, 1].
func Probability(name string, value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("%s must be a probability between 0 and 1, got %v", name, value)
	}
	return nil
}

// NonNegative checks that value is zero or greater.
func NonNegative(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", name, value)
	}
	return nil
}

// Positive checks that value is strictly greater than zero.
func Positive(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, value)
	}
	return nil
}

// TrialCount checks that a Monte Carlo trial count is usable.
func TrialCount(trials int) error {
	if trials < 1 {
		return fmt.Errorf("trial count must be at least 1, got %d", trials)
	}
	return nil
}
