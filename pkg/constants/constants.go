// Package constants provides shared constants for the factory-planner application.
package constants

// Planning and financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the procurement planning month length used for
	// daily-usage and safety-stock calculations
	DaysPerMonth = 30

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)

// Objective penalty weights
const (
	// TargetDeviationWeight scales the squared deviation of monthly
	// production from the target output
	TargetDeviationWeight = 100.0

	// RiskToleranceWeight scales the penalty applied when aggregate risk
	// exceeds the configured tolerance
	RiskToleranceWeight = 1e6
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Simulation defaults
const (
	// DefaultTrialCount is the Monte Carlo trial count used when the
	// configuration does not specify one
	DefaultTrialCount = 1000

	// DefaultHorizonMonths is the default planning horizon
	DefaultHorizonMonths = 12

	// DefaultMaxIterations is the default optimizer iteration cap
	DefaultMaxIterations = 1000

	// DefaultProductValue is the per-box value assumed for finished goods
	// when none is configured
	DefaultProductValue = 1000.0
)
