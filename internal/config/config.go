// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/opscost/factory-planner/internal/planner"
	"github.com/opscost/factory-planner/pkg/constants"
)

// Configuration holds all configuration for factory-planner.
type Configuration struct {
	Planning PlanningConfig      `yaml:"planning" mapstructure:"planning"`
	Models   planner.ModelParams `yaml:"models" mapstructure:"models"`
	Logging  LoggingConfig       `yaml:"logging,omitempty" mapstructure:"logging"`
	Output   OutputConfig        `yaml:"output,omitempty" mapstructure:"output"`
}

// PlanningConfig holds the horizon-level planning parameters.
type PlanningConfig struct {
	// Months is the planning horizon; TargetBoxes the monthly
	// production target.
	Months      int     `yaml:"months,omitempty" mapstructure:"months"`
	TargetBoxes float64 `yaml:"targetBoxes" mapstructure:"targetBoxes"`
	// Inventory is the starting stock snapshot.
	Inventory planner.Inventory `yaml:"inventory" mapstructure:"inventory"`
	// RiskTolerance is the acceptable total risk fraction; Budget caps
	// total cost when positive.
	RiskTolerance float64 `yaml:"riskTolerance" mapstructure:"riskTolerance"`
	Budget        float64 `yaml:"budget,omitempty" mapstructure:"budget"`
	// Trials is the Monte Carlo trial count applied to every model
	// that does not set its own.
	Trials int `yaml:"trials,omitempty" mapstructure:"trials"`
	// MaxIterations caps the minimizer.
	MaxIterations int `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	// Seed fixes the random source for reproducible plans.
	Seed uint64 `yaml:"seed,omitempty" mapstructure:"seed"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset planning and model fields with their
// documented defaults. The planning-level trial count propagates into
// every model that leaves its own at zero.
func (conf *Configuration) ApplyDefaults() {
	if conf.Planning.Months == 0 {
		conf.Planning.Months = constants.DefaultHorizonMonths
	}
	if conf.Planning.Trials == 0 {
		conf.Planning.Trials = constants.DefaultTrialCount
	}
	if conf.Planning.MaxIterations == 0 {
		conf.Planning.MaxIterations = constants.DefaultMaxIterations
	}
	if conf.Models.Production.ProductValue == 0 {
		conf.Models.Production.ProductValue = constants.DefaultProductValue
	}
	if conf.Models.RawMaterial.Trials == 0 {
		conf.Models.RawMaterial.Trials = conf.Planning.Trials
	}
	if conf.Models.Production.Trials == 0 {
		conf.Models.Production.Trials = conf.Planning.Trials
	}
	if conf.Models.Storage.Trials == 0 {
		conf.Models.Storage.Trials = conf.Planning.Trials
	}
	if conf.Models.Logistics.Trials == 0 {
		conf.Models.Logistics.Trials = conf.Planning.Trials
	}
}

// Request assembles the planning request the optimizer consumes.
func (conf *Configuration) Request() planner.Request {
	return planner.Request{
		Months:        conf.Planning.Months,
		TargetBoxes:   conf.Planning.TargetBoxes,
		Inventory:     conf.Planning.Inventory,
		Models:        conf.Models,
		RiskTolerance: conf.Planning.RiskTolerance,
		Budget:        conf.Planning.Budget,
		MaxIterations: conf.Planning.MaxIterations,
		Seed:          conf.Planning.Seed,
	}
}

// ValidateConfiguration performs general validation of the configuration.
func (conf *Configuration) ValidateConfiguration() error {
	return conf.Request().Validate()
}
