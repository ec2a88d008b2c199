package costmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/opscost/factory-planner/pkg/mathutil"
	"github.com/opscost/factory-planner/pkg/montecarlo"
	"github.com/opscost/factory-planner/pkg/validation"
)

// Strategy identifies a shipping strategy.
type Strategy string

const (
	// StrategyOwnFleet ships with an in-house truck fleet.
	StrategyOwnFleet Strategy = "own-fleet"
	// StrategyContractor ships through a third-party contractor.
	StrategyContractor Strategy = "contractor"
)

const (
	// fuelLitersPerKm is the assumed fuel burn per kilometer per truck.
	fuelLitersPerKm = 0.1

	// ownFleetDamageShare is the fraction of cargo value lost on a
	// damage event when shipping in-house; contractorDamageShare is the
	// uncovered fraction when the contractor ships (the contractor
	// covers the rest).
	ownFleetDamageShare    = 0.5
	contractorDamageShare  = 0.3
	contractorDelayPenalty = 1.2
)

// LogisticsParams parameterizes one month of shipping.
type LogisticsParams struct {
	// RawMaterialVolume and FinishedGoodsVolume are the inbound and
	// outbound shipment volumes in cubic meters.
	RawMaterialVolume   float64 `yaml:"rawMaterialVolume" mapstructure:"rawMaterialVolume"`
	FinishedGoodsVolume float64 `yaml:"finishedGoodsVolume" mapstructure:"finishedGoodsVolume"`
	// DistanceSupplier and DistanceCustomer are one-way distances in km.
	DistanceSupplier float64 `yaml:"distanceSupplier" mapstructure:"distanceSupplier"`
	DistanceCustomer float64 `yaml:"distanceCustomer" mapstructure:"distanceCustomer"`

	// In-house fleet economics.
	TruckCapacity  float64 `yaml:"truckCapacity" mapstructure:"truckCapacity"`
	TruckCostPerKm float64 `yaml:"truckCostPerKm" mapstructure:"truckCostPerKm"`
	TruckFixedCost float64 `yaml:"truckFixedCost" mapstructure:"truckFixedCost"`

	// Contractor economics.
	ContractorCostPerM3 float64 `yaml:"contractorCostPerM3" mapstructure:"contractorCostPerM3"`
	ContractorDelayRisk float64 `yaml:"contractorDelayRisk" mapstructure:"contractorDelayRisk"`

	// Shared risk factors.
	FuelPriceMean   float64 `yaml:"fuelPriceMean" mapstructure:"fuelPriceMean"`
	FuelPriceStd    float64 `yaml:"fuelPriceStd" mapstructure:"fuelPriceStd"`
	DamageRisk      float64 `yaml:"damageRisk" mapstructure:"damageRisk"`
	DamageCostPerM3 float64 `yaml:"damageCostPerM3" mapstructure:"damageCostPerM3"`

	// Trials is the Monte Carlo trial count.
	Trials int `yaml:"trials" mapstructure:"trials"`
}

// Validate checks the parameter set before any simulation runs.
func (p LogisticsParams) Validate() error {
	if err := validation.TrialCount(p.Trials); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	if err := validation.Positive("truck capacity", p.TruckCapacity); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	if err := validation.NonNegative("raw material volume", p.RawMaterialVolume); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	if err := validation.NonNegative("finished goods volume", p.FinishedGoodsVolume); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	if err := validation.Probability("contractor delay risk", p.ContractorDelayRisk); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	if err := validation.Probability("damage risk", p.DamageRisk); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	if err := validation.NonNegative("fuel price std", p.FuelPriceStd); err != nil {
		return fmt.Errorf("logistics: %w", err)
	}
	return nil
}

// LogisticsEstimate is the result of one shipping simulation.
//
// MinCost and MaxCost span the union of both strategies' trial samples
// regardless of which strategy is chosen, forming a best/worst-case
// envelope across both options, while ExpectedCost is the mean of the
// cheaper strategy alone.
type LogisticsEstimate struct {
	ExpectedCost float64
	MinCost      float64
	MaxCost      float64
	// OptimalStrategy is whichever strategy had the lower mean cost.
	OptimalStrategy Strategy
	// TrucksNeeded is the fleet size covering the total volume.
	TrucksNeeded int
	// RiskBreakdown reports the delay and damage probabilities as
	// percentages.
	RiskBreakdown map[string]float64
	// Breakdown itemizes each strategy's deterministic cost components.
	Breakdown map[Strategy]map[string]float64
}

// EstimateLogisticsCosts runs the Monte Carlo shipping simulation. Both
// strategies are simulated in every trial against the same fuel, delay,
// and damage draws so their distributions are directly comparable.
func EstimateLogisticsCosts(p LogisticsParams, src *montecarlo.Source) (LogisticsEstimate, error) {
	if err := p.Validate(); err != nil {
		return LogisticsEstimate{}, err
	}

	totalVolume := p.RawMaterialVolume + p.FinishedGoodsVolume
	trucksNeeded := mathutil.CeilDiv(totalVolume, p.TruckCapacity)
	totalDistance := p.DistanceSupplier + p.DistanceCustomer
	trucks := float64(trucksNeeded)

	ownCosts := make([]float64, p.Trials)
	contractorCosts := make([]float64, p.Trials)
	for i := 0; i < p.Trials; i++ {
		fuelPrice := src.Normal(p.FuelPriceMean, p.FuelPriceStd)
		delayed := src.Event(p.ContractorDelayRisk)
		damaged := src.Event(p.DamageRisk)

		ownCost := p.TruckCostPerKm*totalDistance*trucks +
			p.TruckFixedCost*trucks +
			fuelPrice*fuelLitersPerKm*totalDistance*trucks
		if damaged {
			ownCost += p.DamageCostPerM3 * totalVolume * ownFleetDamageShare
		}

		contractorCost := p.ContractorCostPerM3 * totalVolume
		if delayed {
			contractorCost *= contractorDelayPenalty
		}
		if damaged {
			contractorCost += p.DamageCostPerM3 * totalVolume * contractorDamageShare
		}

		ownCosts[i] = ownCost
		contractorCosts[i] = contractorCost
	}

	meanOwn := stat.Mean(ownCosts, nil)
	meanContractor := stat.Mean(contractorCosts, nil)

	strategy := StrategyContractor
	expected := meanContractor
	if meanOwn < meanContractor {
		strategy = StrategyOwnFleet
		expected = meanOwn
	}

	breakdown := map[Strategy]map[string]float64{
		StrategyOwnFleet: {
			"transport":  p.TruckCostPerKm * totalDistance * trucks,
			"fixedCosts": p.TruckFixedCost * trucks,
			"fuel":       p.FuelPriceMean * fuelLitersPerKm * totalDistance * trucks,
		},
		StrategyContractor: {
			"transport":      p.ContractorCostPerM3 * totalVolume,
			"delayPenalties": p.ContractorCostPerM3 * totalVolume * (contractorDelayPenalty - 1) * p.ContractorDelayRisk,
		},
	}

	return LogisticsEstimate{
		ExpectedCost:    expected,
		MinCost:         math.Min(floats.Min(ownCosts), floats.Min(contractorCosts)),
		MaxCost:         math.Max(floats.Max(ownCosts), floats.Max(contractorCosts)),
		OptimalStrategy: strategy,
		TrucksNeeded:    trucksNeeded,
		RiskBreakdown: map[string]float64{
			"delayRisk":  100 * p.ContractorDelayRisk,
			"damageRisk": 100 * p.DamageRisk,
		},
		Breakdown: breakdown,
	}, nil
}
