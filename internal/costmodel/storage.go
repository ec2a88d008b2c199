package costmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/opscost/factory-planner/pkg/constants"
	"github.com/opscost/factory-planner/pkg/montecarlo"
	"github.com/opscost/factory-planner/pkg/validation"
)

const (
	// rentIncreaseProbability is fixed in the model; only the magnitude
	// of the increase (RentVolatility) is configurable.
	rentIncreaseProbability = 0.10

	// spoilageEventMultiplier scales the normal spoilage cost on a
	// spoilage event.
	spoilageEventMultiplier = 2.0

	// securityLossShare is the fraction of inventory value lost on a
	// security breach.
	securityLossShare = 0.01
)

// StorageParams parameterizes one month of warehousing.
type StorageParams struct {
	// StorageVolume is the total warehouse volume in cubic meters;
	// UsedVolume the occupied share.
	StorageVolume float64 `yaml:"storageVolume" mapstructure:"storageVolume"`
	UsedVolume    float64 `yaml:"usedVolume" mapstructure:"usedVolume"`

	// Fixed monthly costs.
	RentPerMonth     float64 `yaml:"rentPerMonth" mapstructure:"rentPerMonth"`
	SecurityCost     float64 `yaml:"securityCost" mapstructure:"securityCost"`
	WMSCost          float64 `yaml:"wmsCost" mapstructure:"wmsCost"`
	UtilitiesCost    float64 `yaml:"utilitiesCost" mapstructure:"utilitiesCost"`
	DepreciationCost float64 `yaml:"depreciationCost" mapstructure:"depreciationCost"`

	// InsuranceRate is annual and applied monthly as rate/12 against
	// InventoryValue.
	InsuranceRate  float64 `yaml:"insuranceRate" mapstructure:"insuranceRate"`
	InventoryValue float64 `yaml:"inventoryValue" mapstructure:"inventoryValue"`

	// Variable costs.
	StorageCostPerM3      float64 `yaml:"storageCostPerM3" mapstructure:"storageCostPerM3"`
	InternalLogisticsCost float64 `yaml:"internalLogisticsCost" mapstructure:"internalLogisticsCost"`
	SpoilageRate          float64 `yaml:"spoilageRate" mapstructure:"spoilageRate"`

	// Risk parameters. The rent increase probability itself is fixed at
	// 10%; RentVolatility sets only its magnitude.
	RentVolatility     float64 `yaml:"rentVolatility" mapstructure:"rentVolatility"`
	SpoilageRisk       float64 `yaml:"spoilageRisk" mapstructure:"spoilageRisk"`
	SecurityBreachRisk float64 `yaml:"securityBreachRisk" mapstructure:"securityBreachRisk"`

	// Trials is the Monte Carlo trial count.
	Trials int `yaml:"trials" mapstructure:"trials"`
}

// Validate checks the parameter set before any simulation runs.
func (p StorageParams) Validate() error {
	if err := validation.TrialCount(p.Trials); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.NonNegative("used volume", p.UsedVolume); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.NonNegative("inventory value", p.InventoryValue); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.NonNegative("rent volatility", p.RentVolatility); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.Probability("spoilage risk", p.SpoilageRisk); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.Probability("security breach risk", p.SecurityBreachRisk); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// StorageBreakdown itemizes storage costs by fixed, variable, and risk
// categories.
type StorageBreakdown struct {
	Fixed    map[string]float64
	Variable map[string]float64
	Risk     map[string]float64
}

// StorageEstimate is the result of one warehousing simulation.
type StorageEstimate struct {
	// BaseCost is the deterministic fixed-plus-variable cost with no
	// risk events.
	BaseCost float64
	// ExpectedCost is the mean of base plus risk additions across
	// trials.
	ExpectedCost float64
	// MinCost and MaxCost are the trial extremes.
	MinCost float64
	MaxCost float64
	// RiskBreakdown holds the per-event expected addition, accumulated
	// as a running average over trials.
	RiskBreakdown map[string]float64
	// Breakdown nests the full cost itemization.
	Breakdown StorageBreakdown
}

// EstimateStorageCosts runs the Monte Carlo warehousing simulation.
// Each trial independently rolls the rent increase, spoilage, and
// security breach events on top of the deterministic base cost.
func EstimateStorageCosts(p StorageParams, src *montecarlo.Source) (StorageEstimate, error) {
	if err := p.Validate(); err != nil {
		return StorageEstimate{}, err
	}

	monthlyInsurance := p.InventoryValue * p.InsuranceRate / constants.MonthsPerYear
	baseFixed := p.RentPerMonth + p.SecurityCost + p.WMSCost + p.UtilitiesCost +
		monthlyInsurance + p.DepreciationCost
	normalSpoilage := p.InventoryValue * p.SpoilageRate
	baseVariable := p.UsedVolume*p.StorageCostPerM3 + p.InternalLogisticsCost + normalSpoilage
	baseCost := baseFixed + baseVariable

	riskBreakdown := map[string]float64{
		"rentIncrease":      0,
		"extraSpoilage":     0,
		"securityIncidents": 0,
	}
	trials := float64(p.Trials)

	totals := make([]float64, p.Trials)
	for i := range totals {
		additional := 0.0
		if src.Event(rentIncreaseProbability) {
			rentIncrease := p.RentPerMonth * p.RentVolatility
			additional += rentIncrease
			riskBreakdown["rentIncrease"] += rentIncrease / trials
		}
		if src.Event(p.SpoilageRisk) {
			extraSpoilage := normalSpoilage * spoilageEventMultiplier
			additional += extraSpoilage
			riskBreakdown["extraSpoilage"] += extraSpoilage / trials
		}
		if src.Event(p.SecurityBreachRisk) {
			securityLoss := p.InventoryValue * securityLossShare
			additional += securityLoss
			riskBreakdown["securityIncidents"] += securityLoss / trials
		}
		totals[i] = baseCost + additional
	}

	breakdown := StorageBreakdown{
		Fixed: map[string]float64{
			"rent":         p.RentPerMonth,
			"security":     p.SecurityCost,
			"wms":          p.WMSCost,
			"utilities":    p.UtilitiesCost,
			"insurance":    monthlyInsurance,
			"depreciation": p.DepreciationCost,
		},
		Variable: map[string]float64{
			"storage":   p.UsedVolume * p.StorageCostPerM3,
			"logistics": p.InternalLogisticsCost,
			"spoilage":  normalSpoilage,
		},
		Risk: riskBreakdown,
	}

	return StorageEstimate{
		BaseCost:      baseCost,
		ExpectedCost:  stat.Mean(totals, nil),
		MinCost:       floats.Min(totals),
		MaxCost:       floats.Max(totals),
		RiskBreakdown: riskBreakdown,
		Breakdown:     breakdown,
	}, nil
}
