package costmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/opscost/factory-planner/pkg/constants"
	"github.com/opscost/factory-planner/pkg/montecarlo"
	"github.com/opscost/factory-planner/pkg/validation"
)

// RawMaterialParams parameterizes one month of raw material sourcing.
type RawMaterialParams struct {
	// TargetBoxes is the production volume the purchased material must
	// cover before defect adjustment.
	TargetBoxes float64 `yaml:"targetBoxes" mapstructure:"targetBoxes"`
	// Materials is the full set of sourced materials.
	Materials []Material `yaml:"materials" mapstructure:"materials"`
	// DefectRate inflates the required quantity to cover scrap.
	DefectRate float64 `yaml:"defectRate" mapstructure:"defectRate"`
	// DeliveryRisk is the probability that a delayed delivery forces
	// buying the safety buffer on top of the required amount.
	DeliveryRisk float64 `yaml:"deliveryRisk" mapstructure:"deliveryRisk"`
	// SafetyStockDays sizes the safety buffer in days of usage.
	SafetyStockDays float64 `yaml:"safetyStockDays" mapstructure:"safetyStockDays"`
	// Trials is the Monte Carlo trial count.
	Trials int `yaml:"trials" mapstructure:"trials"`
}

// Validate checks the parameter set before any simulation runs.
func (p RawMaterialParams) Validate() error {
	if err := validation.TrialCount(p.Trials); err != nil {
		return fmt.Errorf("raw material: %w", err)
	}
	if len(p.Materials) == 0 {
		return fmt.Errorf("raw material: at least one material is required")
	}
	seen := make(map[string]bool, len(p.Materials))
	for _, m := range p.Materials {
		if m.Name == "" {
			return fmt.Errorf("raw material: material name cannot be empty")
		}
		if seen[m.Name] {
			return fmt.Errorf("raw material: duplicate material %q", m.Name)
		}
		seen[m.Name] = true
		if err := validation.NonNegative(fmt.Sprintf("material %q perBox", m.Name), m.PerBox); err != nil {
			return fmt.Errorf("raw material: %w", err)
		}
		if err := validation.NonNegative(fmt.Sprintf("material %q volatility", m.Name), m.Volatility); err != nil {
			return fmt.Errorf("raw material: %w", err)
		}
	}
	if err := validation.NonNegative("defect rate", p.DefectRate); err != nil {
		return fmt.Errorf("raw material: %w", err)
	}
	if err := validation.Probability("delivery risk", p.DeliveryRisk); err != nil {
		return fmt.Errorf("raw material: %w", err)
	}
	if err := validation.NonNegative("safety stock days", p.SafetyStockDays); err != nil {
		return fmt.Errorf("raw material: %w", err)
	}
	return nil
}

// RawMaterialEstimate is the result of one sourcing simulation.
type RawMaterialEstimate struct {
	// ExpectedCost is the mean cost across trials.
	ExpectedCost float64
	// MinCost and MaxCost are the trial extremes.
	MinCost float64
	MaxCost float64
	// RiskAboveBudget is the percentage of trials whose cost exceeded
	// the volatility-free baseline budget.
	RiskAboveBudget float64
	// SafetyStock holds the computed safety buffer per material in mass
	// units. It scales linearly with SafetyStockDays.
	SafetyStock map[string]float64
}

// EstimateRawMaterialCosts runs the Monte Carlo sourcing simulation.
// Each trial draws a price per material from Normal(base, base*volatility)
// and, with DeliveryRisk probability, buys the safety buffer on top of
// the required amount.
func EstimateRawMaterialCosts(p RawMaterialParams, src *montecarlo.Source) (RawMaterialEstimate, error) {
	if err := p.Validate(); err != nil {
		return RawMaterialEstimate{}, err
	}

	adjustedBoxes := p.TargetBoxes * (1 + p.DefectRate)
	required := make(map[string]float64, len(p.Materials))
	safetyStock := make(map[string]float64, len(p.Materials))
	baseBudget := 0.0
	for _, m := range p.Materials {
		required[m.Name] = adjustedBoxes * m.PerBox
		safetyStock[m.Name] = required[m.Name] / constants.DaysPerMonth * p.SafetyStockDays
		baseBudget += m.BasePrice * required[m.Name]
	}

	totals := make([]float64, p.Trials)
	above := 0
	for i := range totals {
		total := 0.0
		for _, m := range p.Materials {
			price := src.Normal(m.BasePrice, m.BasePrice*m.Volatility)
			amount := required[m.Name]
			if src.Event(p.DeliveryRisk) {
				amount += safetyStock[m.Name]
			}
			total += price * amount
		}
		totals[i] = total
		if total > baseBudget {
			above++
		}
	}

	return RawMaterialEstimate{
		ExpectedCost:    stat.Mean(totals, nil),
		MinCost:         floats.Min(totals),
		MaxCost:         floats.Max(totals),
		RiskAboveBudget: 100 * float64(above) / float64(p.Trials),
		SafetyStock:     safetyStock,
	}, nil
}
