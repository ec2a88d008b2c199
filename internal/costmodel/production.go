package costmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/opscost/factory-planner/pkg/montecarlo"
	"github.com/opscost/factory-planner/pkg/validation"
)

// FixedProductionCosts are the monthly cost components that do not vary
// with production volume.
type FixedProductionCosts struct {
	Rent              float64 `yaml:"rent" mapstructure:"rent"`
	Utilities         float64 `yaml:"utilities" mapstructure:"utilities"`
	Depreciation      float64 `yaml:"depreciation" mapstructure:"depreciation"`
	Certification     float64 `yaml:"certification" mapstructure:"certification"`
	InternalLogistics float64 `yaml:"internalLogistics" mapstructure:"internalLogistics"`
	IT                float64 `yaml:"it" mapstructure:"it"`
	WasteDisposal     float64 `yaml:"wasteDisposal" mapstructure:"wasteDisposal"`
	Tax               float64 `yaml:"tax" mapstructure:"tax"`
	Insurance         float64 `yaml:"insurance" mapstructure:"insurance"`
}

// Total sums all fixed monthly components.
func (f FixedProductionCosts) Total() float64 {
	return f.Rent + f.Utilities + f.Depreciation + f.Certification +
		f.InternalLogistics + f.IT + f.WasteDisposal + f.Tax + f.Insurance
}

// ProductionParams parameterizes one month of production.
type ProductionParams struct {
	// TargetBoxes is the production volume for the month.
	TargetBoxes float64 `yaml:"targetBoxes" mapstructure:"targetBoxes"`
	// EnergyPerBox is the energy drawn per box in kWh.
	EnergyPerBox float64 `yaml:"energyPerBox" mapstructure:"energyPerBox"`
	// MaintenancePerBox is the per-box equipment maintenance cost.
	MaintenancePerBox float64 `yaml:"maintenancePerBox" mapstructure:"maintenancePerBox"`
	// Fixed holds the nine fixed monthly cost components.
	Fixed FixedProductionCosts `yaml:"fixed" mapstructure:"fixed"`
	// EnergyPriceMean and EnergyPriceStd parameterize the sampled
	// energy price distribution.
	EnergyPriceMean float64 `yaml:"energyPriceMean" mapstructure:"energyPriceMean"`
	EnergyPriceStd  float64 `yaml:"energyPriceStd" mapstructure:"energyPriceStd"`
	// EquipmentFailureRate is the per-month probability of an equipment
	// failure; FailureExtraCost is the flat cost added when it occurs.
	EquipmentFailureRate float64 `yaml:"equipmentFailureRate" mapstructure:"equipmentFailureRate"`
	FailureExtraCost     float64 `yaml:"failureExtraCost" mapstructure:"failureExtraCost"`
	// ProductValue is the per-box value used when pricing finished
	// goods held in storage.
	ProductValue float64 `yaml:"productValue" mapstructure:"productValue"`
	// Trials is the Monte Carlo trial count.
	Trials int `yaml:"trials" mapstructure:"trials"`
}

// Validate checks the parameter set before any simulation runs.
func (p ProductionParams) Validate() error {
	if err := validation.TrialCount(p.Trials); err != nil {
		return fmt.Errorf("production: %w", err)
	}
	if err := validation.NonNegative("energy per box", p.EnergyPerBox); err != nil {
		return fmt.Errorf("production: %w", err)
	}
	if err := validation.NonNegative("maintenance per box", p.MaintenancePerBox); err != nil {
		return fmt.Errorf("production: %w", err)
	}
	if err := validation.NonNegative("energy price std", p.EnergyPriceStd); err != nil {
		return fmt.Errorf("production: %w", err)
	}
	if err := validation.Probability("equipment failure rate", p.EquipmentFailureRate); err != nil {
		return fmt.Errorf("production: %w", err)
	}
	return nil
}

// ProductionEstimate is the result of one production cost simulation.
type ProductionEstimate struct {
	// ExpectedCost is the mean cost across trials.
	ExpectedCost float64
	// MinCost and MaxCost are the trial extremes.
	MinCost float64
	MaxCost float64
	// FailureRisk is the configured equipment failure probability
	// expressed as a percentage. It is echoed from the input rather
	// than measured from the trials, unlike the empirically derived
	// risk figures of the other models.
	FailureRisk float64
	// Breakdown itemizes the cost by category. The energy line uses the
	// mean energy price, not the trial-averaged price.
	Breakdown map[string]float64
}

// EstimateProductionCosts runs the Monte Carlo production simulation.
// Each trial samples an energy price and rolls the equipment failure
// event; fixed costs enter every trial unchanged.
func EstimateProductionCosts(p ProductionParams, src *montecarlo.Source) (ProductionEstimate, error) {
	if err := p.Validate(); err != nil {
		return ProductionEstimate{}, err
	}

	fixed := p.Fixed.Total()
	maintenance := p.MaintenancePerBox * p.TargetBoxes

	totals := make([]float64, p.Trials)
	for i := range totals {
		energyPrice := src.Normal(p.EnergyPriceMean, p.EnergyPriceStd)
		total := p.EnergyPerBox*p.TargetBoxes*energyPrice + maintenance + fixed
		if src.Event(p.EquipmentFailureRate) {
			total += p.FailureExtraCost
		}
		totals[i] = total
	}

	breakdown := map[string]float64{
		"energy":        p.EnergyPerBox * p.TargetBoxes * p.EnergyPriceMean,
		"maintenance":   maintenance,
		"rent":          p.Fixed.Rent,
		"utilities":     p.Fixed.Utilities,
		"depreciation":  p.Fixed.Depreciation,
		"certification": p.Fixed.Certification,
		"logistics":     p.Fixed.InternalLogistics,
		"it":            p.Fixed.IT,
		"waste":         p.Fixed.WasteDisposal,
		"tax":           p.Fixed.Tax,
		"insurance":     p.Fixed.Insurance,
		"failureRisk":   p.FailureExtraCost * p.EquipmentFailureRate,
	}

	return ProductionEstimate{
		ExpectedCost: stat.Mean(totals, nil),
		MinCost:      floats.Min(totals),
		MaxCost:      floats.Max(totals),
		FailureRisk:  100 * p.EquipmentFailureRate,
		Breakdown:    breakdown,
	}, nil
}
