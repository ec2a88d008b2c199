package costmodel

import (
	"fmt"
	"math"

	"github.com/opscost/factory-planner/pkg/constants"
	"github.com/opscost/factory-planner/pkg/validation"
)

// LaborDecision identifies the staffing option with the lower NPV.
type LaborDecision string

const (
	// DecisionLabor keeps human workers.
	DecisionLabor LaborDecision = "labor"
	// DecisionAutomation replaces workers with robots.
	DecisionAutomation LaborDecision = "automation"
)

// LaborParams parameterizes the labor-versus-automation comparison.
type LaborParams struct {
	// TargetBoxes is the monthly production volume to staff for.
	TargetBoxes float64 `yaml:"targetBoxes" mapstructure:"targetBoxes"`

	// Worker economics.
	WorkerProductivity float64 `yaml:"workerProductivity" mapstructure:"workerProductivity"` // boxes per worker per month
	WorkerSalary       float64 `yaml:"workerSalary" mapstructure:"workerSalary"`             // per month
	WorkerTaxRate      float64 `yaml:"workerTaxRate" mapstructure:"workerTaxRate"`           // payroll tax fraction
	WorkerTrainingCost float64 `yaml:"workerTrainingCost" mapstructure:"workerTrainingCost"` // per worker per year

	// Robot economics.
	RobotProductivity   float64 `yaml:"robotProductivity" mapstructure:"robotProductivity"` // boxes per robot per month
	RobotCost           float64 `yaml:"robotCost" mapstructure:"robotCost"`                 // one-time per robot
	RobotLifespanMonths int     `yaml:"robotLifespanMonths" mapstructure:"robotLifespanMonths"`
	RobotMaintenance    float64 `yaml:"robotMaintenance" mapstructure:"robotMaintenance"`   // per robot per month
	RobotSoftwareCost   float64 `yaml:"robotSoftwareCost" mapstructure:"robotSoftwareCost"` // per month for the fleet

	// DiscountRate is annual; monthly discounting uses rate/12.
	DiscountRate float64 `yaml:"discountRate" mapstructure:"discountRate"`
	// Years is the planning horizon. Zero is legal and yields no
	// discounted streams beyond the one-time investment.
	Years int `yaml:"years" mapstructure:"years"`
	// RiskAdjustment inflates the automation NPV to price in adoption
	// risk.
	RiskAdjustment float64 `yaml:"riskAdjustment" mapstructure:"riskAdjustment"`
}

// Validate checks the parameter set before the comparison runs.
func (p LaborParams) Validate() error {
	if err := validation.Positive("worker productivity", p.WorkerProductivity); err != nil {
		return fmt.Errorf("labor: %w", err)
	}
	if err := validation.Positive("robot productivity", p.RobotProductivity); err != nil {
		return fmt.Errorf("labor: %w", err)
	}
	if p.RobotLifespanMonths < 1 {
		return fmt.Errorf("labor: robot lifespan must be at least 1 month, got %d", p.RobotLifespanMonths)
	}
	if p.Years < 0 {
		return fmt.Errorf("labor: planning horizon cannot be negative, got %d years", p.Years)
	}
	if err := validation.NonNegative("discount rate", p.DiscountRate); err != nil {
		return fmt.Errorf("labor: %w", err)
	}
	if err := validation.NonNegative("risk adjustment", p.RiskAdjustment); err != nil {
		return fmt.Errorf("labor: %w", err)
	}
	return nil
}

// LaborDetail itemizes the human-labor option.
type LaborDetail struct {
	Workers     int
	MonthlyCost float64
	NPV         float64
}

// AutomationDetail itemizes the automation option.
type AutomationDetail struct {
	Robots            int
	InitialInvestment float64
	MonthlyCost       float64
	NPV               float64
}

// LaborEstimate is the result of the labor-versus-automation
// comparison.
type LaborEstimate struct {
	// OptimalSolution is the option with the lower NPV.
	OptimalSolution LaborDecision
	// LaborNPV and AutomationNPV are the discounted total costs of each
	// option over the horizon; the automation figure includes the risk
	// adjustment.
	LaborNPV      float64
	AutomationNPV float64
	// BreakEvenMonth is the first month at which cumulative discounted
	// savings recover the initial robot investment. It is only computed
	// when automation wins; BreakEvenReached reports whether it was
	// found within the horizon.
	BreakEvenMonth   int
	BreakEvenReached bool
	Labor            LaborDetail
	Automation       AutomationDetail
}

// CompareLaborAutomation compares the NPV of staying with human labor
// against automating, both discounted monthly over the planning
// horizon. The calculation is fully deterministic.
func CompareLaborAutomation(p LaborParams) (LaborEstimate, error) {
	if err := p.Validate(); err != nil {
		return LaborEstimate{}, err
	}

	months := p.Years * constants.MonthsPerYear
	monthlyRate := p.DiscountRate / constants.MonthsPerYear

	workers := int(math.Ceil(p.TargetBoxes / p.WorkerProductivity))
	monthlyLabor := float64(workers) * p.WorkerSalary * (1 + p.WorkerTaxRate)
	monthlyTraining := p.WorkerTrainingCost * float64(workers) / constants.MonthsPerYear

	laborNPV := 0.0
	for month := 1; month <= months; month++ {
		laborNPV += (monthlyLabor + monthlyTraining) / math.Pow(1+monthlyRate, float64(month))
	}

	robots := int(math.Ceil(p.TargetBoxes / p.RobotProductivity))
	initialInvestment := float64(robots) * p.RobotCost
	monthlyRobot := p.RobotMaintenance*float64(robots) + p.RobotSoftwareCost +
		initialInvestment/float64(p.RobotLifespanMonths)

	automationNPV := initialInvestment
	for month := 1; month <= months; month++ {
		automationNPV += monthlyRobot / math.Pow(1+monthlyRate, float64(month))
	}
	automationNPV *= 1 + p.RiskAdjustment

	estimate := LaborEstimate{
		OptimalSolution: DecisionLabor,
		LaborNPV:        laborNPV,
		AutomationNPV:   automationNPV,
		Labor: LaborDetail{
			Workers:     workers,
			MonthlyCost: monthlyLabor + monthlyTraining,
			NPV:         laborNPV,
		},
		Automation: AutomationDetail{
			Robots:            robots,
			InitialInvestment: initialInvestment,
			MonthlyCost:       monthlyRobot,
			NPV:               automationNPV,
		},
	}

	if automationNPV <= laborNPV {
		estimate.OptimalSolution = DecisionAutomation

		cumulativeSavings := 0.0
		monthlySavings := monthlyLabor - monthlyRobot
		for month := 1; month <= months; month++ {
			cumulativeSavings += monthlySavings / math.Pow(1+monthlyRate, float64(month))
			if cumulativeSavings >= initialInvestment {
				estimate.BreakEvenMonth = month
				estimate.BreakEvenReached = true
				break
			}
		}
	}

	return estimate, nil
}
