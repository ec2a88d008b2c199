// Package planner composes the monthly cost models into a
// horizon-wide total-cost function and drives the constrained
// minimization that produces a production and procurement plan.
package planner

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/opscost/factory-planner/internal/costmodel"
	"github.com/opscost/factory-planner/pkg/montecarlo"
)

const (
	// assumedSalesShare is the fraction of each month's production
	// assumed sold the same month; the remainder accumulates as
	// finished goods.
	assumedSalesShare = 0.9

	// kgPerCubicMeter converts raw material mass into shipping volume;
	// goodsVolumePerBox is the shipping volume of one finished box.
	kgPerCubicMeter   = 1000.0
	goodsVolumePerBox = 0.01
)

// Inventory is a snapshot of on-hand stock. It is a value type; the
// aggregator works on copies so a caller's snapshot is never mutated
// and every candidate plan is scored from the same starting state.
type Inventory struct {
	// RawMaterial is on-hand raw material mass.
	RawMaterial float64 `yaml:"rawMaterial" mapstructure:"rawMaterial"`
	// Goods is on-hand finished boxes.
	Goods float64 `yaml:"goods" mapstructure:"goods"`
}

// ModelParams bundles the per-model parameter sets threaded through
// every evaluation. The monthly target fields inside are overwritten
// by the aggregator with that month's decision values.
type ModelParams struct {
	RawMaterial costmodel.RawMaterialParams `yaml:"rawMaterial" mapstructure:"rawMaterial"`
	Production  costmodel.ProductionParams  `yaml:"production" mapstructure:"production"`
	Storage     costmodel.StorageParams     `yaml:"storage" mapstructure:"storage"`
	Logistics   costmodel.LogisticsParams   `yaml:"logistics" mapstructure:"logistics"`
	Labor       costmodel.LaborParams       `yaml:"labor" mapstructure:"labor"`
}

// Validate checks every bundled parameter set.
func (p ModelParams) Validate() error {
	if err := p.RawMaterial.Validate(); err != nil {
		return err
	}
	if err := p.Production.Validate(); err != nil {
		return err
	}
	if err := p.Storage.Validate(); err != nil {
		return err
	}
	if err := p.Logistics.Validate(); err != nil {
		return err
	}
	return p.Labor.Validate()
}

// CostBreakdown itemizes a horizon total by model category.
type CostBreakdown struct {
	RawMaterials float64
	Production   float64
	Storage      float64
	Logistics    float64
	Labor        float64
}

// Total sums all categories.
func (b CostBreakdown) Total() float64 {
	return b.RawMaterials + b.Production + b.Storage + b.Logistics + b.Labor
}

// RiskMetrics reports per-month-averaged risk fractions in [0, 1].
type RiskMetrics struct {
	// SupplyRisk is the averaged probability of sourcing costs
	// exceeding the volatility-free budget.
	SupplyRisk float64
	// ProductionRisk is the averaged equipment failure probability.
	ProductionRisk float64
	// DemandRisk is the relative shortfall of cumulative planned
	// production below the horizon target, zero when the plan meets or
	// exceeds it.
	DemandRisk float64
	// TotalRisk is the unweighted mean of the other three.
	TotalRisk float64
}

// Evaluation is the result of scoring one candidate plan.
type Evaluation struct {
	TotalCost float64
	Breakdown CostBreakdown
	Risk      RiskMetrics
	// FinalInventory is the working inventory after the last month.
	// Unlike the reporting projection it is not floored at zero, so a
	// plan that overdraws stock shows up as a negative level here.
	FinalInventory Inventory
}

// Aggregator scores candidate plans by running every cost model once
// per month and accumulating the point estimates. It recreates its
// random source from a fixed seed on every evaluation, so the same
// plan always scores the same and the optimizer sees a deterministic
// objective.
type Aggregator struct {
	params      ModelParams
	targetBoxes float64
	seed        uint64
	logger      *zap.Logger
}

// NewAggregator constructs an Aggregator. A nil logger disables
// logging.
func NewAggregator(params ModelParams, targetBoxes float64, seed uint64, logger *zap.Logger) (*Aggregator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		params:      params,
		targetBoxes: targetBoxes,
		seed:        seed,
		logger:      logger,
	}, nil
}

// Evaluate scores a plan of len(production) months. The production and
// purchases slices must have equal length; inventory is the starting
// snapshot and is copied, never mutated.
func (a *Aggregator) Evaluate(production, purchases []float64, inventory Inventory) (Evaluation, error) {
	months := len(production)
	if months == 0 {
		return Evaluation{}, fmt.Errorf("planner: plan cannot be empty")
	}
	if len(purchases) != months {
		return Evaluation{}, fmt.Errorf("planner: got %d purchase months for %d production months", len(purchases), months)
	}

	src := montecarlo.New(a.seed)
	perBox := costmodel.TotalPerBox(a.params.RawMaterial.Materials)
	referencePrice := a.params.RawMaterial.Materials[0].BasePrice

	var breakdown CostBreakdown
	var risk RiskMetrics
	working := inventory
	fmonths := float64(months)

	for month := 0; month < months; month++ {
		rawParams := a.params.RawMaterial
		rawParams.TargetBoxes = purchases[month]
		rawEst, err := costmodel.EstimateRawMaterialCosts(rawParams, src)
		if err != nil {
			return Evaluation{}, fmt.Errorf("planner: month %d: %w", month+1, err)
		}
		breakdown.RawMaterials += rawEst.ExpectedCost
		risk.SupplyRisk += rawEst.RiskAboveBudget / 100 / fmonths

		prodParams := a.params.Production
		prodParams.TargetBoxes = production[month]
		prodEst, err := costmodel.EstimateProductionCosts(prodParams, src)
		if err != nil {
			return Evaluation{}, fmt.Errorf("planner: month %d: %w", month+1, err)
		}
		breakdown.Production += prodEst.ExpectedCost
		risk.ProductionRisk += prodEst.FailureRisk / 100 / fmonths

		// An overdrawn working inventory would price the warehoused
		// stock below zero; floor the valuation instead.
		storageParams := a.params.Storage
		storageParams.InventoryValue = math.Max(0, working.RawMaterial*referencePrice+
			working.Goods*a.params.Production.ProductValue)
		storageEst, err := costmodel.EstimateStorageCosts(storageParams, src)
		if err != nil {
			return Evaluation{}, fmt.Errorf("planner: month %d: %w", month+1, err)
		}
		breakdown.Storage += storageEst.ExpectedCost

		logisticsParams := a.params.Logistics
		logisticsParams.RawMaterialVolume = purchases[month] * perBox / kgPerCubicMeter
		logisticsParams.FinishedGoodsVolume = production[month] * goodsVolumePerBox
		logisticsEst, err := costmodel.EstimateLogisticsCosts(logisticsParams, src)
		if err != nil {
			return Evaluation{}, fmt.Errorf("planner: month %d: %w", month+1, err)
		}
		breakdown.Logistics += logisticsEst.ExpectedCost

		working.RawMaterial += purchases[month] - production[month]*perBox
		working.Goods += production[month] * (1 - assumedSalesShare)
	}

	laborParams := a.params.Labor
	laborParams.TargetBoxes = stat.Mean(production, nil)
	laborEst, err := costmodel.CompareLaborAutomation(laborParams)
	if err != nil {
		return Evaluation{}, fmt.Errorf("planner: %w", err)
	}
	chosenNPV := laborEst.LaborNPV
	if laborEst.OptimalSolution == costmodel.DecisionAutomation {
		chosenNPV = laborEst.AutomationNPV
	}
	breakdown.Labor = chosenNPV / fmonths

	horizonTarget := a.targetBoxes * fmonths
	if horizonTarget > 0 {
		planned := 0.0
		for _, p := range production {
			planned += p
		}
		risk.DemandRisk = math.Max(0, (horizonTarget-planned)/horizonTarget)
	}
	risk.TotalRisk = (risk.SupplyRisk + risk.ProductionRisk + risk.DemandRisk) / 3

	a.logger.Debug("evaluated candidate plan",
		zap.String("op", "planner.Aggregator.Evaluate"),
		zap.Int("months", months),
		zap.Float64("totalCost", breakdown.Total()),
		zap.Float64("totalRisk", risk.TotalRisk),
	)

	return Evaluation{
		TotalCost:      breakdown.Total(),
		Breakdown:      breakdown,
		Risk:           risk,
		FinalInventory: working,
	}, nil
}
