package planner

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/opscost/factory-planner/internal/costmodel"
	"github.com/opscost/factory-planner/pkg/constants"
	"github.com/opscost/factory-planner/pkg/mathutil"
	"github.com/opscost/factory-planner/pkg/solver"
)

// Request describes one planning run.
type Request struct {
	// Months is the planning horizon; TargetBoxes the monthly
	// production target.
	Months      int
	TargetBoxes float64
	// Inventory is the starting stock snapshot.
	Inventory Inventory
	// Models holds every cost model's parameter set.
	Models ModelParams
	// RiskTolerance is the acceptable total risk fraction before the
	// risk penalty engages.
	RiskTolerance float64
	// Budget caps the plan's total cost when positive; zero disables
	// the constraint.
	Budget float64
	// MaxIterations caps the minimizer; zero applies the default.
	MaxIterations int
	// Seed fixes the Monte Carlo random source so repeated runs
	// produce identical plans.
	Seed uint64
}

// Validate checks the request before any optimization runs.
func (r Request) Validate() error {
	if r.Months < 1 {
		return fmt.Errorf("planner: horizon must be at least 1 month, got %d", r.Months)
	}
	if r.TargetBoxes <= 0 {
		return fmt.Errorf("planner: target boxes must be positive, got %v", r.TargetBoxes)
	}
	if r.RiskTolerance < 0 || r.RiskTolerance > 1 {
		return fmt.Errorf("planner: risk tolerance must be within [0, 1], got %v", r.RiskTolerance)
	}
	if r.Budget < 0 {
		return fmt.Errorf("planner: budget cannot be negative, got %v", r.Budget)
	}
	return r.Models.Validate()
}

// Result is the optimized plan with its diagnostics. Converged mirrors
// the minimizer's success flag; when false the plan is the best point
// found and Message explains the failure.
type Result struct {
	// Production and Purchases are the optimized per-month quantities,
	// rounded to whole units.
	Production []int
	Purchases  []int
	TotalCost  float64
	Breakdown  CostBreakdown
	Risk       RiskMetrics
	Projection Projection
	Converged  bool
	Message    string
}

// Optimizer finds the cost-minimizing production and procurement plan
// for a Request.
type Optimizer struct {
	logger *zap.Logger
}

// NewOptimizer constructs an Optimizer. A nil logger disables logging.
func NewOptimizer(logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{logger: logger}
}

// Optimize minimizes total cost plus penalty terms over the 2xN
// decision vector (N months of production followed by N months of
// purchases). Non-convergence is reported through Result, not as an
// error; errors are reserved for invalid requests.
func (o *Optimizer) Optimize(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	agg, err := NewAggregator(req.Models, req.TargetBoxes, req.Seed, o.logger)
	if err != nil {
		return Result{}, err
	}

	months := req.Months
	evaluate := func(x []float64) (Evaluation, error) {
		return agg.Evaluate(x[:months], x[months:], req.Inventory)
	}

	objective := func(x []float64) float64 {
		eval, err := evaluate(x)
		if err != nil {
			return math.Inf(1)
		}
		deviation := 0.0
		for _, p := range x[:months] {
			d := p - req.TargetBoxes
			deviation += d * d
		}
		riskExcess := math.Max(0, eval.Risk.TotalRisk-req.RiskTolerance)
		return eval.TotalCost +
			constants.TargetDeviationWeight*deviation +
			constants.RiskToleranceWeight*riskExcess
	}

	// The bounds already pin every variable at zero; the explicit
	// constraint restates them so an infeasible best point is flagged.
	problemConstraints := []solver.Constraint{
		func(x []float64) float64 { return floats.Min(x) },
	}
	if req.Budget > 0 {
		problemConstraints = append(problemConstraints, func(x []float64) float64 {
			eval, err := evaluate(x)
			if err != nil {
				return math.Inf(-1)
			}
			return req.Budget - eval.TotalCost
		})
	}

	perBox := costmodel.TotalPerBox(req.Models.RawMaterial.Materials)
	initial := make([]float64, 2*months)
	bounds := make([]solver.Bound, 2*months)
	for i := 0; i < months; i++ {
		initial[i] = req.TargetBoxes
		initial[months+i] = req.TargetBoxes * perBox / float64(months)
	}
	for i := range bounds {
		bounds[i] = solver.NonNegative()
	}

	o.logger.Info("starting plan optimization",
		zap.String("op", "planner.Optimizer.Optimize"),
		zap.Int("months", months),
		zap.Float64("targetBoxes", req.TargetBoxes),
		zap.Float64("budget", req.Budget),
		zap.Float64("riskTolerance", req.RiskTolerance),
	)

	solution, err := solver.Minimize(solver.Problem{
		Objective:     objective,
		Initial:       initial,
		Bounds:        bounds,
		Constraints:   problemConstraints,
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		return Result{}, fmt.Errorf("planner: %w", err)
	}

	production := solution.X[:months]
	purchases := solution.X[months:]
	final, err := evaluate(solution.X)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Production: roundPlan(production),
		Purchases:  roundPlan(purchases),
		TotalCost:  mathutil.Round(final.TotalCost),
		Breakdown:  final.Breakdown,
		Risk:       final.Risk,
		Projection: ProjectInventory(production, purchases, req.Inventory, req.Models.RawMaterial.Materials),
		Converged:  solution.Converged,
		Message:    solution.Message,
	}

	o.logger.Info("plan optimization finished",
		zap.String("op", "planner.Optimizer.Optimize"),
		zap.Bool("converged", result.Converged),
		zap.String("message", result.Message),
		zap.Float64("totalCost", result.TotalCost),
		zap.Float64("totalRisk", result.Risk.TotalRisk),
	)

	return result, nil
}

func roundPlan(plan []float64) []int {
	rounded := make([]int, len(plan))
	for i, v := range plan {
		rounded[i] = int(math.Round(v))
	}
	return rounded
}
