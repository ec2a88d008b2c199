// Package solver provides a bounded, inequality-constrained nonlinear
// minimizer. Constraints and bounds are folded into an exterior penalty
// around the objective, which is then minimized with gonum's
// Nelder-Mead implementation.
package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/opscost/factory-planner/pkg/mathutil"
)

// Objective is the function being minimized.
type Objective func(x []float64) float64

// Constraint expresses an inequality g(x) >= 0. Negative return values
// mark x as infeasible.
type Constraint func(x []float64) float64

// Bound restricts one decision variable to [Min, Max]. A NaN Max leaves
// the variable unbounded above.
type Bound struct {
	Min float64
	Max float64
}

// NonNegative is the bound [0, +inf).
func NonNegative() Bound {
	return Bound{Min: 0, Max: math.NaN()}
}

// Problem describes one minimization.
type Problem struct {
	Objective     Objective
	Initial       []float64
	Bounds        []Bound
	Constraints   []Constraint
	MaxIterations int
	Tolerance     float64
}

// Result reports the outcome of a minimization. When Converged is
// false, X still holds the best point found.
type Result struct {
	X         []float64
	Value     float64
	Converged bool
	Message   string
}

const (
	defaultMaxIterations = 1000
	defaultTolerance     = 1e-4

	boundPenaltyWeight      = 1e9
	constraintPenaltyWeight = 1e7

	// stallIterations is how many iterations without improvement the
	// converger waits before declaring convergence
	stallIterations = 30
)

// Minimize searches for the feasible point with the lowest objective
// value. It returns an error only for malformed problems; running out
// of iterations or failing to satisfy the constraints is reported via
// Result.Converged and Result.Message.
func Minimize(p Problem) (Result, error) {
	if p.Objective == nil {
		return Result{}, fmt.Errorf("solver: objective function cannot be nil")
	}
	if len(p.Initial) == 0 {
		return Result{}, fmt.Errorf("solver: initial point cannot be empty")
	}
	if len(p.Bounds) != 0 && len(p.Bounds) != len(p.Initial) {
		return Result{}, fmt.Errorf("solver: got %d bounds for %d variables", len(p.Bounds), len(p.Initial))
	}

	maxIterations := p.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	tolerance := p.Tolerance
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}

	penalized := func(x []float64) float64 {
		projected, penalty := project(x, p.Bounds)
		for _, g := range p.Constraints {
			if v := g(projected); v < 0 {
				penalty += constraintPenaltyWeight * v * v
			}
		}
		return p.Objective(projected) + penalty
	}

	problem := optimize.Problem{Func: penalized}
	settings := &optimize.Settings{
		MajorIterations: maxIterations,
		Converger: &optimize.FunctionConverge{
			Relative:   tolerance,
			Absolute:   tolerance,
			Iterations: stallIterations,
		},
	}

	initial := append([]float64(nil), p.Initial...)
	res, optErr := optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	if res == nil {
		return Result{}, fmt.Errorf("solver: minimization produced no result: %v", optErr)
	}

	best, _ := project(res.X, p.Bounds)
	result := Result{
		X:     best,
		Value: p.Objective(best),
	}

	switch {
	case optErr != nil:
		result.Message = fmt.Sprintf("minimization failed: %v", optErr)
	case res.Status == optimize.IterationLimit || res.Status == optimize.NotTerminated || res.Status == optimize.Failure:
		result.Message = fmt.Sprintf("did not converge: %v", res.Status)
	case violatesConstraints(best, p.Constraints, tolerance):
		result.Message = "converged to an infeasible point"
	default:
		result.Converged = true
		result.Message = res.Status.String()
	}

	return result, nil
}

// project clamps x into the bounds and returns the clamped copy along
// with a quadratic penalty for the violation.
func project(x []float64, bounds []Bound) ([]float64, float64) {
	projected := append([]float64(nil), x...)
	penalty := 0.0
	for i := range projected {
		if i >= len(bounds) {
			break
		}
		b := bounds[i]
		clamped := mathutil.Clamp(projected[i], b.Min, b.Max)
		if clamped != projected[i] {
			d := clamped - projected[i]
			penalty += boundPenaltyWeight * d * d
			projected[i] = clamped
		}
	}
	return projected, penalty
}

func violatesConstraints(x []float64, constraints []Constraint, tolerance float64) bool {
	for _, g := range constraints {
		if g(x) < -tolerance {
			return true
		}
	}
	return false
}
