package solver

import (
	"math"
	"strings"
	"testing"
)

func TestMinimizeQuadratic(t *testing.T) {
	p := Problem{
		Objective: func(x []float64) float64 {
			return (x[0]-3)*(x[0]-3) + (x[1]+1)*(x[1]+1)
		},
		Initial: []float64{10, 10},
	}

	res, err := Minimize(p)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if !res.Converged {
		t.Fatalf("Minimize() did not converge: %s", res.Message)
	}
	if math.Abs(res.X[0]-3) > 0.05 || math.Abs(res.X[1]+1) > 0.05 {
		t.Errorf("Minimize() = %v, expected near [3, -1]", res.X)
	}
}

func TestMinimizeRespectsBounds(t *testing.T) {
	// Unconstrained minimum at x = -2 lies below the lower bound.
	p := Problem{
		Objective: func(x []float64) float64 {
			return (x[0] + 2) * (x[0] + 2)
		},
		Initial: []float64{5},
		Bounds:  []Bound{NonNegative()},
	}

	res, err := Minimize(p)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if res.X[0] < 0 {
		t.Errorf("Minimize() = %v, expected non-negative solution", res.X[0])
	}
	if res.X[0] > 0.1 {
		t.Errorf("Minimize() = %v, expected solution near the bound at 0", res.X[0])
	}
}

func TestMinimizeInequalityConstraint(t *testing.T) {
	// Minimize x subject to x >= 2.
	p := Problem{
		Objective: func(x []float64) float64 {
			return x[0]
		},
		Initial: []float64{10},
		Bounds:  []Bound{NonNegative()},
		Constraints: []Constraint{
			func(x []float64) float64 { return x[0] - 2 },
		},
		Tolerance: 1e-3,
	}

	res, err := Minimize(p)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if res.X[0] < 1.9 || res.X[0] > 2.5 {
		t.Errorf("Minimize() = %v, expected near the constraint boundary at 2", res.X[0])
	}
}

func TestMinimizeMultivariateWithBounds(t *testing.T) {
	// A bowl centered at (4, 5) with all variables bounded below at 0.
	p := Problem{
		Objective: func(x []float64) float64 {
			return (x[0]-4)*(x[0]-4) + (x[1]-5)*(x[1]-5)
		},
		Initial: []float64{1, 1},
		Bounds:  []Bound{NonNegative(), NonNegative()},
	}

	res, err := Minimize(p)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if math.Abs(res.X[0]-4) > 0.05 || math.Abs(res.X[1]-5) > 0.05 {
		t.Errorf("Minimize() = %v, expected near [4, 5]", res.X)
	}
}

func TestMinimizeUnsatisfiableConstraint(t *testing.T) {
	// x >= 0 by bound while the constraint demands x <= -1; no feasible
	// point exists, so the best point must be reported as non-converged.
	p := Problem{
		Objective: func(x []float64) float64 {
			return x[0]
		},
		Initial: []float64{5},
		Bounds:  []Bound{NonNegative()},
		Constraints: []Constraint{
			func(x []float64) float64 { return -1 - x[0] },
		},
	}

	res, err := Minimize(p)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if res.Converged {
		t.Error("Converged = true, expected failure on an unsatisfiable constraint")
	}
	if !strings.Contains(res.Message, "infeasible") {
		t.Errorf("Message = %q, expected an infeasible-point diagnostic", res.Message)
	}
	if len(res.X) != 1 || res.X[0] < 0 {
		t.Errorf("X = %v, expected the best bounded point to still be returned", res.X)
	}
}

func TestMinimizeInvalidProblems(t *testing.T) {
	tests := []struct {
		name string
		p    Problem
	}{
		{
			name: "Nil objective",
			p:    Problem{Initial: []float64{1}},
		},
		{
			name: "Empty initial point",
			p: Problem{
				Objective: func(x []float64) float64 { return 0 },
			},
		},
		{
			name: "Bound count mismatch",
			p: Problem{
				Objective: func(x []float64) float64 { return 0 },
				Initial:   []float64{1, 2},
				Bounds:    []Bound{NonNegative()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Minimize(tt.p); err == nil {
				t.Errorf("Minimize() expected error, got nil")
			}
		})
	}
}
