// Package montecarlo provides the random variate source shared by all
// Monte Carlo cost models.
package montecarlo

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source supplies independent normal and uniform variates. A Source is
// seedable so simulations are reproducible for testing; it is not safe
// for concurrent use.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded with seed. Two Sources built from the
// same seed produce identical draw sequences.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Normal draws one variate from Normal(mean, std). A zero std returns
// mean without consuming randomness.
func (s *Source) Normal(mean, std float64) float64 {
	if std == 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: std, Src: s.rng}.Rand()
}

// Float64 draws one uniform variate in [0, 1).
func (s *Source) Float64() float64 {
	return distuv.Uniform{Min: 0, Max: 1, Src: s.rng}.Rand()
}

// Event reports whether an event with the given probability occurs on
// this draw.
func (s *Source) Event(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return s.Float64() < probability
}
