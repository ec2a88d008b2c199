package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Round down",
			input:    1.234,
			expected: 1.23,
		},
		{
			name:     "Round up",
			input:    1.235,
			expected: 1.24,
		},
		{
			name:     "Already two decimals",
			input:    99.99,
			expected: 99.99,
		},
		{
			name:     "Negative value",
			input:    -2.345,
			expected: -2.34,
		},
		{
			name:     "Zero",
			input:    0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		min      float64
		max      float64
		expected float64
	}{
		{"Below minimum", -5, 0, 10, 0},
		{"Above maximum", 15, 0, 10, 10},
		{"Within range", 5, 0, 10, 5},
		{"At minimum", 0, 0, 10, 0},
		{"At maximum", 10, 0, 10, 10},
		{"NaN maximum never clips", 1e12, 0, math.NaN(), 1e12},
		{"NaN maximum still enforces minimum", -5, 0, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, tt.min, tt.max); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.val, tt.min, tt.max, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.005, 0.01) {
		t.Errorf("WithinTolerance(100.0, 100.005, 0.01) = false, expected true")
	}
	if WithinTolerance(100.0, 100.5, 0.01) {
		t.Errorf("WithinTolerance(100.0, 100.5, 0.01) = true, expected false")
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		capacity float64
		expected int
	}{
		{"Exact fit", 120, 12, 10},
		{"Partial unit rounds up", 350, 12, 30},
		{"Less than one unit", 5, 12, 1},
		{"Zero total", 0, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CeilDiv(tt.total, tt.capacity); got != tt.expected {
				t.Errorf("CeilDiv(%v, %v) = %d, expected %d", tt.total, tt.capacity, got, tt.expected)
			}
		})
	}
}
