package core

import (
	"math"
	"testing"
)

func TestInterval_Surrounds(t *testing.T) {
	interval := NewInterval(0.001, math.Inf(1))

	tests := []struct {
		name     string
		x        float64
		expected bool
	}{
		{"below", 0, false},
		{"at min", 0.001, false},
		{"inside", 5, true},
		{"huge", 1e300, true},
		{"infinity", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Surrounds(tt.x); got != tt.expected {
				t.Errorf("Surrounds(%g) = %t, expected %t", tt.x, got, tt.expected)
			}
		})
	}
}

func TestInterval_Clamp(t *testing.T) {
	interval := NewInterval(0, 0.999)

	tests := []struct {
		x, expected float64
	}{
		{-0.5, 0},
		{0.5, 0.5},
		{1.0, 0.999},
		{0.999, 0.999},
	}

	for _, tt := range tests {
		if got := interval.Clamp(tt.x); got != tt.expected {
			t.Errorf("Clamp(%g) = %g, expected %g", tt.x, got, tt.expected)
		}
	}
}
