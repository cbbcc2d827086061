package activity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedMetrics(t *testing.T) {
	tests := []struct {
		name     string
		steps    int
		calories float64
		distance float64
		minutes  float64
	}{
		{
			name:     "Zero steps yield zero everywhere",
			steps:    0,
			calories: 0,
			distance: 0,
			minutes:  0,
		},
		{
			name:     "Typical day",
			steps:    5000,
			calories: 200,
			distance: 3.81,
			minutes:  50,
		},
		{
			name:     "Single step",
			steps:    1,
			calories: 0.04,
			distance: 0.000762,
			minutes:  0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.calories, Calories(tt.steps), 1e-9)
			assert.InDelta(t, tt.distance, DistanceKm(tt.steps), 1e-9)
			assert.InDelta(t, tt.minutes, ActiveMinutes(tt.steps), 1e-9)
		})
	}
}

func TestClampSteps(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		expected int
	}{
		{name: "Negative clamps to zero", raw: -250, expected: 0},
		{name: "Zero stays zero", raw: 0, expected: 0},
		{name: "NaN clamps to zero", raw: math.NaN(), expected: 0},
		{name: "Fraction rounds", raw: 1234.6, expected: 1235},
		{name: "Whole number passes through", raw: 8000, expected: 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampSteps(tt.raw))
		})
	}
}

func TestConverterFor(t *testing.T) {
	assert.Equal(t, "calories", ConverterFor("calories").Name())
	assert.InDelta(t, 200.0, ConverterFor("calories").FromSteps(5000), 1e-9)
	assert.InDelta(t, 3.81, ConverterFor("distance").FromSteps(5000), 1e-9)

	// Unknown metrics fall back to raw steps.
	assert.Equal(t, "steps", ConverterFor("heartrate").Name())
	assert.InDelta(t, 5000.0, ConverterFor("heartrate").FromSteps(5000), 1e-9)
}
