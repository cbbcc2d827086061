package activity

import "math"

// Conversion constants shared by every view of the step history.
const (
	CaloriesPerStep  = 0.04
	StepLengthMeters = 0.762
	StepsPerMinute   = 100.0
)

// Calories derives kcal burned from a step count.
func Calories(steps int) float64 {
	return float64(steps) * CaloriesPerStep
}

// DistanceKm derives kilometers walked from a step count.
func DistanceKm(steps int) float64 {
	return float64(steps) * StepLengthMeters / 1000.0
}

// ActiveMinutes derives minutes of activity from a step count.
func ActiveMinutes(steps int) float64 {
	return float64(steps) / StepsPerMinute
}

// ClampSteps normalizes a raw observation: negative readings are never valid
// and fractional sensor values are rounded.
func ClampSteps(raw float64) int {
	if raw <= 0 || math.IsNaN(raw) {
		return 0
	}
	return int(math.Round(raw))
}

// MetricConverter maps a step count to a single display metric. Screens pick
// the converter for the metric they chart instead of duplicating the math.
type MetricConverter interface {
	Name() string
	FromSteps(steps int) float64
}

type stepsMetric struct{}

func (stepsMetric) Name() string                { return "steps" }
func (stepsMetric) FromSteps(steps int) float64 { return float64(steps) }

type caloriesMetric struct{}

func (caloriesMetric) Name() string                { return "calories" }
func (caloriesMetric) FromSteps(steps int) float64 { return Calories(steps) }

type distanceMetric struct{}

func (distanceMetric) Name() string                { return "distance" }
func (distanceMetric) FromSteps(steps int) float64 { return DistanceKm(steps) }

type minutesMetric struct{}

func (minutesMetric) Name() string                { return "minutes" }
func (minutesMetric) FromSteps(steps int) float64 { return ActiveMinutes(steps) }

var metricConverters = map[string]MetricConverter{
	"steps":    stepsMetric{},
	"calories": caloriesMetric{},
	"distance": distanceMetric{},
	"minutes":  minutesMetric{},
}

// ConverterFor returns the converter for a metric name, defaulting to steps
// for unknown names.
func ConverterFor(metric string) MetricConverter {
	if c, ok := metricConverters[metric]; ok {
		return c
	}
	return stepsMetric{}
}
