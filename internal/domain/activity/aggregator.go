package activity

import (
	"fmt"
	"time"
)

// WindowKind selects the calendar range a window covers.
type WindowKind string

const (
	WindowDay   WindowKind = "day"
	WindowWeek  WindowKind = "week"
	WindowMonth WindowKind = "month"
)

// ParseWindowKind validates a window kind from the API surface.
func ParseWindowKind(s string) (WindowKind, error) {
	switch WindowKind(s) {
	case WindowDay, WindowWeek, WindowMonth:
		return WindowKind(s), nil
	}
	return "", fmt.Errorf("unknown window kind %q", s)
}

// WindowDayValue is one slot of an aggregate window: the stored steps plus
// every derived metric for that day.
type WindowDayValue struct {
	DayKey   string  `json:"day_key"`
	Steps    int     `json:"steps"`
	Calories float64 `json:"calories"`
	Distance float64 `json:"distance_km"`
	Minutes  float64 `json:"active_minutes"`
}

// AggregateWindow is a contiguous run of day values aligned to a window
// boundary. Length is always 1, 7, or days-in-month; days with no record
// hold zeros. Windows are derived on every query, never persisted.
type AggregateWindow struct {
	Kind     WindowKind       `json:"kind"`
	StartKey string           `json:"start_key"`
	EndKey   string           `json:"end_key"`
	Days     []WindowDayValue `json:"days"`
	Totals   WindowDayValue   `json:"totals"`
}

// ChartBucket is one bar of the compressed month chart.
type ChartBucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// monthChunkSize groups the per-day month series into ~6 bars.
const monthChunkSize = 5

// stepSource resolves a day key to a step count. The aggregator does not
// care whether the value came from storage or a live pedometer override.
type stepSource func(dayKey string) int

// windowBounds computes the aligned start day and length for a window.
func windowBounds(anchor time.Time, kind WindowKind, weekStart int) (time.Time, int) {
	switch kind {
	case WindowWeek:
		return StartOfWeek(anchor, weekStart), 7
	case WindowMonth:
		return StartOfMonth(anchor), DaysInMonth(anchor)
	default:
		return Midnight(anchor), 1
	}
}

// buildWindow assembles the full derived window from a step source.
func buildWindow(anchor time.Time, kind WindowKind, weekStart int, source stepSource) AggregateWindow {
	start, length := windowBounds(anchor, kind, weekStart)

	window := AggregateWindow{
		Kind:     kind,
		StartKey: DateKey(start),
		EndKey:   DateKey(AddDays(start, length-1)),
		Days:     make([]WindowDayValue, length),
	}

	for i := 0; i < length; i++ {
		key := DateKey(AddDays(start, i))
		steps := source(key)
		window.Days[i] = WindowDayValue{
			DayKey:   key,
			Steps:    steps,
			Calories: Calories(steps),
			Distance: DistanceKm(steps),
			Minutes:  ActiveMinutes(steps),
		}
		window.Totals.Steps += steps
	}

	window.Totals.DayKey = window.StartKey
	window.Totals.Calories = Calories(window.Totals.Steps)
	window.Totals.Distance = DistanceKm(window.Totals.Steps)
	window.Totals.Minutes = ActiveMinutes(window.Totals.Steps)
	return window
}

// IsCurrentWindow reports whether the anchor's window is the one containing
// now. The client uses it to block paging into future windows.
func IsCurrentWindow(anchor time.Time, kind WindowKind, weekStart int, now time.Time) bool {
	anchorStart, _ := windowBounds(anchor, kind, weekStart)
	nowStart, _ := windowBounds(now, kind, weekStart)
	return anchorStart.Equal(nowStart)
}

// ChunkMonth compresses a month window into fixed-size buckets for the bar
// chart. Each bucket averages the chosen metric over days that had activity
// and is labeled by the day-of-month of its last day; all-zero buckets
// render as zero.
func ChunkMonth(window AggregateWindow, converter MetricConverter) []ChartBucket {
	var buckets []ChartBucket
	for start := 0; start < len(window.Days); start += monthChunkSize {
		end := start + monthChunkSize
		if end > len(window.Days) {
			end = len(window.Days)
		}
		chunk := window.Days[start:end]

		sum := 0.0
		active := 0
		for _, day := range chunk {
			if day.Steps > 0 {
				sum += converter.FromSteps(day.Steps)
				active++
			}
		}

		value := 0.0
		if active > 0 {
			value = sum / float64(active)
		}

		last, _ := ParseDateKey(chunk[len(chunk)-1].DayKey)
		buckets = append(buckets, ChartBucket{
			Label: fmt.Sprintf("%d", last.Day()),
			Value: value,
		})
	}
	return buckets
}
