package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptySource(string) int { return 0 }

func mapSource(steps map[string]int) stepSource {
	return func(dayKey string) int { return steps[dayKey] }
}

func TestBuildWindowEmptyWeek(t *testing.T) {
	// 2026-03-18 is a Wednesday; the Sunday-start week begins 2026-03-15.
	anchor := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)

	window := buildWindow(anchor, WindowWeek, 0, emptySource)

	require.Len(t, window.Days, 7)
	assert.Equal(t, "2026-03-15", window.StartKey)
	assert.Equal(t, "2026-03-21", window.EndKey)
	for i, day := range window.Days {
		assert.Equal(t, DateKey(time.Date(2026, 3, 15+i, 0, 0, 0, 0, time.UTC)), day.DayKey)
		assert.Zero(t, day.Steps)
		assert.Zero(t, day.Calories)
	}
	assert.Zero(t, window.Totals.Steps)
}

func TestBuildWindowDay(t *testing.T) {
	anchor := time.Date(2026, 3, 18, 23, 0, 0, 0, time.UTC)
	window := buildWindow(anchor, WindowDay, 0, mapSource(map[string]int{"2026-03-18": 5000}))

	require.Len(t, window.Days, 1)
	assert.Equal(t, 5000, window.Days[0].Steps)
	assert.InDelta(t, 200.0, window.Days[0].Calories, 1e-9)
	assert.InDelta(t, 3.81, window.Days[0].Distance, 1e-9)
	assert.Equal(t, 5000, window.Totals.Steps)
}

func TestBuildWindowMonthLengthAndTotals(t *testing.T) {
	anchor := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	steps := map[string]int{
		"2026-02-01": 1000,
		"2026-02-14": 2000,
		"2026-02-28": 3000,
	}

	window := buildWindow(anchor, WindowMonth, 0, mapSource(steps))

	require.Len(t, window.Days, 28)
	assert.Equal(t, "2026-02-01", window.StartKey)
	assert.Equal(t, "2026-02-28", window.EndKey)
	assert.Equal(t, 6000, window.Totals.Steps)
	assert.InDelta(t, 240.0, window.Totals.Calories, 1e-9)
}

func TestIsCurrentWindow(t *testing.T) {
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		anchor   time.Time
		kind     WindowKind
		expected bool
	}{
		{
			name:     "Same day",
			anchor:   time.Date(2026, 3, 18, 1, 0, 0, 0, time.UTC),
			kind:     WindowDay,
			expected: true,
		},
		{
			name:     "Yesterday is not current day window",
			anchor:   time.Date(2026, 3, 17, 23, 0, 0, 0, time.UTC),
			kind:     WindowDay,
			expected: false,
		},
		{
			name:     "Different day, same week",
			anchor:   time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			kind:     WindowWeek,
			expected: true,
		},
		{
			name:     "Previous week",
			anchor:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			kind:     WindowWeek,
			expected: false,
		},
		{
			name:     "Same month",
			anchor:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			kind:     WindowMonth,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCurrentWindow(tt.anchor, tt.kind, 0, now))
		})
	}
}

func TestChunkMonthAveragesActiveDaysOnly(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	steps := map[string]int{
		// First chunk (Mar 1-5): two active days.
		"2026-03-02": 4000,
		"2026-03-04": 6000,
		// Second chunk (Mar 6-10): one active day.
		"2026-03-08": 9000,
		// Remaining chunks empty.
	}

	window := buildWindow(anchor, WindowMonth, 0, mapSource(steps))
	buckets := ChunkMonth(window, ConverterFor("steps"))

	// 31 days -> 7 buckets of 5,5,5,5,5,5,1.
	require.Len(t, buckets, 7)

	assert.Equal(t, "5", buckets[0].Label)
	assert.InDelta(t, 5000.0, buckets[0].Value, 1e-9)

	assert.Equal(t, "10", buckets[1].Label)
	assert.InDelta(t, 9000.0, buckets[1].Value, 1e-9)

	// Zero-activity buckets render as zero, not NaN.
	for _, bucket := range buckets[2:] {
		assert.Zero(t, bucket.Value)
	}

	// Final short bucket covers only the 31st.
	assert.Equal(t, "31", buckets[6].Label)
}

func TestChunkMonthWithConverter(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	window := buildWindow(anchor, WindowMonth, 0, mapSource(map[string]int{"2026-03-01": 5000}))

	buckets := ChunkMonth(window, ConverterFor("calories"))
	require.NotEmpty(t, buckets)
	assert.InDelta(t, 200.0, buckets[0].Value, 1e-9)
}
