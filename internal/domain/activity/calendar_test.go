package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "Midday UTC",
			instant:  time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC),
			expected: "2026-03-15",
		},
		{
			name:     "Just before midnight UTC",
			instant:  time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC),
			expected: "2026-03-15",
		},
		{
			name:     "Offset zone normalizes to UTC day",
			instant:  time.Date(2026, 3, 15, 23, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			expected: "2026-03-15",
		},
		{
			name:     "Offset zone crossing midnight",
			instant:  time.Date(2026, 3, 15, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			expected: "2026-03-14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := DateKey(tt.instant)
			assert.Equal(t, tt.expected, key)

			parsed, err := ParseDateKey(key)
			require.NoError(t, err)
			assert.Equal(t, key, DateKey(parsed))
			assert.Equal(t, parsed, Midnight(parsed))
		})
	}
}

func TestParseDateKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{"", "2026/03/15", "15-03-2026", "2026-13-01", "yesterday"} {
		_, err := ParseDateKey(key)
		assert.Error(t, err, key)
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2026-03-18 is a Wednesday.
	wednesday := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		anchor    time.Time
		weekStart int
		expected  string
	}{
		{
			name:      "Sunday start from midweek",
			anchor:    wednesday,
			weekStart: 0,
			expected:  "2026-03-15",
		},
		{
			name:      "Monday start from midweek",
			anchor:    wednesday,
			weekStart: 1,
			expected:  "2026-03-16",
		},
		{
			name:      "Saturday start from midweek",
			anchor:    wednesday,
			weekStart: 6,
			expected:  "2026-03-14",
		},
		{
			name:      "Anchor on the start day stays put",
			anchor:    time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
			weekStart: 0,
			expected:  "2026-03-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := StartOfWeek(tt.anchor, tt.weekStart)
			assert.Equal(t, tt.expected, DateKey(start))
			assert.Equal(t, start, Midnight(start))
		})
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name     string
		anchor   time.Time
		start    string
		length   int
	}{
		{
			name:   "Thirty-one day month",
			anchor: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
			start:  "2026-03-01",
			length: 31,
		},
		{
			name:   "February common year",
			anchor: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			start:  "2026-02-01",
			length: 28,
		},
		{
			name:   "February leap year",
			anchor: time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC),
			start:  "2028-02-01",
			length: 29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, DateKey(StartOfMonth(tt.anchor)))
			assert.Equal(t, tt.length, DaysInMonth(tt.anchor))
		})
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(b, c))
}
