package milestone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesAreAscending(t *testing.T) {
	for name, table := range map[string][]Threshold{
		"levels":    Levels,
		"daily":     DailyStepBadges,
		"streak":    StreakBadges,
		"challenge": ChallengeBadges,
	} {
		for i := 1; i < len(table); i++ {
			assert.Greater(t, table[i].Value, table[i-1].Value,
				"%s table out of order at index %d", name, i)
		}
	}
}

func TestHighestReached(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected int64
	}{
		{name: "Below every badge", amount: 500, expected: 0},
		{name: "Exactly on a threshold", amount: 10_000, expected: 10_000},
		{name: "Between thresholds", amount: 12_000, expected: 10_000},
		{name: "Above the top", amount: 90_000, expected: 50_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HighestReached(DailyStepBadges, tt.amount))
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		total    int64
		expected int
	}{
		{total: 0, expected: 0},
		{total: 9_999, expected: 0},
		{total: 10_000, expected: 1},
		{total: 49_999, expected: 1},
		{total: 50_000, expected: 2},
		{total: 500_000, expected: 5},
		{total: 9_999_999, expected: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelFor(tt.total), "total=%d", tt.total)
	}
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Full Week", LabelFor(StreakBadges, 7))
	assert.Empty(t, LabelFor(StreakBadges, 8))
}
