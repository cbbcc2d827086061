package milestone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
)

func TestDetectNothingNew(t *testing.T) {
	ach := &Achievement{}

	celebration := Detect(ach, Observation{
		TotalSteps: 5000,
		TodaySteps: 500,
	})

	assert.Nil(t, celebration)
}

func TestDetectLevelUpOnCrossing(t *testing.T) {
	// Lifetime total moved from below 10k to above it since the last cycle.
	ach := &Achievement{LastCelebratedLevel: 0}

	celebration := Detect(ach, Observation{
		TotalSteps: 11_000,
	})

	require.NotNil(t, celebration)
	assert.Equal(t, events.CelebrationLevelUp, celebration.Kind)
	assert.Equal(t, int64(10_000), celebration.Threshold)
	assert.Equal(t, 1, ach.LastCelebratedLevel)

	// The same total stays quiet on the next cycle.
	assert.Nil(t, Detect(ach, Observation{TotalSteps: 11_000}))
}

func TestDetectDailyBadge(t *testing.T) {
	ach := &Achievement{}

	celebration := Detect(ach, Observation{
		TodaySteps: 5_500,
	})

	require.NotNil(t, celebration)
	assert.Equal(t, events.CelebrationDailyBadge, celebration.Kind)
	assert.Equal(t, int64(5_000), celebration.Threshold)

	// Climbing to the next badge fires again; staying does not.
	assert.Nil(t, Detect(ach, Observation{TodaySteps: 6_000}))
	next := Detect(ach, Observation{TodaySteps: 8_200})
	require.NotNil(t, next)
	assert.Equal(t, int64(8_000), next.Threshold)
}

func TestDetectDailyBadgeNeverRecelebrates(t *testing.T) {
	// 10k was celebrated on some earlier day. A later day reaching the same
	// threshold stays quiet; only a new high fires.
	ach := &Achievement{LastCelebratedDailySteps: 10_000}

	assert.Nil(t, Detect(ach, Observation{TodaySteps: 10_000}))
	assert.Nil(t, Detect(ach, Observation{TodaySteps: 3_000}))
	assert.Equal(t, int64(10_000), ach.LastCelebratedDailySteps)

	celebration := Detect(ach, Observation{TodaySteps: 16_000})
	require.NotNil(t, celebration)
	assert.Equal(t, events.CelebrationDailyBadge, celebration.Kind)
	assert.Equal(t, int64(15_000), celebration.Threshold)
}

func TestDetectStreakBadge(t *testing.T) {
	ach := &Achievement{LastCelebratedStreakDays: 3}

	celebration := Detect(ach, Observation{
		StreakDays: 7,
	})

	require.NotNil(t, celebration)
	assert.Equal(t, events.CelebrationStreakBadge, celebration.Kind)
	assert.Equal(t, "Full Week", celebration.Label)
}

func TestDetectTierCompleted(t *testing.T) {
	ach := &Achievement{}

	celebration := Detect(ach, Observation{
		PendingTierDays: 7,
	})

	require.NotNil(t, celebration)
	assert.Equal(t, events.CelebrationTierCompleted, celebration.Kind)
	assert.Equal(t, "Week Challenger", celebration.Label)
	assert.Equal(t, int64(7), celebration.Threshold)
}

func TestDetectAtMostOnePerCycle(t *testing.T) {
	// Everything fires at once: level-up wins, the rest wait for later
	// cycles except the tier flag, which was already consumed.
	ach := &Achievement{}

	celebration := Detect(ach, Observation{
		TotalSteps:      10_500,
		TodaySteps:      10_500,
		StreakDays:      7,
		PendingTierDays: 7,
	})

	require.NotNil(t, celebration)
	assert.Equal(t, events.CelebrationLevelUp, celebration.Kind)

	// The next cycle (flag gone) surfaces the daily badge.
	second := Detect(ach, Observation{
		TotalSteps: 10_500,
		TodaySteps: 10_500,
		StreakDays: 7,
	})
	require.NotNil(t, second)
	assert.Equal(t, events.CelebrationDailyBadge, second.Kind)

	third := Detect(ach, Observation{
		TotalSteps: 10_500,
		TodaySteps: 10_500,
		StreakDays: 7,
	})
	require.NotNil(t, third)
	assert.Equal(t, events.CelebrationStreakBadge, third.Kind)

	assert.Nil(t, Detect(ach, Observation{
		TotalSteps: 10_500,
		TodaySteps: 10_500,
		StreakDays: 7,
	}))
}

func TestDetectMarksNeverDecreaseAcrossCycles(t *testing.T) {
	// A week of evaluations with counters that rise and fall. The celebrated
	// marks only ever move up, and no threshold fires twice.
	ach := &Achievement{}
	observations := []Observation{
		{TotalSteps: 4_000, TodaySteps: 4_000},
		{TotalSteps: 12_000, TodaySteps: 8_000, StreakDays: 1},
		{TotalSteps: 12_500, TodaySteps: 500, StreakDays: 2},
		{TotalSteps: 20_500, TodaySteps: 8_000, StreakDays: 3},
		{TotalSteps: 31_000, TodaySteps: 10_500, StreakDays: 4},
		{TotalSteps: 31_000, TodaySteps: 10_500, StreakDays: 4},
		{TotalSteps: 52_000, TodaySteps: 21_000, StreakDays: 5},
	}

	seen := make(map[string]bool)
	prev := *ach
	for i, obs := range observations {
		celebration := Detect(ach, obs)

		assert.GreaterOrEqual(t, ach.LastCelebratedLevel, prev.LastCelebratedLevel, "cycle %d", i)
		assert.GreaterOrEqual(t, ach.LastCelebratedDailySteps, prev.LastCelebratedDailySteps, "cycle %d", i)
		assert.GreaterOrEqual(t, ach.LastCelebratedStreakDays, prev.LastCelebratedStreakDays, "cycle %d", i)

		if celebration != nil {
			key := celebration.Kind + "/" + celebration.Label
			assert.False(t, seen[key], "cycle %d re-celebrated %s", i, key)
			seen[key] = true
		}
		prev = *ach
	}
}

func TestDetectUnknownTierGetsFallbackLabel(t *testing.T) {
	ach := &Achievement{}

	celebration := Detect(ach, Observation{
		PendingTierDays: 21,
	})

	require.NotNil(t, celebration)
	assert.Equal(t, "Challenge Complete", celebration.Label)
}
