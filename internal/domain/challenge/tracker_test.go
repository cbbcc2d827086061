package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(key string) time.Time {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestAdvanceFirstParticipation(t *testing.T) {
	state := ChallengeState{CurrentTierDays: 7, RemainingDays: 7}

	result := Advance(state, day("2026-03-15"))

	assert.True(t, result.Participated)
	assert.Equal(t, 6, result.State.RemainingDays)
	assert.Equal(t, 7, result.State.CurrentTierDays)
	require.NotNil(t, result.State.LastParticipationDate)
	assert.Equal(t, day("2026-03-15"), *result.State.LastParticipationDate)
	assert.Zero(t, result.CompletedTierDays)
}

func TestAdvanceIdempotentWithinDay(t *testing.T) {
	state := ChallengeState{CurrentTierDays: 7, RemainingDays: 7}

	first := Advance(state, day("2026-03-15"))
	second := Advance(first.State, day("2026-03-15").Add(8*time.Hour))

	assert.False(t, second.Participated)
	assert.Equal(t, first.State, second.State)

	// The next calendar day counts again.
	third := Advance(second.State, day("2026-03-16"))
	assert.True(t, third.Participated)
	assert.Equal(t, 5, third.State.RemainingDays)
}

func TestAdvanceCompletesTierAndPromotes(t *testing.T) {
	last := day("2026-03-14")
	state := ChallengeState{
		CurrentTierDays:       7,
		RemainingDays:         1,
		LastParticipationDate: &last,
	}

	result := Advance(state, day("2026-03-15"))

	assert.True(t, result.Participated)
	assert.Equal(t, 7, result.CompletedTierDays)
	assert.Equal(t, 7, result.State.MaxCompletedTierDays)
	assert.Equal(t, 14, result.State.CurrentTierDays)
	assert.Equal(t, 14, result.State.RemainingDays)
}

func TestAdvanceRepeatedTierIsNotANewCompletion(t *testing.T) {
	last := day("2026-03-14")
	state := ChallengeState{
		CurrentTierDays:       14,
		RemainingDays:         1,
		MaxCompletedTierDays:  30,
		LastParticipationDate: &last,
	}

	result := Advance(state, day("2026-03-15"))

	assert.True(t, result.Participated)
	assert.Zero(t, result.CompletedTierDays)
	assert.Equal(t, 30, result.State.MaxCompletedTierDays)
	assert.Equal(t, 30, result.State.CurrentTierDays)
	assert.Equal(t, 30, result.State.RemainingDays)
}

func TestAdvanceLadderExhausted(t *testing.T) {
	last := day("2026-03-14")
	state := ChallengeState{
		CurrentTierDays:       30,
		RemainingDays:         1,
		MaxCompletedTierDays:  14,
		LastParticipationDate: &last,
	}

	result := Advance(state, day("2026-03-15"))

	assert.True(t, result.Participated)
	assert.Equal(t, 30, result.CompletedTierDays)
	assert.Equal(t, 30, result.State.MaxCompletedTierDays)
	// No tier after 30 days: the ladder parks at zero remaining.
	assert.Equal(t, 30, result.State.CurrentTierDays)
	assert.Zero(t, result.State.RemainingDays)

	// Terminal state stays terminal.
	next := Advance(result.State, day("2026-03-16"))
	assert.False(t, next.Participated)
	assert.Equal(t, result.State, next.State)
}

func TestNextTier(t *testing.T) {
	assert.Equal(t, 14, NextTier(7))
	assert.Equal(t, 30, NextTier(14))
	assert.Zero(t, NextTier(30))
	assert.Zero(t, NextTier(99))
}
