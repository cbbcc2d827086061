package challenge

import (
	"time"

	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
)

// TickResult describes what a daily transition changed.
type TickResult struct {
	State ChallengeState
	// Participated is true when today's run counted as a new challenge day.
	Participated bool
	// CompletedTierDays is non-zero when the transition finished a tier the
	// user had never completed before; it feeds the one-shot celebration
	// flag.
	CompletedTierDays int
}

// Advance runs the challenge transition for one calendar day. It is
// idempotent: a second call on the same day returns the state unchanged.
func Advance(state ChallengeState, now time.Time) TickResult {
	result := TickResult{State: state}

	// Already processed today.
	if state.LastParticipationDate != nil && activity.IsSameDay(*state.LastParticipationDate, now) {
		return result
	}

	// Terminal: ladder exhausted, nothing left to count down.
	if state.RemainingDays <= 0 {
		return result
	}

	today := activity.Midnight(now)
	result.State.RemainingDays--
	result.State.LastParticipationDate = &today
	result.Participated = true

	if result.State.RemainingDays > 0 {
		return result
	}

	// Tier complete.
	if result.State.CurrentTierDays > result.State.MaxCompletedTierDays {
		result.State.MaxCompletedTierDays = result.State.CurrentTierDays
		result.CompletedTierDays = result.State.CurrentTierDays
	}

	if next := NextTier(result.State.CurrentTierDays); next > 0 {
		result.State.CurrentTierDays = next
		result.State.RemainingDays = next
	}
	// No next tier: stay at zero remaining days.

	return result
}
