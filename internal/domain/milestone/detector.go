package milestone

import (
	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
)

// Observation is the state the detector inspects in one evaluation cycle.
// Fields are read in a fixed order before any decision is made, so a cycle
// sees one consistent view.
type Observation struct {
	TotalSteps      int64
	TodaySteps      int64
	StreakDays      int64
	PendingTierDays int
}

// Detect picks at most one celebration from the observation, in priority
// order: level up, then daily step badge, then goal streak badge, then a
// completed challenge tier. The achievement's celebrated marks are advanced
// for whichever milestone fires, so repeated cycles stay quiet until the
// counters move again. The pending tier flag is consumed by the caller before
// detection, so a tier completion outranked by another milestone is dropped
// rather than re-queued.
func Detect(achievement *Achievement, obs Observation) *Celebration {
	if level := LevelFor(obs.TotalSteps); level > achievement.LastCelebratedLevel {
		achievement.LastCelebratedLevel = level
		return &Celebration{
			Kind:      events.CelebrationLevelUp,
			Label:     Levels[level].Label,
			Threshold: Levels[level].Value,
		}
	}

	// The daily mark is a lifetime high-water: a badge celebrated once never
	// fires again, no matter how many later days reach the same threshold.
	if reached := HighestReached(DailyStepBadges, obs.TodaySteps); reached > achievement.LastCelebratedDailySteps {
		achievement.LastCelebratedDailySteps = reached
		return &Celebration{
			Kind:      events.CelebrationDailyBadge,
			Label:     LabelFor(DailyStepBadges, reached),
			Threshold: reached,
		}
	}

	if reached := HighestReached(StreakBadges, obs.StreakDays); reached > achievement.LastCelebratedStreakDays {
		achievement.LastCelebratedStreakDays = reached
		return &Celebration{
			Kind:      events.CelebrationStreakBadge,
			Label:     LabelFor(StreakBadges, reached),
			Threshold: reached,
		}
	}

	if obs.PendingTierDays > 0 {
		tier := int64(obs.PendingTierDays)
		label := LabelFor(ChallengeBadges, tier)
		if label == "" {
			label = "Challenge Complete"
		}
		return &Celebration{
			Kind:      events.CelebrationTierCompleted,
			Label:     label,
			Threshold: tier,
		}
	}

	return nil
}
