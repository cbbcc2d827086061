package events

import (
	"time"

	"github.com/google/uuid"
)

// CelebrationEventChannel is the Redis channel celebrations are published to.
// The mobile client listens here to fire its confetti overlay.
const CelebrationEventChannel = "celebration:events"

// ActivityEventChannel carries cache-invalidation notices for activity data.
const ActivityEventChannel = "activity:events"

// Celebration kinds, in detector priority order.
const (
	CelebrationLevelUp       = "level_up"
	CelebrationDailyBadge    = "daily_step_badge"
	CelebrationStreakBadge   = "streak_badge"
	CelebrationTierCompleted = "tier_completed"
)

// CelebrationEvent is emitted at most once per milestone evaluation cycle.
type CelebrationEvent struct {
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	Threshold int       `json:"threshold"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Activity event types
const (
	ActivityEventStepsSaved      = "steps_saved"
	ActivityEventHistoryReset    = "history_reset"
	ActivityEventCacheInvalidate = "cache_invalidate"
)

// ActivityEvent notifies listeners that a user's activity data changed.
type ActivityEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}
