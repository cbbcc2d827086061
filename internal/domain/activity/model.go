package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyStep is the single source of truth for one user's steps on one UTC
// calendar day. At most one row exists per (user, day); a missing row means
// zero steps.
type DailyStep struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_day,priority:1"`
	DayKey    string    `gorm:"size:10;not null;uniqueIndex:idx_user_day,priority:2"`
	Steps     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the DailyStep model
func (DailyStep) TableName() string {
	return "daily_steps"
}

// BeforeCreate is called before creating a new daily step record
func (d *DailyStep) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ActivityEventLog records activity-related actions for analytics.
type ActivityEventLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(50);not null"`
	Timestamp time.Time `gorm:"not null;default:now()"`
	Metadata  string    `gorm:"type:text"`
}

// TableName specifies the table name for the ActivityEventLog model
func (ActivityEventLog) TableName() string {
	return "activity_events"
}

// Common analytics actions
const (
	ActionStepsSaved    = "steps_saved"
	ActionWindowViewed  = "window_viewed"
	ActionChartViewed   = "chart_viewed"
	ActionHistoryReset  = "history_reset"
	ActionReconciled    = "reconciled"
	ActionMirrorFailed  = "mirror_failed"
	ActionGoalCompleted = "goal_completed"
)

// SaveStepsInput is a single step-count observation for a date, either a
// live pedometer reading for today or a manual correction. Goal is the
// user's daily step goal, used to flag goal completion.
type SaveStepsInput struct {
	UserID uuid.UUID `json:"user_id"`
	DayKey string    `json:"day_key"`
	Steps  float64   `json:"steps"`
	Live   bool      `json:"live"`
	Goal   int       `json:"goal"`
}
