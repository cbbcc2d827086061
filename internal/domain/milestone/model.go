package milestone

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Achievement is one user's milestone ledger head: lifetime counters plus the
// high-water marks of what has already been celebrated. Counters only ever go
// up; the celebrated marks prevent the same milestone from firing twice.
type Achievement struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID                   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TotalSteps               int64     `gorm:"not null;default:0"`
	ConsecutiveGoalDays      int       `gorm:"not null;default:0"`
	MaxChallengeDays         int       `gorm:"not null;default:0"`
	LastCelebratedLevel      int       `gorm:"not null;default:0"`
	LastCelebratedDailySteps int64     `gorm:"not null;default:0"`
	LastCelebratedStreakDays int64     `gorm:"not null;default:0"`
	PendingTierDays          int       `gorm:"not null;default:0"`
	CreatedAt                time.Time `gorm:"not null;default:current_timestamp"`
	UpdatedAt                time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Achievement model
func (Achievement) TableName() string {
	return "achievements"
}

// BeforeCreate is called before creating a new achievement record
func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CelebrationRecord is one awarded celebration, kept as an append-only ledger.
type CelebrationRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"size:50;not null"`
	Label     string    `gorm:"size:100;not null"`
	Threshold int64     `gorm:"not null"`
	AwardedAt time.Time `gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the CelebrationRecord model
func (CelebrationRecord) TableName() string {
	return "celebration_records"
}

// BeforeCreate is called before creating a new celebration record
func (c *CelebrationRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Celebration is the single milestone picked by one evaluation cycle.
type Celebration struct {
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Threshold int64  `json:"threshold"`
}

// RemoteSnapshot carries counters and day totals from another device or a
// backup. Merging it never lowers anything that is already stored.
type RemoteSnapshot struct {
	DailySteps          map[string]int `json:"daily_steps"`
	TotalSteps          int64          `json:"total_steps"`
	ConsecutiveGoalDays int            `json:"consecutive_goal_days"`
	MaxChallengeDays    int            `json:"max_challenge_days"`
	LastCelebratedLevel int            `json:"last_celebrated_level"`
}

// ReconcileResult reports what a snapshot merge actually changed.
type ReconcileResult struct {
	DaysRaised    int   `json:"days_raised"`
	DaysUnchanged int   `json:"days_unchanged"`
	TotalSteps    int64 `json:"total_steps"`
}
