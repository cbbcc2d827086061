package challenge

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TierDurations is the fixed ordered ladder of challenge lengths in days.
// Completing one tier rolls the user into the next; the last is terminal.
var TierDurations = []int{7, 14, 30}

// ChallengeState tracks one user's progress through the challenge ladder.
// Invariants: RemainingDays <= CurrentTierDays; the state advances at most
// one step per calendar day.
type ChallengeState struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID                uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	CurrentTierDays       int        `gorm:"not null;default:7"`
	RemainingDays         int        `gorm:"not null;default:7"`
	LastParticipationDate *time.Time `gorm:"default:null"`
	MaxCompletedTierDays  int        `gorm:"not null;default:0"`
	CreatedAt             time.Time  `gorm:"not null;default:current_timestamp"`
	UpdatedAt             time.Time  `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the ChallengeState model
func (ChallengeState) TableName() string {
	return "challenge_states"
}

// BeforeCreate is called before creating a new challenge state record
func (c *ChallengeState) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CurrentTierDays == 0 {
		c.CurrentTierDays = TierDurations[0]
		c.RemainingDays = TierDurations[0]
	}
	return nil
}

// NextTier returns the tier after the given duration, or 0 when the ladder
// is exhausted.
func NextTier(currentDays int) int {
	for i, d := range TierDurations {
		if d == currentDays && i+1 < len(TierDurations) {
			return TierDurations[i+1]
		}
	}
	return 0
}
