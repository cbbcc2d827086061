package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account plus the goal settings the milestone engine reads.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email          string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash   string    `gorm:"size:255;not null"`
	DisplayName    string    `gorm:"size:100;not null"`
	AvatarURL      string    `gorm:"size:500"`
	DailyStepGoal  int       `gorm:"not null;default:10000"`
	CalorieGoal    float64   `gorm:"not null;default:400"`
	DistanceGoalKm float64   `gorm:"not null;default:7.62"`
	IsSubscribed   bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
