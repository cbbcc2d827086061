package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/persistence/postgres/connection"
)

var ErrStateNotFound = errors.New("challenge state not found")

// Repository defines the persistence operations for challenge states.
type Repository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*ChallengeState, error)
	Save(ctx context.Context, state *ChallengeState) error
	FindLapsed(ctx context.Context, before time.Time) ([]ChallengeState, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

// GetOrCreate loads the user's challenge state, creating a fresh
// first-tier state on first contact.
func (r *repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*ChallengeState, error) {
	var state ChallengeState
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&state)
	if result.Error == nil {
		return &state, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	state = ChallengeState{
		ID:              uuid.New(),
		UserID:          userID,
		CurrentTierDays: TierDurations[0],
		RemainingDays:   TierDurations[0],
	}
	if err := r.db.WithContext(ctx).Create(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *repository) Save(ctx context.Context, state *ChallengeState) error {
	result := r.db.WithContext(ctx).Save(state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateNotFound
	}
	return nil
}

// FindLapsed returns states whose last participation predates the cutoff;
// those users' goal streaks are considered broken.
func (r *repository) FindLapsed(ctx context.Context, before time.Time) ([]ChallengeState, error) {
	var states []ChallengeState
	err := r.db.WithContext(ctx).
		Where("last_participation_date IS NOT NULL AND last_participation_date < ?", before).
		Find(&states).Error
	return states, err
}
