package milestone

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/persistence/postgres/connection"
)

var ErrAchievementNotFound = errors.New("achievement not found")

// Repository defines the persistence operations for achievements and the
// celebration ledger. It also satisfies the challenge domain's
// AchievementRecorder, which is how tier completions reach the ledger.
type Repository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Achievement, error)
	Save(ctx context.Context, achievement *Achievement) error
	// RaiseCounters lifts the lifetime counters and the celebrated level to
	// at least the given values without ever lowering them.
	RaiseCounters(ctx context.Context, userID uuid.UUID, totalSteps int64, goalDays, challengeDays, lastLevel int) error
	// TakePendingTier reads and clears the one-shot tier flag atomically,
	// returning the tier length that was pending (0 when none).
	TakePendingTier(ctx context.Context, userID uuid.UUID) (int, error)
	SetPendingTier(ctx context.Context, userID uuid.UUID, tierDays int) error
	IncrementGoalStreak(ctx context.Context, userID uuid.UUID) (int, error)
	ResetGoalStreak(ctx context.Context, userID uuid.UUID) error
	RecordCelebration(ctx context.Context, record *CelebrationRecord) error
	GetLedger(ctx context.Context, userID uuid.UUID, limit int) ([]CelebrationRecord, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*Achievement, error) {
	var achievement Achievement
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&achievement)
	if result.Error == nil {
		return &achievement, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	achievement = Achievement{ID: uuid.New(), UserID: userID}
	if err := r.db.WithContext(ctx).Create(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *repository) Save(ctx context.Context, achievement *Achievement) error {
	result := r.db.WithContext(ctx).Save(achievement)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAchievementNotFound
	}
	return nil
}

func (r *repository) RaiseCounters(ctx context.Context, userID uuid.UUID, totalSteps int64, goalDays, challengeDays, lastLevel int) error {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&Achievement{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_steps":           gorm.Expr("GREATEST(total_steps, ?)", totalSteps),
			"consecutive_goal_days": gorm.Expr("GREATEST(consecutive_goal_days, ?)", goalDays),
			"max_challenge_days":    gorm.Expr("GREATEST(max_challenge_days, ?)", challengeDays),
			"last_celebrated_level": gorm.Expr("GREATEST(last_celebrated_level, ?)", lastLevel),
		}).Error
}

func (r *repository) TakePendingTier(ctx context.Context, userID uuid.UUID) (int, error) {
	var pending int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var achievement Achievement
		if err := tx.Where("user_id = ?", userID).First(&achievement).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		pending = achievement.PendingTierDays
		if pending == 0 {
			return nil
		}
		return tx.Model(&Achievement{}).
			Where("user_id = ?", userID).
			Update("pending_tier_days", 0).Error
	})
	return pending, err
}

func (r *repository) SetPendingTier(ctx context.Context, userID uuid.UUID, tierDays int) error {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&Achievement{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"pending_tier_days":  tierDays,
			"max_challenge_days": gorm.Expr("GREATEST(max_challenge_days, ?)", tierDays),
		}).Error
}

func (r *repository) IncrementGoalStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	achievement, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	streak := achievement.ConsecutiveGoalDays + 1
	err = r.db.WithContext(ctx).Model(&Achievement{}).
		Where("user_id = ?", userID).
		Update("consecutive_goal_days", streak).Error
	return streak, err
}

func (r *repository) ResetGoalStreak(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Achievement{}).
		Where("user_id = ?", userID).
		Update("consecutive_goal_days", 0).Error
}

func (r *repository) RecordCelebration(ctx context.Context, record *CelebrationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) GetLedger(ctx context.Context, userID uuid.UUID, limit int) ([]CelebrationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []CelebrationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Reset wipes a user's achievement head and ledger. Used when the user
// clears their history.
func (r *repository) Reset(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&CelebrationRecord{}).Error; err != nil {
			return err
		}
		return tx.Model(&Achievement{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"total_steps":                 0,
				"consecutive_goal_days":       0,
				"max_challenge_days":          0,
				"last_celebrated_level":       0,
				"last_celebrated_daily_steps": 0,
				"last_celebrated_streak_days": 0,
				"pending_tier_days":           0,
			}).Error
	})
}
