package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrInvalidDayKey = errors.New("invalid day key")
	ErrInvalidInput  = errors.New("invalid input")
)

// Repository defines the persistence operations for step history.
type Repository interface {
	UpsertSteps(ctx context.Context, userID uuid.UUID, dayKey string, steps int) error
	GetSteps(ctx context.Context, userID uuid.UUID, dayKey string) (int, error)
	GetRange(ctx context.Context, userID uuid.UUID, fromKey, toKey string) (map[string]int, error)
	GetHistory(ctx context.Context, userID uuid.UUID) (map[string]int, error)
	TotalSteps(ctx context.Context, userID uuid.UUID) (int64, error)
	ResetHistory(ctx context.Context, userID uuid.UUID) (int64, error)

	// Analytics methods
	RecordEvent(ctx context.Context, event *ActivityEventLog) error
	GetEventSummary(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) (map[string]int, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

// UpsertSteps overwrites the record for (user, day); last write wins.
func (r *repository) UpsertSteps(ctx context.Context, userID uuid.UUID, dayKey string, steps int) error {
	row := DailyStep{
		ID:     uuid.New(),
		UserID: userID,
		DayKey: dayKey,
		Steps:  steps,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"steps", "updated_at"}),
		}).
		Create(&row).Error
}

// GetSteps returns the stored count for a day, or 0 when no row exists.
func (r *repository) GetSteps(ctx context.Context, userID uuid.UUID, dayKey string) (int, error) {
	var row DailyStep
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND day_key = ?", userID, dayKey).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return row.Steps, nil
}

func (r *repository) GetRange(ctx context.Context, userID uuid.UUID, fromKey, toKey string) (map[string]int, error) {
	var rows []DailyStep
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_key BETWEEN ? AND ?", userID, fromKey, toKey).
		Order("day_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	steps := make(map[string]int, len(rows))
	for _, row := range rows {
		steps[row.DayKey] = row.Steps
	}
	return steps, nil
}

func (r *repository) GetHistory(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	var rows []DailyStep
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make(map[string]int, len(rows))
	for _, row := range rows {
		history[row.DayKey] = row.Steps
	}
	return history, nil
}

func (r *repository) TotalSteps(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&DailyStep{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(steps), 0)").
		Scan(&total).Error
	return total, err
}

// ResetHistory removes every step row for the user. Only a full history
// reset ever deletes records.
func (r *repository) ResetHistory(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&DailyStep{})
	return result.RowsAffected, result.Error
}

// Analytics implementation
func (r *repository) RecordEvent(ctx context.Context, event *ActivityEventLog) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetEventSummary(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) (map[string]int, error) {
	var results []struct {
		Action string
		Count  int
	}

	err := r.db.WithContext(ctx).Model(&ActivityEventLog{}).
		Select("action, count(*) as count").
		Where("user_id = ? AND timestamp BETWEEN ? AND ?", userID, startTime, endTime).
		Group("action").
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	summary := make(map[string]int)
	for _, result := range results {
		summary[result.Action] = result.Count
	}
	return summary, nil
}
