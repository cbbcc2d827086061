package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/cache"
)

// Service exposes the activity aggregation engine: step history writes,
// window queries, and the month chart.
type Service interface {
	SaveSteps(ctx context.Context, input SaveStepsInput) (*SaveStepsResult, error)
	GetWindow(ctx context.Context, userID uuid.UUID, anchor time.Time, kind WindowKind) (*AggregateWindow, error)
	GetMonthChart(ctx context.Context, userID uuid.UUID, anchor time.Time, metric string) ([]ChartBucket, error)
	GetHistory(ctx context.Context, userID uuid.UUID) (map[string]int, error)
	GetDaySteps(ctx context.Context, userID uuid.UUID, dayKey string) (int, error)
	TotalSteps(ctx context.Context, userID uuid.UUID) (int64, error)
	ResetHistory(ctx context.Context, userID uuid.UUID) (int64, error)
	IsCurrentWindow(anchor time.Time, kind WindowKind) bool

	GetEventSummary(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) (map[string]int, error)
}

// SaveStepsResult reports what a save changed.
type SaveStepsResult struct {
	DayKey  string `json:"day_key"`
	Steps   int    `json:"steps"`
	GoalMet bool   `json:"goal_met"`
}

type service struct {
	repo      Repository
	live      *LiveStore
	mirror    Mirror
	redis     *cache.RedisClient
	logger    *zap.Logger
	weekStart int
}

func NewService(repo Repository, live *LiveStore, mirror Mirror, redis *cache.RedisClient, logger *zap.Logger, weekStart int) Service {
	return &service{
		repo:      repo,
		live:      live,
		mirror:    mirror,
		redis:     redis,
		logger:    logger,
		weekStart: weekStart,
	}
}

// SaveSteps overwrites the record for the given day with the clamped
// observation. Overlapping saves are last-write-wins; no merge is attempted.
func (s *service) SaveSteps(ctx context.Context, input SaveStepsInput) (*SaveStepsResult, error) {
	if _, err := ParseDateKey(input.DayKey); err != nil {
		return nil, ErrInvalidDayKey
	}

	steps := ClampSteps(input.Steps)
	if err := s.repo.UpsertSteps(ctx, input.UserID, input.DayKey, steps); err != nil {
		return nil, fmt.Errorf("failed to save steps: %w", err)
	}

	// Live pedometer readings for today shadow the persisted row until the
	// session ends.
	if input.Live && input.DayKey == DateKey(time.Now()) {
		s.live.Set(input.UserID, input.DayKey, steps)
	}

	// Best-effort mirror; the local row stays authoritative either way.
	s.mirror.Mirror(StepRecord{
		UserID: input.UserID,
		DayKey: input.DayKey,
		Steps:  steps,
		SyncAt: time.Now().UTC(),
	})

	goalMet := input.Goal > 0 && steps >= input.Goal

	s.recordEvent(ctx, input.UserID, ActionStepsSaved, map[string]interface{}{
		"day_key":  input.DayKey,
		"steps":    steps,
		"goal_met": goalMet,
	})
	if goalMet {
		s.recordEvent(ctx, input.UserID, ActionGoalCompleted, map[string]interface{}{
			"day_key": input.DayKey,
		})
	}

	s.publishInvalidate(ctx, input.UserID, events.ActivityEventStepsSaved, input.DayKey)

	return &SaveStepsResult{DayKey: input.DayKey, Steps: steps, GoalMet: goalMet}, nil
}

// GetWindow builds the derived day/week/month window anchored at the given
// date. The slot count always matches the calendar window even when the
// underlying history is sparse.
func (s *service) GetWindow(ctx context.Context, userID uuid.UUID, anchor time.Time, kind WindowKind) (*AggregateWindow, error) {
	start, length := windowBounds(anchor, kind, s.weekStart)
	fromKey := DateKey(start)
	toKey := DateKey(AddDays(start, length-1))

	stored, err := s.repo.GetRange(ctx, userID, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load step range: %w", err)
	}

	todayKey := DateKey(time.Now())
	window := buildWindow(anchor, kind, s.weekStart, func(dayKey string) int {
		if dayKey == todayKey {
			if steps, ok := s.live.Get(userID, dayKey); ok {
				return steps
			}
		}
		return stored[dayKey]
	})

	s.recordEvent(ctx, userID, ActionWindowViewed, map[string]interface{}{
		"kind":   string(kind),
		"anchor": DateKey(anchor),
	})

	return &window, nil
}

func (s *service) GetMonthChart(ctx context.Context, userID uuid.UUID, anchor time.Time, metric string) ([]ChartBucket, error) {
	window, err := s.GetWindow(ctx, userID, anchor, WindowMonth)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, userID, ActionChartViewed, map[string]interface{}{
		"anchor": DateKey(anchor),
		"metric": metric,
	})

	return ChunkMonth(*window, ConverterFor(metric)), nil
}

func (s *service) GetHistory(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	return s.repo.GetHistory(ctx, userID)
}

// GetDaySteps returns the step count for one day, honoring the live
// override for today. Absent days read as zero.
func (s *service) GetDaySteps(ctx context.Context, userID uuid.UUID, dayKey string) (int, error) {
	if dayKey == DateKey(time.Now()) {
		if steps, ok := s.live.Get(userID, dayKey); ok {
			return steps, nil
		}
	}
	return s.repo.GetSteps(ctx, userID, dayKey)
}

func (s *service) TotalSteps(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.TotalSteps(ctx, userID)
}

func (s *service) ResetHistory(ctx context.Context, userID uuid.UUID) (int64, error) {
	removed, err := s.repo.ResetHistory(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset history: %w", err)
	}

	s.live.Clear(userID)
	s.recordEvent(ctx, userID, ActionHistoryReset, map[string]interface{}{
		"removed_rows": removed,
	})
	s.publishInvalidate(ctx, userID, events.ActivityEventHistoryReset, "")

	return removed, nil
}

func (s *service) IsCurrentWindow(anchor time.Time, kind WindowKind) bool {
	return IsCurrentWindow(anchor, kind, s.weekStart, time.Now())
}

func (s *service) GetEventSummary(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) (map[string]int, error) {
	return s.repo.GetEventSummary(ctx, userID, startTime, endTime)
}

// recordEvent logs an analytics event; failures are logged and swallowed.
func (s *service) recordEvent(ctx context.Context, userID uuid.UUID, action string, metadata map[string]interface{}) {
	payload := ""
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			payload = string(b)
		}
	}

	event := &ActivityEventLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Metadata:  payload,
	}
	if err := s.repo.RecordEvent(ctx, event); err != nil {
		s.logger.Error("Failed to record activity event",
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *service) publishInvalidate(ctx context.Context, userID uuid.UUID, eventType, dayKey string) {
	event := &events.ActivityEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"day_key": dayKey,
		},
	}
	if err := s.redis.PublishActivityEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish activity event", zap.Error(err))
	}
}
