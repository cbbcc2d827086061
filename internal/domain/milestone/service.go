package milestone

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/cache"
)

// Service runs milestone evaluation cycles and snapshot reconciliation.
type Service interface {
	// Evaluate runs one celebration cycle for a user and returns the single
	// milestone that fired, or nil when nothing new was reached.
	Evaluate(ctx context.Context, userID uuid.UUID) (*Celebration, error)
	GetAchievement(ctx context.Context, userID uuid.UUID) (*Achievement, error)
	GetLedger(ctx context.Context, userID uuid.UUID, limit int) ([]CelebrationRecord, error)
	Reconcile(ctx context.Context, userID uuid.UUID, snapshot RemoteSnapshot) (*ReconcileResult, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo         Repository
	activityRepo activity.Repository
	redis        *cache.RedisClient
	logger       *zap.Logger
}

func NewService(repo Repository, activityRepo activity.Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		activityRepo: activityRepo,
		redis:        redis,
		logger:       logger,
	}
}

// Evaluate gathers the full observation before detecting anything, so every
// check in the cycle sees the same counters. The pending tier flag is taken
// here; once taken it never re-queues.
func (s *service) Evaluate(ctx context.Context, userID uuid.UUID) (*Celebration, error) {
	achievement, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement: %w", err)
	}

	total, err := s.activityRepo.TotalSteps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load total steps: %w", err)
	}

	todayKey := activity.DateKey(time.Now())
	todaySteps, err := s.activityRepo.GetSteps(ctx, userID, todayKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's steps: %w", err)
	}

	pending, err := s.repo.TakePendingTier(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to take pending tier: %w", err)
	}

	if total > achievement.TotalSteps {
		achievement.TotalSteps = total
	}

	celebration := Detect(achievement, Observation{
		TotalSteps:      achievement.TotalSteps,
		TodaySteps:      int64(todaySteps),
		StreakDays:      int64(achievement.ConsecutiveGoalDays),
		PendingTierDays: pending,
	})

	if err := s.repo.Save(ctx, achievement); err != nil {
		return nil, fmt.Errorf("failed to save achievement: %w", err)
	}

	if celebration != nil {
		s.award(ctx, userID, celebration)
	}

	return celebration, nil
}

func (s *service) GetAchievement(ctx context.Context, userID uuid.UUID) (*Achievement, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) GetLedger(ctx context.Context, userID uuid.UUID, limit int) ([]CelebrationRecord, error) {
	return s.repo.GetLedger(ctx, userID, limit)
}

// Reconcile merges a remote snapshot into stored history. Merging only ever
// raises values; a stale or partial snapshot cannot erase local progress.
func (s *service) Reconcile(ctx context.Context, userID uuid.UUID, snapshot RemoteSnapshot) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	for dayKey, steps := range snapshot.DailySteps {
		if _, err := activity.ParseDateKey(dayKey); err != nil {
			return nil, fmt.Errorf("%w: %s", activity.ErrInvalidDayKey, dayKey)
		}
		stored, err := s.activityRepo.GetSteps(ctx, userID, dayKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load steps for %s: %w", dayKey, err)
		}
		if steps <= stored {
			result.DaysUnchanged++
			continue
		}
		if err := s.activityRepo.UpsertSteps(ctx, userID, dayKey, steps); err != nil {
			return nil, fmt.Errorf("failed to raise steps for %s: %w", dayKey, err)
		}
		result.DaysRaised++
	}

	if err := s.repo.RaiseCounters(ctx, userID, snapshot.TotalSteps,
		snapshot.ConsecutiveGoalDays, snapshot.MaxChallengeDays,
		snapshot.LastCelebratedLevel); err != nil {
		return nil, fmt.Errorf("failed to raise counters: %w", err)
	}

	total, err := s.activityRepo.TotalSteps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load total steps: %w", err)
	}
	result.TotalSteps = total

	s.recordActivityEvent(ctx, userID, activity.ActionReconciled, map[string]interface{}{
		"days_raised":    result.DaysRaised,
		"days_unchanged": result.DaysUnchanged,
	})

	return result, nil
}

func (s *service) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Reset(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset achievements: %w", err)
	}
	return nil
}

// award persists the ledger row and publishes the celebration. Both are
// best-effort; the celebrated marks were already saved.
func (s *service) award(ctx context.Context, userID uuid.UUID, celebration *Celebration) {
	record := &CelebrationRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      celebration.Kind,
		Label:     celebration.Label,
		Threshold: celebration.Threshold,
		AwardedAt: time.Now().UTC(),
	}
	if err := s.repo.RecordCelebration(ctx, record); err != nil {
		s.logger.Error("Failed to record celebration",
			zap.String("user_id", userID.String()),
			zap.String("kind", celebration.Kind),
			zap.Error(err))
	}

	event := &events.CelebrationEvent{
		Kind:      celebration.Kind,
		Label:     celebration.Label,
		Threshold: int(celebration.Threshold),
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.redis.PublishCelebrationEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish celebration event",
			zap.String("kind", celebration.Kind),
			zap.Error(err))
	}
}

func (s *service) recordActivityEvent(ctx context.Context, userID uuid.UUID, action string, metadata map[string]interface{}) {
	payload := ""
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			payload = string(b)
		}
	}

	event := &activity.ActivityEventLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Metadata:  payload,
	}
	if err := s.activityRepo.RecordEvent(ctx, event); err != nil {
		s.logger.Error("Failed to record activity event",
			zap.String("action", action),
			zap.Error(err))
	}
}
