package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/cache"
)

// AchievementRecorder is the slice of the achievements ledger the challenge
// tracker writes to: the one-shot tier flag and the goal-day streak.
type AchievementRecorder interface {
	SetPendingTier(ctx context.Context, userID uuid.UUID, tierDays int) error
	IncrementGoalStreak(ctx context.Context, userID uuid.UUID) (int, error)
	ResetGoalStreak(ctx context.Context, userID uuid.UUID) error
}

// Service runs the daily challenge transitions.
type Service interface {
	// Tick runs the once-per-day transition for a user. Safe to call
	// redundantly; repeats within the same day are no-ops.
	Tick(ctx context.Context, userID uuid.UUID) (*TickResult, error)
	Get(ctx context.Context, userID uuid.UUID) (*ChallengeState, error)
	// ResetBrokenStreaks zeroes the goal-day streak of every user who
	// missed yesterday. Run by the midnight scheduler.
	ResetBrokenStreaks(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	recorder AchievementRecorder
	redis    *cache.RedisClient
	logger   *zap.Logger
}

func NewService(repo Repository, recorder AchievementRecorder, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		recorder: recorder,
		redis:    redis,
		logger:   logger,
	}
}

func (s *service) Tick(ctx context.Context, userID uuid.UUID) (*TickResult, error) {
	state, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge state: %w", err)
	}

	result := Advance(*state, time.Now())
	if !result.Participated {
		return &result, nil
	}

	if err := s.repo.Save(ctx, &result.State); err != nil {
		return nil, fmt.Errorf("failed to save challenge state: %w", err)
	}

	// Ledger updates are best-effort: the transition itself already
	// committed, and the counters are re-derivable from participation rows.
	if _, err := s.recorder.IncrementGoalStreak(ctx, userID); err != nil {
		s.logger.Error("Failed to increment goal streak",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	if result.CompletedTierDays > 0 {
		if err := s.recorder.SetPendingTier(ctx, userID, result.CompletedTierDays); err != nil {
			s.logger.Error("Failed to flag completed tier",
				zap.String("user_id", userID.String()),
				zap.Int("tier_days", result.CompletedTierDays),
				zap.Error(err))
		}
	}

	s.publishUpdate(ctx, userID, &result)

	return &result, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ChallengeState, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) ResetBrokenStreaks(ctx context.Context) (int64, error) {
	yesterday := activity.Midnight(activity.AddDays(time.Now(), -1))
	lapsed, err := s.repo.FindLapsed(ctx, yesterday)
	if err != nil {
		return 0, fmt.Errorf("failed to find lapsed challenge states: %w", err)
	}

	var reset int64
	for _, state := range lapsed {
		if err := s.recorder.ResetGoalStreak(ctx, state.UserID); err != nil {
			s.logger.Error("Failed to reset goal streak",
				zap.String("user_id", state.UserID.String()),
				zap.Error(err))
			continue
		}
		reset++
	}

	return reset, nil
}

func (s *service) publishUpdate(ctx context.Context, userID uuid.UUID, result *TickResult) {
	event := &events.ActivityEvent{
		EventType: events.ActivityEventCacheInvalidate,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"action":         "challenge_tick",
			"tier_days":      result.State.CurrentTierDays,
			"remaining_days": result.State.RemainingDays,
		},
	}
	if err := s.redis.PublishActivityEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish challenge event", zap.Error(err))
	}
}
