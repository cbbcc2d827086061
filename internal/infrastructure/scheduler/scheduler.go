package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/domain/challenge"
	"github.com/youssefmohamed45/stridetrack/pkg/logger"
)

// Scheduler runs the midnight rollover: users who skipped a day get their
// goal streak zeroed before the new day's ticks arrive.
type Scheduler struct {
	challengeService challenge.Service
	logger           *logger.Logger
}

func NewScheduler(challengeService challenge.Service, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		challengeService: challengeService,
		logger:           logger,
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup to catch up after downtime.
	s.runRolloverTasks()

	// Calculate time until next midnight
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Rollover scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		// Wait until first midnight
		time.Sleep(timeUntilMidnight)

		// Then run every 24 hours
		ticker := time.NewTicker(24 * time.Hour)
		s.runRolloverTasks()
		for range ticker.C {
			s.runRolloverTasks()
		}
	}()
}

func (s *Scheduler) runRolloverTasks() {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.Info("Starting daily rollover tasks", zap.Time("start_time", startTime))

	resetCount, err := s.challengeService.ResetBrokenStreaks(ctx)
	if err != nil {
		s.logger.Error("Failed to reset broken streaks",
			zap.Error(err),
		)
	} else {
		s.logger.Info("Successfully processed broken streaks",
			zap.Int64("streak_reset_count", resetCount),
			zap.String("reset_criteria", "No challenge participation since yesterday"),
		)
	}

	s.logger.Info("Completed daily rollover tasks",
		zap.Time("end_time", time.Now()),
		zap.Duration("duration", time.Since(startTime)),
	)
}
