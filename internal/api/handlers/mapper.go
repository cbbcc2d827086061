package handlers

import (
	"github.com/youssefmohamed45/stridetrack/internal/api/dto"
	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
	"github.com/youssefmohamed45/stridetrack/internal/domain/challenge"
	"github.com/youssefmohamed45/stridetrack/internal/domain/milestone"
	"github.com/youssefmohamed45/stridetrack/internal/domain/profile"
)

func windowDayToResponse(day activity.WindowDayValue) dto.WindowDayResponse {
	return dto.WindowDayResponse{
		DayKey:   day.DayKey,
		Steps:    day.Steps,
		Calories: day.Calories,
		Distance: day.Distance,
		Minutes:  day.Minutes,
	}
}

// WindowToResponse converts an aggregate window to its API representation.
func WindowToResponse(window *activity.AggregateWindow, current bool) dto.WindowResponse {
	days := make([]dto.WindowDayResponse, len(window.Days))
	for i, day := range window.Days {
		days[i] = windowDayToResponse(day)
	}
	return dto.WindowResponse{
		Kind:     string(window.Kind),
		StartKey: window.StartKey,
		EndKey:   window.EndKey,
		Current:  current,
		Days:     days,
		Totals:   windowDayToResponse(window.Totals),
	}
}

// ChartToResponse converts month chart buckets to their API representation.
func ChartToResponse(metric string, buckets []activity.ChartBucket) dto.MonthChartResponse {
	out := make([]dto.ChartBucketResponse, len(buckets))
	for i, bucket := range buckets {
		out[i] = dto.ChartBucketResponse{Label: bucket.Label, Value: bucket.Value}
	}
	return dto.MonthChartResponse{Metric: metric, Buckets: out}
}

// ChallengeStateToResponse converts a challenge state to its API representation.
func ChallengeStateToResponse(state *challenge.ChallengeState) dto.ChallengeStateResponse {
	return dto.ChallengeStateResponse{
		CurrentTierDays:       state.CurrentTierDays,
		RemainingDays:         state.RemainingDays,
		MaxCompletedTierDays:  state.MaxCompletedTierDays,
		LastParticipationDate: state.LastParticipationDate,
	}
}

// AchievementToResponse converts an achievement head to its API representation.
func AchievementToResponse(a *milestone.Achievement) dto.AchievementResponse {
	return dto.AchievementResponse{
		TotalSteps:          a.TotalSteps,
		ConsecutiveGoalDays: a.ConsecutiveGoalDays,
		MaxChallengeDays:    a.MaxChallengeDays,
		Level:               milestone.LevelFor(a.TotalSteps),
	}
}

// ProfileToResponse converts a user to its API representation.
func ProfileToResponse(user *profile.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		AvatarURL:      user.AvatarURL,
		DailyStepGoal:  user.DailyStepGoal,
		CalorieGoal:    user.CalorieGoal,
		DistanceGoalKm: user.DistanceGoalKm,
		IsSubscribed:   user.IsSubscribed,
	}
}
