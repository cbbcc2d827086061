package dto

import "time"

type CelebrationResponse struct {
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Threshold int64  `json:"threshold"`
}

type EvaluateResponse struct {
	Celebration *CelebrationResponse `json:"celebration"`
}

type AchievementResponse struct {
	TotalSteps          int64 `json:"total_steps"`
	ConsecutiveGoalDays int   `json:"consecutive_goal_days"`
	MaxChallengeDays    int   `json:"max_challenge_days"`
	Level               int   `json:"level"`
}

type LedgerEntryResponse struct {
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	Threshold int64     `json:"threshold"`
	AwardedAt time.Time `json:"awarded_at"`
}

// ReconcileRequest carries a snapshot from another device or a backup.
type ReconcileRequest struct {
	DailySteps          map[string]int `json:"daily_steps"`
	TotalSteps          int64          `json:"total_steps"`
	ConsecutiveGoalDays int            `json:"consecutive_goal_days"`
	MaxChallengeDays    int            `json:"max_challenge_days"`
	LastCelebratedLevel int            `json:"last_celebrated_level"`
}

type ReconcileResponse struct {
	DaysRaised    int   `json:"days_raised"`
	DaysUnchanged int   `json:"days_unchanged"`
	TotalSteps    int64 `json:"total_steps"`
}
