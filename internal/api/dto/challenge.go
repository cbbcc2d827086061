package dto

import "time"

type ChallengeStateResponse struct {
	CurrentTierDays       int        `json:"current_tier_days"`
	RemainingDays         int        `json:"remaining_days"`
	MaxCompletedTierDays  int        `json:"max_completed_tier_days"`
	LastParticipationDate *time.Time `json:"last_participation_date,omitempty"`
}

type ChallengeTickResponse struct {
	State             ChallengeStateResponse `json:"state"`
	Participated      bool                   `json:"participated"`
	CompletedTierDays int                    `json:"completed_tier_days,omitempty"`
}
