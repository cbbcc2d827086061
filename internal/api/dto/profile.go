package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	DailyStepGoal  int       `json:"daily_step_goal"`
	CalorieGoal    float64   `json:"calorie_goal"`
	DistanceGoalKm float64   `json:"distance_goal_km"`
	IsSubscribed   bool      `json:"is_subscribed"`
}

// UpdateProfileRequest uses pointers so absent fields stay unchanged.
type UpdateProfileRequest struct {
	DisplayName    *string  `json:"display_name" binding:"omitempty,max=100"`
	AvatarURL      *string  `json:"avatar_url" binding:"omitempty,url"`
	DailyStepGoal  *int     `json:"daily_step_goal" binding:"omitempty,min=0"`
	CalorieGoal    *float64 `json:"calorie_goal" binding:"omitempty,min=0"`
	DistanceGoalKm *float64 `json:"distance_goal_km" binding:"omitempty,min=0"`
	IsSubscribed   *bool    `json:"is_subscribed"`
}
