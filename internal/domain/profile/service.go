package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/youssefmohamed45/stridetrack/pkg/config"
	"github.com/youssefmohamed45/stridetrack/pkg/security/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Service manages accounts and the goal settings other domains read.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*User, error)
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// UpdateProfileInput carries optional field updates; nil means unchanged.
type UpdateProfileInput struct {
	DisplayName    *string
	AvatarURL      *string
	DailyStepGoal  *int
	CalorieGoal    *float64
	DistanceGoalKm *float64
	IsSubscribed   *bool
}

type AuthResult struct {
	User  *User
	Token string
}

type service struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || len(input.Password) < 8 {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:            uuid.New(),
		Email:         email,
		PasswordHash:  string(hash),
		DisplayName:   strings.TrimSpace(input.DisplayName),
		DailyStepGoal: s.cfg.Activity.DefaultDailyStepGoal,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	return s.issueToken(user)
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.DailyStepGoal != nil {
		if *input.DailyStepGoal < 0 {
			return nil, fmt.Errorf("daily step goal must not be negative")
		}
		user.DailyStepGoal = *input.DailyStepGoal
	}
	if input.CalorieGoal != nil {
		user.CalorieGoal = *input.CalorieGoal
	}
	if input.DistanceGoalKm != nil {
		user.DistanceGoalKm = *input.DistanceGoalKm
	}
	if input.IsSubscribed != nil {
		user.IsSubscribed = *input.IsSubscribed
	}

	// Goal writes must surface failures to the caller; stale goals would
	// skew streak and badge detection downstream.
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return user, nil
}

func (s *service) issueToken(user *User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email,
		s.cfg.Auth.JWTSecret, s.cfg.Auth.JWTIssuer, s.cfg.Auth.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
