package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/dto"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/internal/domain/profile"
)

// ProfileHandler handles HTTP requests for accounts and goal settings
type ProfileHandler struct {
	service profile.Service
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(service profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account and return an auth token
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/users/register [post]
func (h *ProfileHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Register(c.Request.Context(), profile.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, profile.ErrEmailTaken):
			statusCode = http.StatusConflict
		case errors.Is(err, profile.ErrInvalidCredentials):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.AuthResponse{
		Token: result.Token,
		User:  ProfileToResponse(result.User),
	}})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and return an auth token
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse "Logged in"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/users/login [post]
func (h *ProfileHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, profile.ErrInvalidCredentials) {
			statusCode = http.StatusUnauthorized
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AuthResponse{
		Token: result.Token,
		User:  ProfileToResponse(result.User),
	}})
}

// GetProfile godoc
// @Summary Get the profile
// @Description Get the authenticated user's profile and goal settings
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "Profile retrieved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/users/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, profile.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(user)})
}

// UpdateProfile godoc
// @Summary Update the profile
// @Description Update profile fields and goal settings; absent fields stay unchanged
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "Profile updates"
// @Success 200 {object} dto.ProfileResponse "Profile updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/users/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, profile.UpdateProfileInput{
		DisplayName:    req.DisplayName,
		AvatarURL:      req.AvatarURL,
		DailyStepGoal:  req.DailyStepGoal,
		CalorieGoal:    req.CalorieGoal,
		DistanceGoalKm: req.DistanceGoalKm,
		IsSubscribed:   req.IsSubscribed,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, profile.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(user)})
}
