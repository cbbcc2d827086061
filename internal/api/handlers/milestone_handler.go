package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/dto"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
	"github.com/youssefmohamed45/stridetrack/internal/domain/milestone"
)

// MilestoneHandler handles HTTP requests for milestone evaluation and the
// celebration ledger
type MilestoneHandler struct {
	service milestone.Service
}

// NewMilestoneHandler creates a new MilestoneHandler instance
func NewMilestoneHandler(service milestone.Service) *MilestoneHandler {
	return &MilestoneHandler{service: service}
}

// Evaluate godoc
// @Summary Run a milestone evaluation cycle
// @Description Check all milestone tables and return at most one new celebration
// @Tags milestones
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EvaluateResponse "Cycle completed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/milestones/evaluate [post]
func (h *MilestoneHandler) Evaluate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	celebration, err := h.service.Evaluate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := dto.EvaluateResponse{}
	if celebration != nil {
		middleware.CountCelebration(celebration.Kind)
		response.Celebration = &dto.CelebrationResponse{
			Kind:      celebration.Kind,
			Label:     celebration.Label,
			Threshold: celebration.Threshold,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": response})
}

// GetAchievement godoc
// @Summary Get achievement counters
// @Description Get the user's lifetime counters and current level
// @Tags milestones
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AchievementResponse "Achievement retrieved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/milestones [get]
func (h *MilestoneHandler) GetAchievement(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	achievement, err := h.service.GetAchievement(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": AchievementToResponse(achievement)})
}

// GetLedger godoc
// @Summary Get the celebration ledger
// @Description List awarded celebrations, newest first
// @Tags milestones
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} dto.LedgerEntryResponse "Ledger retrieved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/milestones/ledger [get]
func (h *MilestoneHandler) GetLedger(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := h.service.GetLedger(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]dto.LedgerEntryResponse, len(records))
	for i, record := range records {
		entries[i] = dto.LedgerEntryResponse{
			Kind:      record.Kind,
			Label:     record.Label,
			Threshold: record.Threshold,
			AwardedAt: record.AwardedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// Reconcile godoc
// @Summary Reconcile a remote snapshot
// @Description Merge day totals and counters from another device; values only ever go up
// @Tags milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param snapshot body dto.ReconcileRequest true "Remote snapshot"
// @Success 200 {object} dto.ReconcileResponse "Snapshot merged"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/milestones/reconcile [post]
func (h *MilestoneHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.service.Reconcile(c.Request.Context(), userID, milestone.RemoteSnapshot{
		DailySteps:          req.DailySteps,
		TotalSteps:          req.TotalSteps,
		ConsecutiveGoalDays: req.ConsecutiveGoalDays,
		MaxChallengeDays:    req.MaxChallengeDays,
		LastCelebratedLevel: req.LastCelebratedLevel,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, activity.ErrInvalidDayKey) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ReconcileResponse{
		DaysRaised:    result.DaysRaised,
		DaysUnchanged: result.DaysUnchanged,
		TotalSteps:    result.TotalSteps,
	}})
}

// Reset godoc
// @Summary Reset achievements
// @Description Clear the user's counters, celebrated marks, and ledger
// @Tags milestones
// @Produce json
// @Security BearerAuth
// @Success 204 "Achievements reset"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/milestones/reset [post]
func (h *MilestoneHandler) Reset(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.Reset(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
