package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/dto"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
	"github.com/youssefmohamed45/stridetrack/internal/domain/profile"
)

// ActivityHandler handles HTTP requests for step history and aggregation
type ActivityHandler struct {
	service        activity.Service
	profileService profile.Service
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(service activity.Service, profileService profile.Service) *ActivityHandler {
	return &ActivityHandler{service: service, profileService: profileService}
}

// SaveSteps godoc
// @Summary Save a step observation
// @Description Store the step count for a calendar day; last write wins
// @Tags activity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param steps body dto.SaveStepsRequest true "Step observation"
// @Success 200 {object} dto.SaveStepsResponse "Steps saved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/activity/steps [put]
func (h *ActivityHandler) SaveSteps(c *gin.Context) {
	var req dto.SaveStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goal := 0
	if user, err := h.profileService.GetProfile(c.Request.Context(), userID); err == nil {
		goal = user.DailyStepGoal
	}

	result, err := h.service.SaveSteps(c.Request.Context(), activity.SaveStepsInput{
		UserID: userID,
		DayKey: req.DayKey,
		Steps:  req.Steps,
		Live:   req.Live,
		Goal:   goal,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, activity.ErrInvalidDayKey) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	middleware.CountStepSave()

	c.JSON(http.StatusOK, gin.H{"data": dto.SaveStepsResponse{
		DayKey:  result.DayKey,
		Steps:   result.Steps,
		GoalMet: result.GoalMet,
	}})
}

// GetWindow godoc
// @Summary Get an aggregation window
// @Description Get the day/week/month window anchored at a date, with derived metrics per day
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param kind query string true "Window kind" Enums(day, week, month)
// @Param anchor query string false "Anchor date (YYYY-MM-DD, default today)"
// @Success 200 {object} dto.WindowResponse "Window retrieved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/activity/window [get]
func (h *ActivityHandler) GetWindow(c *gin.Context) {
	var query dto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	anchor, err := parseAnchor(query.Anchor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor date"})
		return
	}

	kind, err := activity.ParseWindowKind(query.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := h.service.GetWindow(c.Request.Context(), userID, anchor, kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": WindowToResponse(window, h.service.IsCurrentWindow(anchor, kind))})
}

// GetMonthChart godoc
// @Summary Get the month chart
// @Description Get the month's chart buckets: five-day chunks averaged over active days
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param anchor query string false "Anchor date (YYYY-MM-DD, default today)"
// @Param metric query string false "Metric" Enums(steps, calories, distance, minutes) default(steps)
// @Success 200 {object} dto.MonthChartResponse "Chart retrieved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/activity/chart/month [get]
func (h *ActivityHandler) GetMonthChart(c *gin.Context) {
	var query dto.MonthChartQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	anchor, err := parseAnchor(query.Anchor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor date"})
		return
	}

	metric := query.Metric
	if metric == "" {
		metric = "steps"
	}

	buckets, err := h.service.GetMonthChart(c.Request.Context(), userID, anchor, metric)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ChartToResponse(metric, buckets)})
}

// GetCurrentWindow godoc
// @Summary Check whether a window is current
// @Description Report whether the anchored window contains today; the client uses it to stop paging forward
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param kind query string true "Window kind" Enums(day, week, month)
// @Param anchor query string false "Anchor date (YYYY-MM-DD, default today)"
// @Success 200 {object} map[string]bool "Check completed"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/activity/window/current [get]
func (h *ActivityHandler) GetCurrentWindow(c *gin.Context) {
	var query dto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	anchor, err := parseAnchor(query.Anchor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor date"})
		return
	}

	kind, err := activity.ParseWindowKind(query.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"current": h.service.IsCurrentWindow(anchor, kind),
	}})
}

// GetHistory godoc
// @Summary Get the full step history
// @Description Get every stored day's step count plus the lifetime total
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.HistoryResponse "History retrieved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/activity/history [get]
func (h *ActivityHandler) GetHistory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	history, err := h.service.GetHistory(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total, err := h.service.TotalSteps(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.HistoryResponse{
		Days:       history,
		TotalSteps: total,
	}})
}

// ResetHistory godoc
// @Summary Reset the step history
// @Description Delete every stored day for the user; achievements reset separately
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResetHistoryResponse "History reset"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/activity/reset [post]
func (h *ActivityHandler) ResetHistory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	removed, err := h.service.ResetHistory(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ResetHistoryResponse{RemovedRows: removed}})
}

// GetEventSummary godoc
// @Summary Get activity analytics summary
// @Description Get per-action counts of the user's activity events over a period
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param days query int false "Period in days" default(30)
// @Success 200 {object} map[string]int "Summary retrieved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/activity/analytics [get]
func (h *ActivityHandler) GetEventSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return
		}
		days = parsed
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	summary, err := h.service.GetEventSummary(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// parseAnchor parses an anchor date, defaulting to today.
func parseAnchor(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return activity.ParseDateKey(raw)
}
