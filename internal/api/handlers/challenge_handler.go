package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/dto"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/internal/domain/challenge"
)

// ChallengeHandler handles HTTP requests for the daily challenge ladder
type ChallengeHandler struct {
	service challenge.Service
}

// NewChallengeHandler creates a new ChallengeHandler instance
func NewChallengeHandler(service challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// Tick godoc
// @Summary Run the daily challenge tick
// @Description Count today as a challenge day; repeat calls on the same day are no-ops
// @Tags challenge
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ChallengeTickResponse "Tick processed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/challenge/tick [post]
func (h *ChallengeHandler) Tick(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.service.Tick(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ChallengeTickResponse{
		State:             ChallengeStateToResponse(&result.State),
		Participated:      result.Participated,
		CompletedTierDays: result.CompletedTierDays,
	}})
}

// Get godoc
// @Summary Get the challenge state
// @Description Get the user's current tier, remaining days, and best completed tier
// @Tags challenge
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ChallengeStateResponse "State retrieved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/challenge [get]
func (h *ChallengeHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	state, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ChallengeStateToResponse(state)})
}
