package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/handlers"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
)

type MilestoneRoutes struct {
	handler   *handlers.MilestoneHandler
	jwtSecret string
}

func NewMilestoneRoutes(handler *handlers.MilestoneHandler, jwtSecret string) *MilestoneRoutes {
	return &MilestoneRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all milestone-related routes
func (m *MilestoneRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	milestones := router.Group("/api/milestones")
	milestones.Use(middleware.NewAuthMiddleware(m.jwtSecret))

	milestones.GET("", m.handler.GetAchievement)
	milestones.GET("/ledger", gzip.Gzip(gzip.DefaultCompression), m.handler.GetLedger)

	// Evaluation and reconciliation mutate counters; clear derived caches.
	milestones.POST("/evaluate", cache.CacheInvalidate("challenge"), m.handler.Evaluate)
	milestones.POST("/reconcile", cache.CacheInvalidate("window", "chart", "challenge"), m.handler.Reconcile)
	milestones.POST("/reset", cache.CacheInvalidate("window", "chart", "challenge"), m.handler.Reset)
}
