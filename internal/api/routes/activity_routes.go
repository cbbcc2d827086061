package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/handlers"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/pkg/config"
)

type ActivityRoutes struct {
	handler   *handlers.ActivityHandler
	jwtSecret string
	breaker   config.BreakerConfig
}

func NewActivityRoutes(handler *handlers.ActivityHandler, jwtSecret string, breaker config.BreakerConfig) *ActivityRoutes {
	return &ActivityRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		breaker:   breaker,
	}
}

// RegisterRoutes registers all activity-related routes
func (a *ActivityRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	breaker := middleware.NewStoreBreaker(a.breaker)

	activity := router.Group("/api/activity")
	activity.Use(middleware.NewAuthMiddleware(a.jwtSecret))
	activity.Use(breaker.Guard())

	activity.PUT("/steps", cache.CacheInvalidate("window", "chart"), a.handler.SaveSteps)

	// Window and chart responses compress well; history especially so.
	activity.GET("/window", cache.CacheResponse("window"), gzip.Gzip(gzip.DefaultCompression), a.handler.GetWindow)
	activity.GET("/window/current", a.handler.GetCurrentWindow)
	activity.GET("/chart/month", cache.CacheResponse("chart"), gzip.Gzip(gzip.DefaultCompression), a.handler.GetMonthChart)
	activity.GET("/history", gzip.Gzip(gzip.DefaultCompression), a.handler.GetHistory)
	activity.GET("/analytics", a.handler.GetEventSummary)

	activity.POST("/reset", cache.CacheInvalidate("window", "chart"), a.handler.ResetHistory)
}
