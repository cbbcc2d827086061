package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/handlers"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
)

type ChallengeRoutes struct {
	handler   *handlers.ChallengeHandler
	jwtSecret string
}

func NewChallengeRoutes(handler *handlers.ChallengeHandler, jwtSecret string) *ChallengeRoutes {
	return &ChallengeRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all challenge-related routes
func (r *ChallengeRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	challenge := router.Group("/api/challenge")
	challenge.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	challenge.GET("", cache.CacheResponse("challenge"), r.handler.Get)
	challenge.POST("/tick", cache.CacheInvalidate("challenge"), r.handler.Tick)
}
