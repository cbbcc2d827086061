package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/youssefmohamed45/stridetrack/internal/api/handlers"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/pkg/security/auth"
)

type ProfileRoutes struct {
	handler   *handlers.ProfileHandler
	jwtSecret string
	limiter   auth.RateLimiter
}

func NewProfileRoutes(handler *handlers.ProfileHandler, jwtSecret string, limiter auth.RateLimiter) *ProfileRoutes {
	return &ProfileRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		limiter:   limiter,
	}
}

// RegisterRoutes registers all user-related routes
func (p *ProfileRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	users := router.Group("/api/users")

	// Credential endpoints are rate limited; everything else sits behind auth.
	users.POST("/register", middleware.RateLimitMiddleware(p.limiter), p.handler.Register)
	users.POST("/login", middleware.RateLimitMiddleware(p.limiter), p.handler.Login)

	authed := users.Group("")
	authed.Use(middleware.NewAuthMiddleware(p.jwtSecret))
	authed.GET("/profile", cache.CacheResponse("profile"), p.handler.GetProfile)
	authed.PUT("/profile", cache.CacheInvalidate("profile"), p.handler.UpdateProfile)
}
