package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/api/handlers"
	"github.com/youssefmohamed45/stridetrack/internal/api/middleware"
	"github.com/youssefmohamed45/stridetrack/internal/api/routes"
	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
	"github.com/youssefmohamed45/stridetrack/internal/domain/challenge"
	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
	"github.com/youssefmohamed45/stridetrack/internal/domain/milestone"
	"github.com/youssefmohamed45/stridetrack/internal/domain/profile"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/cache"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/persistence/postgres/connection"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/persistence/postgres/migrations"
	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/scheduler"
	"github.com/youssefmohamed45/stridetrack/pkg/config"
	"github.com/youssefmohamed45/stridetrack/pkg/logger"
	"github.com/youssefmohamed45/stridetrack/pkg/security/auth"
)

// @title StrideTrack API
// @version 1.0
// @description Activity aggregation and milestone engine for step tracking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLoggerWithLevel(cfg.Logging.Level)
	defer log.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	limiter := auth.NewRedisRateLimiter(redisClient.GetClient(), time.Minute, 10)

	// Repositories
	activityRepo := activity.NewRepository(db)
	challengeRepo := challenge.NewRepository(db)
	milestoneRepo := milestone.NewRepository(db)
	profileRepo := profile.NewRepository(db)

	// Services. The milestone repository doubles as the challenge domain's
	// achievement recorder, which is how tier completions reach the ledger.
	liveStore := activity.NewLiveStore()
	mirror := activity.NewRedisMirror(redisClient, cfg.Activity.MirrorTimeout, logrus.New())

	activityService := activity.NewService(activityRepo, liveStore, mirror, redisClient, log.Logger, cfg.Activity.WeekStartDay)
	challengeService := challenge.NewService(challengeRepo, milestoneRepo, redisClient, log.Logger)
	milestoneService := milestone.NewService(milestoneRepo, activityRepo, redisClient, log.Logger)
	profileService := profile.NewService(profileRepo, cfg, log.Logger)

	// Midnight rollover
	rollover := scheduler.NewScheduler(challengeService, log)
	rollover.Start()

	// Handlers
	activityHandler := handlers.NewActivityHandler(activityService, profileService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService)
	profileHandler := handlers.NewProfileHandler(profileService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	cacheMiddleware := middleware.NewCacheMiddleware(redisClient)

	routes.NewProfileRoutes(profileHandler, cfg.Auth.JWTSecret, limiter).RegisterRoutes(router, cacheMiddleware)
	routes.NewActivityRoutes(activityHandler, cfg.Auth.JWTSecret, cfg.Activity.Breaker).RegisterRoutes(router, cacheMiddleware)
	routes.NewChallengeRoutes(challengeHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewMilestoneRoutes(milestoneHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.SetupHealthRoutes(router, db, redisClient)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Other instances' writes invalidate our cached responses.
	listenerCtx, stopListener := context.WithCancel(context.Background())
	go listenActivityEvents(listenerCtx, redisClient, log.Logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopListener()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

// listenActivityEvents drops cached windows and charts for users whose
// activity changed on another instance.
func listenActivityEvents(ctx context.Context, redisClient *cache.RedisClient, log *zap.Logger) {
	sub := redisClient.Subscribe(ctx, events.ActivityEventChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event events.ActivityEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn("Malformed activity event", zap.Error(err))
				continue
			}
			for _, cacheType := range []string{"window", "chart", "challenge"} {
				pattern := cacheType + ":" + event.UserID.String() + ":*"
				if err := redisClient.DeletePattern(ctx, pattern); err != nil {
					log.Warn("Failed to invalidate cache from event",
						zap.String("pattern", pattern),
						zap.Error(err))
				}
			}
		}
	}
}
