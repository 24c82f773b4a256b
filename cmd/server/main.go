package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/api"
	"github.com/gridironhq/cfb-ranker/internal/api/handlers"
	"github.com/gridironhq/cfb-ranker/internal/api/middleware"
	"github.com/gridironhq/cfb-ranker/internal/postseason"
	"github.com/gridironhq/cfb-ranker/internal/predictions"
	"github.com/gridironhq/cfb-ranker/internal/providers"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/config"
	"github.com/gridironhq/cfb-ranker/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger := logrus.StandardLogger()
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Ranking core
	registry := ranking.NewRegistry()
	quality := ranking.NewQualityEstimator(registry, cfg.QualityCacheTTL)
	victory := ranking.NewVictoryCalculator(registry, quality)
	weights := ranking.NewTemporalWeightTable()
	engine := ranking.NewEngine(registry, quality, victory, weights)
	aggregator := ranking.NewAggregator(registry)

	// Services
	store := services.NewStore(db, logger)
	cacheService := services.NewCacheService(redisClient)
	tracker := predictions.NewTracker(weights, logger)

	if persisted, err := store.LoadWeights(cfg.Season); err != nil {
		logger.Warnf("Failed to load temporal weights, using defaults: %v", err)
	} else {
		weights.Load(persisted)
	}

	bracketGen := postseason.NewBracketGenerator(registry, logger)
	bowlAssigner := postseason.NewBowlAssigner(registry, postseason.DefaultBowls, logger)
	rankingService := services.NewRankingService(store, cacheService, engine, bracketGen, bowlAssigner, logger, cfg.RankingCacheTTL)
	narrativeService := services.NewNarrativeService(store, cfg, cacheService, logger)

	// Background sync
	syncInterval, err := time.ParseDuration(cfg.SyncInterval)
	if err != nil {
		logger.Warnf("Invalid sync interval, using default 2h: %v", err)
		syncInterval = 2 * time.Hour
	}
	scoreboard := providers.NewScoreboardClient(cfg.ScoreboardURL, logger)
	gameSync := services.NewGameSyncService(store, cacheService, aggregator, tracker, scoreboard, logger, cfg.Season, syncInterval)
	if cfg.EnableBackgroundSync {
		if err := gameSync.Start(); err != nil {
			logger.Errorf("Failed to start game sync: %v", err)
		}
		defer gameSync.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health endpoints at root level
	healthHandler := handlers.NewHealthHandler(db, redisClient, gameSync)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, api.Dependencies{
		Store:     store,
		Ranking:   rankingService,
		Narrative: narrativeService,
		GameSync:  gameSync,
		Tracker:   tracker,
		Logger:    logger,
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
