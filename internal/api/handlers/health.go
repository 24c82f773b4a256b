package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/database"
)

type HealthHandler struct {
	db       *database.DB
	redis    *redis.Client
	gameSync *services.GameSyncService
}

func NewHealthHandler(db *database.DB, redisClient *redis.Client, gameSync *services.GameSyncService) *HealthHandler {
	return &HealthHandler{
		db:       db,
		redis:    redisClient,
		gameSync: gameSync,
	}
}

// GetHealth returns basic health status - always 200 while the server runs.
// Used for liveness probes.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "cfb-ranker",
	})
}

// GetReady checks the database and redis before reporting ready.
func (h *HealthHandler) GetReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if sqlDB, err := h.db.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "down"
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	if h.gameSync != nil {
		checks["game_sync"] = h.gameSync.Status()
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}
	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}
