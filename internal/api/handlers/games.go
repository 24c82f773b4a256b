package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/utils"
)

type GamesHandler struct {
	store         *services.Store
	gameSync      *services.GameSyncService
	defaultSeason int
}

func NewGamesHandler(store *services.Store, gameSync *services.GameSyncService, defaultSeason int) *GamesHandler {
	return &GamesHandler{
		store:         store,
		gameSync:      gameSync,
		defaultSeason: defaultSeason,
	}
}

type ingestGamesRequest struct {
	Games []models.Game `json:"games" binding:"required,min=1"`
}

// IngestGames accepts completed results. Malformed games are rejected
// before any of the batch is applied.
func (h *GamesHandler) IngestGames(c *gin.Context) {
	var req ingestGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	for i := range req.Games {
		if req.Games[i].Season == 0 {
			req.Games[i].Season = h.defaultSeason
		}
		if err := req.Games[i].Validate(); err != nil {
			utils.SendValidationError(c, "Malformed game result", err.Error())
			return
		}
	}

	ingested, err := h.gameSync.IngestGames(req.Games)
	if err != nil {
		utils.SendInternalError(c, "Failed to ingest games")
		return
	}

	utils.SendSuccess(c, gin.H{
		"ingested": ingested,
		"skipped":  len(req.Games) - ingested,
	})
}

// ListGames returns completed results for a season, optionally one week.
func (h *GamesHandler) ListGames(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	var games []models.Game
	var err error
	if weekStr := c.Query("week"); weekStr != "" {
		week, convErr := strconv.Atoi(weekStr)
		if convErr != nil {
			utils.SendValidationError(c, "Invalid week", convErr.Error())
			return
		}
		games, err = h.store.GamesByWeek(season, week)
	} else {
		games, err = h.store.GamesBySeason(season)
	}
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch games")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"count":  len(games),
		"games":  games,
	})
}

// ListScheduled returns upcoming games used for eligibility windows.
func (h *GamesHandler) ListScheduled(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	scheduled, err := h.store.ScheduledGames(season)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch scheduled games")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":    season,
		"count":     len(scheduled),
		"scheduled": scheduled,
	})
}

// Sync triggers an immediate rebuild of season aggregates.
func (h *GamesHandler) Sync(c *gin.Context) {
	if err := h.gameSync.RebuildRecords(); err != nil {
		utils.SendInternalError(c, "Failed to rebuild season records")
		return
	}
	utils.SendSuccess(c, gin.H{"status": "rebuilt"})
}
