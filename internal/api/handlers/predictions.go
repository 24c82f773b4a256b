package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/predictions"
	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/utils"
)

type PredictionsHandler struct {
	store         *services.Store
	tracker       *predictions.Tracker
	gameSync      *services.GameSyncService
	defaultSeason int
}

func NewPredictionsHandler(store *services.Store, tracker *predictions.Tracker, gameSync *services.GameSyncService, defaultSeason int) *PredictionsHandler {
	return &PredictionsHandler{
		store:         store,
		tracker:       tracker,
		gameSync:      gameSync,
		defaultSeason: defaultSeason,
	}
}

type logPredictionRequest struct {
	Season          int      `json:"season"`
	Week            int      `json:"week" binding:"required,min=1,max=20"`
	Team1           string   `json:"team1" binding:"required"`
	Team2           string   `json:"team2" binding:"required"`
	PredictedWinner string   `json:"predicted_winner" binding:"required"`
	PredictedMargin float64  `json:"predicted_margin" binding:"min=0"`
	WinProbability  float64  `json:"win_probability" binding:"min=0,max=1"`
	Confidence      float64  `json:"confidence" binding:"min=0,max=100"`
	Methodology     string   `json:"methodology"`
	Factors         []string `json:"factors"`
}

// LogPrediction records the predicted half of a prediction.
func (h *PredictionsHandler) LogPrediction(c *gin.Context) {
	var req logPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if !strings.EqualFold(req.PredictedWinner, req.Team1) && !strings.EqualFold(req.PredictedWinner, req.Team2) {
		utils.SendValidationError(c, "Predicted winner must be one of the two teams", req.PredictedWinner)
		return
	}
	if req.Season == 0 {
		req.Season = h.defaultSeason
	}

	log := &models.PredictionLog{
		Season:          req.Season,
		Week:            req.Week,
		Team1:           req.Team1,
		Team2:           req.Team2,
		PredictedWinner: req.PredictedWinner,
		PredictedMargin: req.PredictedMargin,
		WinProbability:  req.WinProbability,
		Confidence:      req.Confidence,
		Methodology:     req.Methodology,
		Factors:         req.Factors,
	}
	if err := h.store.InsertPrediction(log); err != nil {
		utils.SendInternalError(c, "Failed to log prediction")
		return
	}

	utils.SendSuccess(c, gin.H{"prediction_id": log.PublicID})
}

// ListPredictions returns a season's predictions, optionally pending only.
func (h *PredictionsHandler) ListPredictions(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	var logs []models.PredictionLog
	var err error
	if c.Query("pending") == "true" {
		logs, err = h.store.PendingPredictions(season)
	} else {
		logs, err = h.store.PredictionsBySeason(season)
	}
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch predictions")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":      season,
		"count":       len(logs),
		"predictions": logs,
	})
}

type resolvePredictionRequest struct {
	Season       int     `json:"season"`
	Week         int     `json:"week" binding:"required,min=1,max=20"`
	Team1        string  `json:"team1" binding:"required"`
	Team2        string  `json:"team2" binding:"required"`
	ActualWinner string  `json:"actual_winner" binding:"required"`
	ActualMargin float64 `json:"actual_margin" binding:"min=0"`
}

// ResolvePredictions resolves every pending prediction covering the given
// matchup and week, in either team order. Returns the count resolved.
func (h *PredictionsHandler) ResolvePredictions(c *gin.Context) {
	var req resolvePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.Season == 0 {
		req.Season = h.defaultSeason
	}

	pending, err := h.store.PendingPredictions(req.Season)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch pending predictions")
		return
	}

	resolved := 0
	for i := range pending {
		p := &pending[i]
		if p.Week != req.Week || !p.Matches(req.Team1, req.Team2) {
			continue
		}
		if err := h.tracker.Resolve(p, req.ActualWinner, req.ActualMargin); err != nil {
			continue
		}
		if err := h.store.SaveResolution(p); err != nil {
			continue
		}
		resolved++
	}

	utils.SendSuccess(c, gin.H{"count_updated": resolved})
}

// GetAccuracy returns the per-week and per-factor accuracy report.
func (h *PredictionsHandler) GetAccuracy(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	logs, err := h.store.PredictionsBySeason(season)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch predictions")
		return
	}

	report := h.tracker.Report(logs)
	utils.SendSuccess(c, gin.H{
		"season": season,
		"report": report,
	})
}

// Recalibrate applies the suggested temporal weight adjustments.
func (h *PredictionsHandler) Recalibrate(c *gin.Context) {
	if err := h.gameSync.Recalibrate(); err != nil {
		utils.SendInternalError(c, "Failed to recalibrate temporal weights")
		return
	}
	utils.SendSuccess(c, gin.H{"status": "recalibrated"})
}
