package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/api/handlers"
	"github.com/gridironhq/cfb-ranker/internal/api/middleware"
	"github.com/gridironhq/cfb-ranker/internal/predictions"
	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/config"
)

// Dependencies carries the wired services the routes need.
type Dependencies struct {
	Store     *services.Store
	Ranking   *services.RankingService
	Narrative *services.NarrativeService
	GameSync  *services.GameSyncService
	Tracker   *predictions.Tracker
	Logger    *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, deps Dependencies) {
	// Initialize handlers
	gamesHandler := handlers.NewGamesHandler(deps.Store, deps.GameSync, cfg.Season)
	rankingsHandler := handlers.NewRankingsHandler(deps.Ranking, cfg.Season)
	postseasonHandler := handlers.NewPostseasonHandler(deps.Ranking, cfg.Season)
	predictionsHandler := handlers.NewPredictionsHandler(deps.Store, deps.Tracker, deps.GameSync, cfg.Season)
	narrativeHandler := handlers.NewNarrativeHandler(deps.Ranking, deps.Narrative, cfg.Season)

	// Public read endpoints
	group.GET("/games", gamesHandler.ListGames)
	group.GET("/games/scheduled", gamesHandler.ListScheduled)

	group.GET("/rankings", rankingsHandler.GetRankings)
	group.GET("/rankings/:team", rankingsHandler.GetTeamDetail)
	group.GET("/teams/:team/record", rankingsHandler.GetTeamRecord)

	group.GET("/bracket", postseasonHandler.GetBracket)
	group.GET("/bowls", postseasonHandler.GetBowls)

	group.GET("/predictions", predictionsHandler.ListPredictions)
	group.GET("/predictions/accuracy", predictionsHandler.GetAccuracy)

	if cfg.EnableNarrative {
		group.GET("/narrative/rankings", narrativeHandler.GetRankingsNarrative)
		group.GET("/narrative/bracket", narrativeHandler.GetBracketNarrative)
	}

	// Prediction logging needs a signed-in caller.
	auth := group.Group("")
	auth.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/predictions", predictionsHandler.LogPrediction)
		auth.POST("/predictions/resolve", predictionsHandler.ResolvePredictions)
	}

	// Mutating engine state is admin-only.
	admin := group.Group("")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.AdminRequired())
	{
		admin.POST("/games", gamesHandler.IngestGames)
		admin.POST("/games/sync", gamesHandler.Sync)
		admin.POST("/predictions/recalibrate", predictionsHandler.Recalibrate)
	}
}
