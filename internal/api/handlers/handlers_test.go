package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/postseason"
	"github.com/gridironhq/cfb-ranker/internal/predictions"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/database"
)

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

// testRouter wires the handlers against an in-memory database with no
// auth middleware in front, so each endpoint can be hit directly.
func testRouter(t *testing.T) (*gin.Engine, *services.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.Game{},
		&models.ScheduledGame{},
		&models.TeamSeasonRecord{},
		&models.PredictionLog{},
		&models.TemporalWeight{},
	))

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	store := services.NewStore(&database.DB{DB: gdb}, quiet)
	registry := ranking.NewRegistry()
	quality := ranking.NewQualityEstimator(registry, time.Minute)
	victory := ranking.NewVictoryCalculator(registry, quality)
	weights := ranking.NewTemporalWeightTable()
	engine := ranking.NewEngine(registry, quality, victory, weights)
	aggregator := ranking.NewAggregator(registry)
	tracker := predictions.NewTracker(weights, quiet)
	bracketGen := postseason.NewBracketGenerator(registry, quiet)
	bowlAssigner := postseason.NewBowlAssigner(registry, nil, quiet)

	gameSync := services.NewGameSyncService(store, nil, aggregator, tracker, nil, quiet, 2025, time.Hour)
	rankingSvc := services.NewRankingService(store, nil, engine, bracketGen, bowlAssigner, quiet, time.Minute)

	gamesHandler := NewGamesHandler(store, gameSync, 2025)
	rankingsHandler := NewRankingsHandler(rankingSvc, 2025)
	postseasonHandler := NewPostseasonHandler(rankingSvc, 2025)
	predictionsHandler := NewPredictionsHandler(store, tracker, gameSync, 2025)

	router := gin.New()
	router.POST("/games", gamesHandler.IngestGames)
	router.GET("/games", gamesHandler.ListGames)
	router.GET("/rankings", rankingsHandler.GetRankings)
	router.GET("/rankings/:team", rankingsHandler.GetTeamDetail)
	router.GET("/bracket", postseasonHandler.GetBracket)
	router.GET("/bowls", postseasonHandler.GetBowls)
	router.POST("/predictions", predictionsHandler.LogPrediction)
	router.GET("/predictions", predictionsHandler.ListPredictions)
	router.POST("/predictions/resolve", predictionsHandler.ResolvePredictions)
	router.GET("/predictions/accuracy", predictionsHandler.GetAccuracy)

	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func ingestTestGames(t *testing.T, router *gin.Engine) {
	t.Helper()
	w, env := doJSON(t, router, http.MethodPost, "/games", gin.H{
		"games": []gin.H{
			{"week": 1, "home_team": "Georgia", "away_team": "Clemson", "home_score": 34, "away_score": 3, "neutral_site": true},
			{"week": 2, "home_team": "Georgia", "away_team": "Tennessee", "home_score": 27, "away_score": 20},
			{"week": 2, "home_team": "Ohio State", "away_team": "Texas", "home_score": 21, "away_score": 17},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	require.Equal(t, float64(3), env.Data["ingested"])
}

func TestIngestGames_RejectsMalformedBatch(t *testing.T) {
	router, store := testRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/games", gin.H{
		"games": []gin.H{
			{"week": 1, "home_team": "Georgia", "away_team": "Clemson", "home_score": 34, "away_score": 3},
			{"week": 1, "home_team": "Texas", "away_team": "Texas", "home_score": 21, "away_score": 14},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	// All-or-nothing: the valid game in the batch is not applied either.
	games, err := store.GamesBySeason(2025)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestIngestGames_ReportsSkippedDuplicates(t *testing.T) {
	router, _ := testRouter(t)
	ingestTestGames(t, router)

	w, env := doJSON(t, router, http.MethodPost, "/games", gin.H{
		"games": []gin.H{
			{"week": 1, "home_team": "Georgia", "away_team": "Clemson", "home_score": 34, "away_score": 3, "neutral_site": true},
			{"week": 3, "home_team": "Alabama", "away_team": "Vanderbilt", "home_score": 42, "away_score": 10},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Data["ingested"])
	assert.Equal(t, float64(1), env.Data["skipped"])
}

func TestGetRankings(t *testing.T) {
	router, _ := testRouter(t)
	ingestTestGames(t, router)

	w, env := doJSON(t, router, http.MethodGet, "/rankings", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	assert.Equal(t, float64(5), env.Data["count"])

	rankings, ok := env.Data["rankings"].([]interface{})
	require.True(t, ok)
	top, ok := rankings[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Georgia", top["team"])
	assert.Equal(t, float64(1), top["position"])
}

func TestGetTeamDetail_NotFound(t *testing.T) {
	router, _ := testRouter(t)
	ingestTestGames(t, router)

	w, env := doJSON(t, router, http.MethodGet, "/rankings/Oklahoma", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestGetBracket_IncompleteField(t *testing.T) {
	router, _ := testRouter(t)
	ingestTestGames(t, router)

	w, env := doJSON(t, router, http.MethodGet, "/bracket", nil)

	require.Equal(t, http.StatusOK, w.Code)
	bracket, ok := env.Data["bracket"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, bracket["complete"])
}

func TestLogPrediction_Validation(t *testing.T) {
	router, _ := testRouter(t)

	// Missing week.
	w, _ := doJSON(t, router, http.MethodPost, "/predictions", gin.H{
		"team1": "Georgia", "team2": "Alabama", "predicted_winner": "Georgia",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Winner not in the matchup.
	w, _ = doJSON(t, router, http.MethodPost, "/predictions", gin.H{
		"week": 5, "team1": "Georgia", "team2": "Alabama", "predicted_winner": "Texas",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictionResolveFlow(t *testing.T) {
	router, _ := testRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/predictions", gin.H{
		"week":             5,
		"team1":            "Georgia",
		"team2":            "Alabama",
		"predicted_winner": "Georgia",
		"predicted_margin": 7,
		"confidence":       72,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, env.Data["prediction_id"])

	// Resolution matches the matchup in either team order.
	w, env = doJSON(t, router, http.MethodPost, "/predictions/resolve", gin.H{
		"week":          5,
		"team1":         "Alabama",
		"team2":         "Georgia",
		"actual_winner": "Georgia",
		"actual_margin": 10,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Data["count_updated"])

	// A second resolve finds nothing pending.
	w, env = doJSON(t, router, http.MethodPost, "/predictions/resolve", gin.H{
		"week":          5,
		"team1":         "Georgia",
		"team2":         "Alabama",
		"actual_winner": "Georgia",
		"actual_margin": 10,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), env.Data["count_updated"])

	w, env = doJSON(t, router, http.MethodGet, "/predictions/accuracy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report, ok := env.Data["report"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), report["resolved_count"])
}
