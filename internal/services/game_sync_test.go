package services

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/predictions"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
)

func newTestSync(t *testing.T) (*GameSyncService, *Store) {
	t.Helper()

	store := newTestStore(t)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	registry := ranking.NewRegistry()
	aggregator := ranking.NewAggregator(registry)
	tracker := predictions.NewTracker(ranking.NewTemporalWeightTable(), quiet)

	sync := NewGameSyncService(store, nil, aggregator, tracker, nil, quiet, 2025, 2*time.Hour)
	return sync, store
}

func TestGameSync_IngestSkipsBadAndDuplicateGames(t *testing.T) {
	sync, store := newTestSync(t)

	games := []models.Game{
		{Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeScore: 34, AwayScore: 3},
		{Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeScore: 34, AwayScore: 3},
		{Week: 1, HomeTeam: "Texas", AwayTeam: "Texas", HomeScore: 21, AwayScore: 14},
		{Week: 2, HomeTeam: "Alabama", AwayTeam: "Auburn", HomeScore: 28, AwayScore: 24},
	}

	ingested, err := sync.IngestGames(games)
	require.NoError(t, err)
	assert.Equal(t, 2, ingested)

	stored, err := store.GamesBySeason(2025)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGameSync_IngestRebuildsRecords(t *testing.T) {
	sync, store := newTestSync(t)

	_, err := sync.IngestGames([]models.Game{
		{Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeScore: 34, AwayScore: 3},
	})
	require.NoError(t, err)

	records, err := store.RecordsBySeason(2025)
	require.NoError(t, err)
	require.Contains(t, records, "Georgia")
	require.Contains(t, records, "Clemson")
	assert.Equal(t, 1, records["Georgia"].Wins)
	assert.Equal(t, 1, records["Clemson"].Losses)
}

func TestGameSync_IngestResolvesMatchingPredictions(t *testing.T) {
	sync, store := newTestSync(t)

	require.NoError(t, store.InsertPrediction(&models.PredictionLog{
		Season:          2025,
		Week:            1,
		Team1:           "Clemson",
		Team2:           "Georgia",
		PredictedWinner: "Georgia",
		PredictedMargin: 14,
	}))
	require.NoError(t, store.InsertPrediction(&models.PredictionLog{
		Season:          2025,
		Week:            9,
		Team1:           "Ohio State",
		Team2:           "Michigan",
		PredictedWinner: "Ohio State",
		PredictedMargin: 3,
	}))

	_, err := sync.IngestGames([]models.Game{
		{Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeScore: 34, AwayScore: 3},
	})
	require.NoError(t, err)

	pending, err := store.PendingPredictions(2025)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Ohio State", pending[0].PredictedWinner)

	all, err := store.PredictionsBySeason(2025)
	require.NoError(t, err)
	for _, p := range all {
		if p.Week != 1 {
			continue
		}
		require.True(t, p.Resolved)
		assert.Equal(t, "Georgia", *p.ActualWinner)
		assert.Equal(t, 31.0, *p.ActualMargin)
		assert.True(t, *p.WinnerCorrect)
	}
}

func TestGameSync_RecalibratePersistsChangedWeights(t *testing.T) {
	sync, store := newTestSync(t)

	// A week of sharp calls earns extra weight.
	for _, team := range []string{"Clemson", "Tennessee", "Vanderbilt"} {
		require.NoError(t, store.InsertPrediction(&models.PredictionLog{
			Season:          2025,
			Week:            1,
			Team1:           "Georgia",
			Team2:           team,
			PredictedWinner: "Georgia",
			PredictedMargin: 30,
		}))
	}
	_, err := sync.IngestGames([]models.Game{
		{Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeScore: 34, AwayScore: 3},
	})
	require.NoError(t, err)

	require.NoError(t, sync.Recalibrate())

	weights, err := store.LoadWeights(2025)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, weights[1], 0.001)
}

func TestGameSync_StartStop(t *testing.T) {
	sync, _ := newTestSync(t)

	require.NoError(t, sync.Start())
	assert.Error(t, sync.Start())

	status := sync.Status()
	assert.Equal(t, true, status["is_running"])
	assert.Equal(t, 2025, status["season"])

	sync.Stop()
	status = sync.Status()
	assert.Equal(t, false, status["is_running"])
}
