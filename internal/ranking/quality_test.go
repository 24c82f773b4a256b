package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

func TestQualityEstimator_Bounds(t *testing.T) {
	estimator := NewQualityEstimator(NewRegistry(), time.Minute)

	records := []*models.TeamSeasonRecord{
		nil,
		{Team: "Georgia", Wins: 15, Losses: 0, PointsFor: 700, PointsAgainst: 100},
		{Team: "Vanderbilt", Wins: 0, Losses: 12, PointsFor: 100, PointsAgainst: 550},
		{Team: "Kansas", Wins: 6, Losses: 6, PointsFor: 350, PointsAgainst: 350},
	}
	teams := []string{"Georgia", "Georgia", "Vanderbilt", "Kansas"}

	for i, rec := range records {
		estimator.Reset()
		q := estimator.Estimate(teams[i], rec)
		assert.GreaterOrEqual(t, q, 0.5, "record %d below floor", i)
		assert.LessOrEqual(t, q, 10.0, "record %d above ceiling", i)
	}
}

func TestQualityEstimator_EliteTeamHitsCeiling(t *testing.T) {
	estimator := NewQualityEstimator(NewRegistry(), time.Minute)

	rec := &models.TeamSeasonRecord{Team: "Georgia", Wins: 14, Losses: 0, PointsFor: 650, PointsAgainst: 150}
	// 3.0 + 0.45*14 + (500/14)/12 + 0.5 is well past the ceiling.
	assert.Equal(t, 10.0, estimator.Estimate("Georgia", rec))
}

func TestQualityEstimator_FCSAtFloor(t *testing.T) {
	estimator := NewQualityEstimator(NewRegistry(), time.Minute)

	assert.Equal(t, 0.5, estimator.Estimate("North Dakota State (FCS)", nil))
	assert.Equal(t, 0.5, estimator.Estimate("Montana (fcs)", &models.TeamSeasonRecord{Wins: 12}))
}

func TestQualityEstimator_ClassAdjustments(t *testing.T) {
	estimator := NewQualityEstimator(NewRegistry(), time.Minute)

	// No record: baseline plus class adjustment only.
	assert.InDelta(t, 3.5, estimator.Estimate("Alabama", nil), 0.001)     // P4
	assert.InDelta(t, 2.75, estimator.Estimate("Tulane", nil), 0.001)     // G5
	assert.InDelta(t, 3.0, estimator.Estimate("Notre Dame", nil), 0.001)  // Independent
	assert.InDelta(t, 2.25, estimator.Estimate("Podunk Tech", nil), 0.001) // not in registry
}

func TestQualityEstimator_RecordMovesQuality(t *testing.T) {
	estimator := NewQualityEstimator(NewRegistry(), time.Minute)

	good := &models.TeamSeasonRecord{Team: "Kansas", Wins: 8, Losses: 1, PointsFor: 320, PointsAgainst: 180}
	bad := &models.TeamSeasonRecord{Team: "Kansas", Wins: 1, Losses: 8, PointsFor: 180, PointsAgainst: 320}

	qGood := estimator.Estimate("Kansas", good)
	estimator.Reset()
	qBad := estimator.Estimate("Kansas", bad)

	assert.Greater(t, qGood, qBad)
}

func TestQualityEstimator_Memoization(t *testing.T) {
	estimator := NewQualityEstimator(NewRegistry(), time.Minute)

	first := estimator.Estimate("Kansas", &models.TeamSeasonRecord{Team: "Kansas", Wins: 8, Losses: 1, PointsFor: 300, PointsAgainst: 200})
	// Within the validity window the snapshot wins over a changed record.
	second := estimator.Estimate("Kansas", &models.TeamSeasonRecord{Team: "Kansas", Wins: 0, Losses: 9, PointsFor: 100, PointsAgainst: 400})
	assert.Equal(t, first, second)

	estimator.Reset()
	third := estimator.Estimate("Kansas", &models.TeamSeasonRecord{Team: "Kansas", Wins: 0, Losses: 9, PointsFor: 100, PointsAgainst: 400})
	assert.NotEqual(t, first, third)
}
