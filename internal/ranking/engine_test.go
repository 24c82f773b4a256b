package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

func newTestEngine() *Engine {
	registry := NewRegistry()
	quality := NewQualityEstimator(registry, time.Minute)
	victory := NewVictoryCalculator(registry, quality)
	return NewEngine(registry, quality, victory, NewTemporalWeightTable())
}

func seasonRecord(team, conference string, outcomes ...models.GameOutcome) *models.TeamSeasonRecord {
	rec := &models.TeamSeasonRecord{
		Season:     2025,
		Team:       team,
		Conference: conference,
		Outcomes:   models.GameOutcomeList(outcomes),
	}
	for _, o := range outcomes {
		rec.PointsFor += o.PointsFor
		rec.PointsAgainst += o.PointsAgainst
		rec.MarginTotal += o.PointsFor - o.PointsAgainst
		if o.Won {
			rec.Wins++
			if o.FCSOpponent {
				rec.FCSWins++
			} else {
				rec.RealWins++
			}
		} else {
			rec.Losses++
		}
	}
	return rec
}

// paddedRecord fabricates a filler record with a given shape so opponents
// have comparable quality without spelling out every game.
func paddedRecord(team, conference string, wins, losses, marginTotal int) *models.TeamSeasonRecord {
	return &models.TeamSeasonRecord{
		Season:        2025,
		Team:          team,
		Conference:    conference,
		Wins:          wins,
		Losses:        losses,
		RealWins:      wins,
		PointsFor:     200 + marginTotal,
		PointsAgainst: 200,
		MarginTotal:   marginTotal,
		Outcomes:      models.GameOutcomeList{},
	}
}

func TestEngine_RankIdempotent(t *testing.T) {
	engine := newTestEngine()
	records := NewAggregator(NewRegistry()).Aggregate(2025, testGames())

	first := engine.Rank(records)
	second := engine.Rank(records)

	assert.Equal(t, first, second)
}

func TestEngine_RivalryWinBreaksSimilarResumes(t *testing.T) {
	engine := newTestEngine()

	records := map[string]*models.TeamSeasonRecord{
		// Both unbeaten with the same shared win; Georgia's second win is a
		// tier-1 rivalry game, Alabama's is not, against an opponent of
		// identical strength.
		"Georgia": seasonRecord("Georgia", "SEC",
			models.GameOutcome{Week: 2, Opponent: "Missouri", PointsFor: 30, PointsAgainst: 20, Location: models.LocationHome, Won: true},
			models.GameOutcome{Week: 9, Opponent: "Florida", PointsFor: 24, PointsAgainst: 17, Location: models.LocationNeutral, Won: true},
		),
		"Alabama": seasonRecord("Alabama", "SEC",
			models.GameOutcome{Week: 2, Opponent: "Missouri", PointsFor: 30, PointsAgainst: 20, Location: models.LocationHome, Won: true},
			models.GameOutcome{Week: 9, Opponent: "Kentucky", PointsFor: 24, PointsAgainst: 17, Location: models.LocationNeutral, Won: true},
		),
		"Missouri": paddedRecord("Missouri", "SEC", 6, 2, 80),
		"Florida":  paddedRecord("Florida", "SEC", 5, 3, 40),
		"Kentucky": paddedRecord("Kentucky", "SEC", 5, 3, 40),
	}

	entries := engine.Rank(records)
	byTeam := make(map[string]Entry)
	for _, e := range entries {
		byTeam[e.Team] = e
	}

	assert.Greater(t, byTeam["Georgia"].AdjustedTotal, byTeam["Alabama"].AdjustedTotal)
	assert.Less(t, byTeam["Georgia"].Position, byTeam["Alabama"].Position)
	assert.InDelta(t, rivalryTier1Bonus, byTeam["Georgia"].AdjustedTotal-byTeam["Alabama"].AdjustedTotal, 0.02)
}

func TestEngine_LossesSubtractFromTotal(t *testing.T) {
	engine := newTestEngine()

	records := map[string]*models.TeamSeasonRecord{
		"Vanderbilt": seasonRecord("Vanderbilt", "SEC",
			models.GameOutcome{Week: 1, Opponent: "Texas", PointsFor: 10, PointsAgainst: 31, Location: models.LocationAway, Won: false},
		),
	}

	entries := engine.Rank(records)
	require.Len(t, entries, 1)
	assert.Equal(t, -0.8, entries[0].AdjustedTotal)
	assert.Zero(t, entries[0].VictoryPoints)
}

func TestEngine_StableAlphabeticalTieBreak(t *testing.T) {
	engine := newTestEngine()

	records := map[string]*models.TeamSeasonRecord{
		"Clemson": seasonRecord("Clemson", "ACC"),
		"Auburn":  seasonRecord("Auburn", "SEC"),
		"Baylor":  seasonRecord("Baylor", "Big 12"),
	}

	entries := engine.Rank(records)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"Auburn", "Baylor", "Clemson"},
		[]string{entries[0].Team, entries[1].Team, entries[2].Team})
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestEngine_HeadToHead(t *testing.T) {
	engine := newTestEngine()

	winner := seasonRecord("Oregon", "Big Ten",
		models.GameOutcome{Week: 7, Opponent: "USC", PointsFor: 28, PointsAgainst: 14, Location: models.LocationHome, Won: true},
	)
	loser := seasonRecord("USC", "Big Ten",
		models.GameOutcome{Week: 7, Opponent: "Oregon", PointsFor: 14, PointsAgainst: 28, Location: models.LocationAway, Won: false},
	)
	stranger := seasonRecord("Iowa", "Big Ten")

	assert.Equal(t, 1, engine.headToHead(winner, loser))
	assert.Equal(t, -1, engine.headToHead(loser, winner))
	assert.Equal(t, 0, engine.headToHead(winner, stranger))
	assert.Equal(t, 0, engine.headToHead(nil, winner))
}

func TestEngine_TemporalWeightScalesVictoryPoints(t *testing.T) {
	registry := NewRegistry()
	quality := NewQualityEstimator(registry, time.Minute)
	victory := NewVictoryCalculator(registry, quality)
	weights := NewTemporalWeightTable()
	engine := NewEngine(registry, quality, victory, weights)

	records := map[string]*models.TeamSeasonRecord{
		"Texas": seasonRecord("Texas", "SEC",
			models.GameOutcome{Week: 1, Opponent: "Ohio State", PointsFor: 24, PointsAgainst: 21, Location: models.LocationAway, Won: true},
		),
		"Ohio State": paddedRecord("Ohio State", "Big Ten", 7, 1, 120),
	}

	baseline := engine.Rank(records)
	weights.Set(1, WeightFloor)
	discounted := engine.Rank(records)

	var base, disc Entry
	for _, e := range baseline {
		if e.Team == "Texas" {
			base = e
		}
	}
	for _, e := range discounted {
		if e.Team == "Texas" {
			disc = e
		}
	}

	assert.Greater(t, base.VictoryPoints, disc.VictoryPoints)
	assert.InDelta(t, base.VictoryPoints*WeightFloor, disc.VictoryPoints, 0.02)
}

func TestEngine_TeamDetail(t *testing.T) {
	engine := newTestEngine()
	records := NewAggregator(NewRegistry()).Aggregate(2025, testGames())

	entry, details, ok := engine.TeamDetail("Georgia", records)
	require.True(t, ok)
	assert.Equal(t, "Georgia", entry.Team)
	assert.Positive(t, entry.Position)
	require.Len(t, details, 4)
	for _, d := range details {
		assert.True(t, d.Outcome.Won)
		assert.Positive(t, d.Value.Total)
	}

	_, _, ok = engine.TeamDetail("Podunk Tech", records)
	assert.False(t, ok)
}
