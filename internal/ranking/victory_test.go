package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

func newTestCalculator() *VictoryCalculator {
	registry := NewRegistry()
	quality := NewQualityEstimator(registry, time.Minute)
	return NewVictoryCalculator(registry, quality)
}

func winOutcome(opponent string, pointsFor, pointsAgainst int, location string) models.GameOutcome {
	return models.GameOutcome{
		Week:          5,
		Opponent:      opponent,
		PointsFor:     pointsFor,
		PointsAgainst: pointsAgainst,
		Location:      location,
		Won:           pointsFor > pointsAgainst,
	}
}

func TestVictoryValue_LossIsZero(t *testing.T) {
	calc := newTestCalculator()

	outcome := winOutcome("Alabama", 10, 24, models.LocationHome)
	value := calc.Value("Georgia", outcome, nil)

	assert.Zero(t, value.Total)
	assert.Zero(t, value.OpponentQuality)
	assert.Zero(t, value.MarginBonus)
}

func TestVictoryValue_FCSHardCap(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name          string
		pointsFor     int
		pointsAgainst int
		expected      float64
	}{
		{"blowout saturates the cap", 45, 3, 1.0},
		{"three score margin hits the cap", 31, 21, 1.0},
		{"close win stays under the cap", 24, 21, 0.86},
		{"one point win", 17, 16, 0.82},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := winOutcome("North Dakota State (FCS)", tt.pointsFor, tt.pointsAgainst, models.LocationHome)
			value := calc.Value("Iowa", outcome, nil)

			assert.InDelta(t, tt.expected, value.Total, 0.001)
			assert.LessOrEqual(t, value.Total, 1.0)
			assert.Zero(t, value.ConferenceBonus)
			assert.Zero(t, value.RivalryBonus)
			assert.Equal(t, 1.0, value.LocationMult)
		})
	}
}

func TestVictoryValue_FCSIgnoresLocation(t *testing.T) {
	calc := newTestCalculator()

	home := calc.Value("Iowa", winOutcome("Montana (FCS)", 35, 7, models.LocationHome), nil)
	away := calc.Value("Iowa", winOutcome("Montana (FCS)", 35, 7, models.LocationAway), nil)

	assert.Equal(t, home.Total, away.Total)
}

func TestVictoryValue_LocationMultipliers(t *testing.T) {
	calc := newTestCalculator()

	// Vanderbilt with no record: baseline 3.0 plus the P4 bump.
	tests := []struct {
		location string
		mult     float64
	}{
		{models.LocationHome, 1.0},
		{models.LocationAway, 1.3},
		{models.LocationNeutral, 1.15},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			outcome := winOutcome("Vanderbilt", 24, 17, tt.location)
			value := calc.Value("Georgia", outcome, nil)

			assert.Equal(t, tt.mult, value.LocationMult)
			// quality 3.5, margin 7 -> 0.7, P4 vs P4 -> 0.3
			assert.InDelta(t, 3.5*tt.mult+0.7+0.3, value.Total, 0.01)
		})
	}
}

func TestVictoryValue_MarginBonusMonotonic(t *testing.T) {
	calc := newTestCalculator()

	prev := -1.0
	for margin := 1; margin <= 45; margin++ {
		outcome := winOutcome("Kansas", 20+margin, 20, models.LocationHome)
		value := calc.Value("Duke", outcome, nil)
		assert.GreaterOrEqual(t, value.Total, prev, "margin %d decreased the value", margin)
		prev = value.Total
	}
}

func TestMarginBonus_PiecewiseBreakpoints(t *testing.T) {
	tests := []struct {
		margin   int
		expected float64
	}{
		{0, 0},
		{3, 0.3},
		{7, 0.7},
		{10, 0.94},
		{14, 1.26},
		{21, 1.54},
		{28, 1.68},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, marginBonus(tt.margin), 0.001, "margin %d", tt.margin)
	}
}

func TestVictoryValue_ConferenceBonus(t *testing.T) {
	calc := newTestCalculator()

	// P4 beats P4
	p4 := calc.Value("Georgia", winOutcome("Clemson", 24, 17, models.LocationHome), nil)
	assert.Equal(t, 0.3, p4.ConferenceBonus)

	// G5 beats P4
	g5 := calc.Value("Boise State", winOutcome("Clemson", 24, 17, models.LocationHome), nil)
	assert.Equal(t, 0.5, g5.ConferenceBonus)

	// P4 beats G5
	down := calc.Value("Georgia", winOutcome("Tulane", 24, 17, models.LocationHome), nil)
	assert.Zero(t, down.ConferenceBonus)

	// G5 beats G5
	flat := calc.Value("Tulane", winOutcome("Memphis", 24, 17, models.LocationHome), nil)
	assert.Zero(t, flat.ConferenceBonus)
}

func TestVictoryValue_RivalryBonus(t *testing.T) {
	calc := newTestCalculator()

	tier1 := calc.Value("Ohio State", winOutcome("Michigan", 30, 24, models.LocationHome), nil)
	assert.Equal(t, 1.0, tier1.RivalryBonus)

	tier2 := calc.Value("Utah", winOutcome("BYU", 30, 24, models.LocationHome), nil)
	assert.Equal(t, 0.6, tier2.RivalryBonus)

	none := calc.Value("Georgia", winOutcome("Vanderbilt", 30, 24, models.LocationHome), nil)
	assert.Zero(t, none.RivalryBonus)
}

func TestRivalryBonus_Symmetric(t *testing.T) {
	registry := NewRegistry()

	pairs := [][2]string{
		{"Ohio State", "Michigan"},
		{"Alabama", "Auburn"},
		{"Utah", "BYU"},
		{"Army", "Navy"},
		{"Georgia", "Vanderbilt"}, // not rivals, still symmetric
	}
	for _, pair := range pairs {
		assert.Equal(t,
			registry.RivalryBonus(pair[0], pair[1]),
			registry.RivalryBonus(pair[1], pair[0]),
			"%s vs %s", pair[0], pair[1])
	}
}

func TestVictoryValue_RoundedToTwoDecimals(t *testing.T) {
	calc := newTestCalculator()

	outcome := winOutcome("Clemson", 27, 14, models.LocationNeutral)
	value := calc.Value("Georgia", outcome, nil)

	rounded := float64(int(value.Total*100+0.5)) / 100
	assert.InDelta(t, rounded, value.Total, 0.0001)
}
