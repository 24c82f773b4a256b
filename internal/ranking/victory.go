package ranking

import (
	"math"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

// Location multipliers for a win.
const (
	locationMultHome    = 1.0
	locationMultAway    = 1.3
	locationMultNeutral = 1.15
)

// FCS wins are policy-capped: they can never meaningfully move a ranking.
// The base strength plus the capped margin bonus saturates at the hard cap
// for any margin of ten or more.
const (
	fcsBaseQuality    = 0.8
	fcsMarginBonusCap = 0.2
	fcsValueCap       = 1.0
)

// VictoryValue is the scored breakdown of a single win.
type VictoryValue struct {
	OpponentQuality float64 `json:"opponent_quality"`
	LocationMult    float64 `json:"location_mult"`
	MarginBonus     float64 `json:"margin_bonus"`
	ConferenceBonus float64 `json:"conference_bonus"`
	RivalryBonus    float64 `json:"rivalry_bonus"`
	Total           float64 `json:"total"`
}

// VictoryCalculator scores individual wins. Losses are worth exactly zero;
// the ranking engine accounts for losses through a separate record factor.
type VictoryCalculator struct {
	registry *Registry
	quality  *QualityEstimator
}

func NewVictoryCalculator(registry *Registry, quality *QualityEstimator) *VictoryCalculator {
	return &VictoryCalculator{registry: registry, quality: quality}
}

// Value scores one game outcome from the perspective team's side. The
// records map supplies opponent aggregates for quality estimation.
func (c *VictoryCalculator) Value(team string, outcome models.GameOutcome, records map[string]*models.TeamSeasonRecord) VictoryValue {
	if !outcome.Won {
		return VictoryValue{}
	}

	if outcome.FCSOpponent || c.registry.IsFCS(outcome.Opponent) {
		return c.fcsValue(outcome)
	}

	quality := c.quality.Estimate(outcome.Opponent, records[outcome.Opponent])

	locationMult := locationMultHome
	switch outcome.Location {
	case models.LocationAway:
		locationMult = locationMultAway
	case models.LocationNeutral:
		locationMult = locationMultNeutral
	}

	marginBonus := marginBonus(outcome.Margin())
	confBonus := c.conferenceBonus(team, outcome.Opponent)
	rivalryBonus := c.registry.RivalryBonus(team, outcome.Opponent)

	total := round2(quality*locationMult + marginBonus + confBonus + rivalryBonus)

	return VictoryValue{
		OpponentQuality: quality,
		LocationMult:    locationMult,
		MarginBonus:     marginBonus,
		ConferenceBonus: confBonus,
		RivalryBonus:    rivalryBonus,
		Total:           total,
	}
}

// fcsValue applies the FCS special case: home-rate location multiplier,
// tightly capped margin bonus, no conference or rivalry credit, and a hard
// cap on the final value.
func (c *VictoryCalculator) fcsValue(outcome models.GameOutcome) VictoryValue {
	quality := fcsBaseQuality
	marginBonus := math.Min(0.02*float64(outcome.Margin()), fcsMarginBonusCap)

	total := round2(quality*locationMultHome + marginBonus)
	if total > fcsValueCap {
		total = fcsValueCap
	}

	return VictoryValue{
		OpponentQuality: quality,
		LocationMult:    locationMultHome,
		MarginBonus:     marginBonus,
		Total:           total,
	}
}

// marginBonus is piecewise-linear with diminishing returns past one, two,
// and three scores.
func marginBonus(margin int) float64 {
	m := float64(margin)
	switch {
	case m <= 0:
		return 0
	case m <= 7:
		return 0.1 * m
	case m <= 14:
		return 0.7 + 0.08*(m-7)
	case m <= 21:
		return 1.26 + 0.04*(m-14)
	default:
		return 1.54 + 0.02*(m-21)
	}
}

func (c *VictoryCalculator) conferenceBonus(team, opponent string) float64 {
	teamClass := c.registry.Class(team)
	oppClass := c.registry.Class(opponent)

	if teamClass == ClassPower4 && oppClass == ClassPower4 {
		return 0.3
	}
	if teamClass == ClassGroupOf5 && oppClass == ClassPower4 {
		return 0.5
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
