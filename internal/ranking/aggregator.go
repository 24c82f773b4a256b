package ranking

import (
	"sort"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

// Aggregator folds completed games into per-team season records. It is the
// only writer of TeamSeasonRecord contents; given the same game list it
// always produces the same records.
type Aggregator struct {
	registry *Registry
}

func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Aggregate rebuilds season records for every FBS team that appears in the
// game list. FCS opponents are tracked inside other teams' records but do
// not get records of their own.
func (a *Aggregator) Aggregate(season int, games []models.Game) map[string]*models.TeamSeasonRecord {
	ordered := make([]models.Game, len(games))
	copy(ordered, games)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Week != ordered[j].Week {
			return ordered[i].Week < ordered[j].Week
		}
		return ordered[i].GameDate.Before(ordered[j].GameDate)
	})

	records := make(map[string]*models.TeamSeasonRecord)

	for _, game := range ordered {
		a.fold(records, season, game, game.HomeTeam)
		a.fold(records, season, game, game.AwayTeam)
	}

	return records
}

// AggregateTeam rebuilds a single team's record from its games.
func (a *Aggregator) AggregateTeam(season int, team string, games []models.Game) *models.TeamSeasonRecord {
	all := a.Aggregate(season, games)
	if rec, ok := all[team]; ok {
		return rec
	}
	return &models.TeamSeasonRecord{
		Season:     season,
		Team:       team,
		Conference: a.registry.Conference(team),
		Outcomes:   models.GameOutcomeList{},
	}
}

func (a *Aggregator) fold(records map[string]*models.TeamSeasonRecord, season int, game models.Game, team string) {
	if a.registry.IsFCS(team) {
		return
	}

	rec, ok := records[team]
	if !ok {
		rec = &models.TeamSeasonRecord{
			Season:     season,
			Team:       team,
			Conference: a.registry.Conference(team),
			Outcomes:   models.GameOutcomeList{},
		}
		records[team] = rec
	}

	isHome := game.HomeTeam == team
	pointsFor, pointsAgainst := game.HomeScore, game.AwayScore
	opponent := game.AwayTeam
	location := models.LocationHome
	if !isHome {
		pointsFor, pointsAgainst = game.AwayScore, game.HomeScore
		opponent = game.HomeTeam
		location = models.LocationAway
	}
	if game.NeutralSite {
		location = models.LocationNeutral
	}

	won := pointsFor > pointsAgainst
	fcsOpponent := a.registry.IsFCS(opponent)

	rec.PointsFor += pointsFor
	rec.PointsAgainst += pointsAgainst
	rec.MarginTotal += pointsFor - pointsAgainst

	if won {
		rec.Wins++
		if fcsOpponent {
			rec.FCSWins++
		} else {
			rec.RealWins++
		}
		switch location {
		case models.LocationHome:
			rec.HomeWins++
		case models.LocationAway:
			rec.RoadWins++
		}
	} else {
		rec.Losses++
	}

	rec.Outcomes = append(rec.Outcomes, models.GameOutcome{
		Week:          game.Week,
		Opponent:      opponent,
		PointsFor:     pointsFor,
		PointsAgainst: pointsAgainst,
		Location:      location,
		Won:           won,
		Overtime:      game.Overtime,
		FCSOpponent:   fcsOpponent,
	})
}
