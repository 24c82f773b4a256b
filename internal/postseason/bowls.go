package postseason

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
)

// BowlAssignment is one bowl with its filled slots. A team appears in at
// most one assignment per projection pass.
type BowlAssignment struct {
	BowlID         string   `json:"bowl_id"`
	Name           string   `json:"name"`
	Tier           string   `json:"tier"`
	Location       string   `json:"location"`
	TieIns         []string `json:"tie_ins"`
	SelectionOrder int      `json:"selection_order"`
	Payout         float64  `json:"payout"`
	Teams          []string `json:"teams"`
}

// ChampionshipGame pairs a conference champion against the next-best team
// from the same conference.
type ChampionshipGame struct {
	Conference string `json:"conference"`
	Champion   string `json:"champion"`
	Challenger string `json:"challenger"`
}

// ProjectionResult is the full bowl slate for one pass.
type ProjectionResult struct {
	Bowls             []BowlAssignment   `json:"bowls"`
	ChampionshipGames []ChampionshipGame `json:"championship_games"`
	TeamsPlaced       int                `json:"teams_placed"`
}

func emptyProjection() ProjectionResult {
	return ProjectionResult{
		Bowls:             []BowlAssignment{},
		ChampionshipGames: []ChampionshipGame{},
	}
}

// BowlAssigner greedily fills bowl slots in selection order: tie-in
// conferences first, then the at-large pool by rank.
type BowlAssigner struct {
	registry *ranking.Registry
	bowls    []BowlDef
	logger   *logrus.Logger
}

func NewBowlAssigner(registry *ranking.Registry, bowls []BowlDef, logger *logrus.Logger) *BowlAssigner {
	if len(bowls) == 0 {
		bowls = DefaultBowls
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BowlAssigner{registry: registry, bowls: bowls, logger: logger}
}

// Project assigns bowl-eligible teams (six real wins, not already in the
// playoff field) to the slate. Internal failures degrade to an empty
// projection rather than propagating.
func (a *BowlAssigner) Project(entries []ranking.Entry, records map[string]*models.TeamSeasonRecord, cfpField []string) (result ProjectionResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("panic", r).Error("Bowl projection failed, returning empty slate")
			result = emptyProjection()
		}
	}()

	inCFP := make(map[string]bool, len(cfpField))
	for _, team := range cfpField {
		inCFP[team] = true
	}

	// Eligible pool in rank order.
	pool := make([]ranking.Entry, 0, len(entries))
	for _, entry := range entries {
		rec := records[entry.Team]
		if rec == nil || !rec.BowlEligible() || inCFP[entry.Team] {
			continue
		}
		pool = append(pool, entry)
	}

	ordered := make([]BowlDef, len(a.bowls))
	copy(ordered, a.bowls)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SelectionOrder < ordered[j].SelectionOrder
	})

	used := make(map[string]bool)
	assignments := make([]BowlAssignment, 0, len(ordered))
	placed := 0

	for _, bowl := range ordered {
		assignment := BowlAssignment{
			BowlID:         bowl.ID,
			Name:           bowl.Name,
			Tier:           bowl.Tier,
			Location:       bowl.Location,
			TieIns:         bowl.TieIns,
			SelectionOrder: bowl.SelectionOrder,
			Payout:         bowl.Payout,
			Teams:          []string{},
		}

		// Tie-in conferences pick first, in contract order.
		for _, conf := range bowl.TieIns {
			if len(assignment.Teams) == bowl.TeamCount {
				break
			}
			if team, ok := takeFromConference(pool, used, conf); ok {
				assignment.Teams = append(assignment.Teams, team)
				used[team] = true
				placed++
			}
		}

		// Remaining slots go at-large, highest rank first.
		for len(assignment.Teams) < bowl.TeamCount {
			team, ok := takeAtLarge(pool, used)
			if !ok {
				break
			}
			assignment.Teams = append(assignment.Teams, team)
			used[team] = true
			placed++
		}

		assignments = append(assignments, assignment)
	}

	championships := a.championshipGames(entries)

	return ProjectionResult{
		Bowls:             assignments,
		ChampionshipGames: championships,
		TeamsPlaced:       placed,
	}
}

// championshipGames pairs each conference champion against the
// highest-ranked non-champion from the same conference. Conferences
// without a real championship game are skipped.
func (a *BowlAssigner) championshipGames(entries []ranking.Entry) []ChampionshipGame {
	games := make([]ChampionshipGame, 0)
	seen := make(map[string]string) // conference -> champion

	for _, entry := range entries {
		if !a.registry.HasChampionship(entry.Conference) {
			continue
		}
		champ, ok := seen[entry.Conference]
		if !ok {
			seen[entry.Conference] = entry.Team
			continue
		}
		// Second-ranked team in the conference: this is the challenger.
		alreadyPaired := false
		for _, g := range games {
			if g.Conference == entry.Conference {
				alreadyPaired = true
				break
			}
		}
		if !alreadyPaired {
			games = append(games, ChampionshipGame{
				Conference: entry.Conference,
				Champion:   champ,
				Challenger: entry.Team,
			})
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Conference < games[j].Conference
	})
	return games
}

func takeFromConference(pool []ranking.Entry, used map[string]bool, conference string) (string, bool) {
	for _, entry := range pool {
		if used[entry.Team] || entry.Conference != conference {
			continue
		}
		return entry.Team, true
	}
	return "", false
}

func takeAtLarge(pool []ranking.Entry, used map[string]bool) (string, bool) {
	for _, entry := range pool {
		if used[entry.Team] {
			continue
		}
		return entry.Team, true
	}
	return "", false
}
