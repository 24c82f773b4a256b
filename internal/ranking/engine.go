package ranking

import (
	"sort"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

// Blend of summed victory value and raw record in the adjusted total.
// Monotonic in wins by construction.
const (
	winFactor  = 1.5
	lossFactor = 0.8
)

// Entry is one row of a ranking pass. Derived, recomputed on demand; the
// seed is filled in only by bracket generation.
type Entry struct {
	Position      int     `json:"position"`
	Team          string  `json:"team"`
	Conference    string  `json:"conference"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	RealWins      int     `json:"real_wins"`
	VictoryPoints float64 `json:"victory_points"`
	AdjustedTotal float64 `json:"adjusted_total"`
	Seed          int     `json:"seed,omitempty"`
}

// WinDetail pairs a game outcome with its scored value, for per-team views.
type WinDetail struct {
	Outcome models.GameOutcome `json:"outcome"`
	Value   VictoryValue       `json:"value"`
}

// Engine turns a set of season records into an ordered ranking. A pass is a
// pure function of the records and the temporal weight table; re-running it
// on unchanged inputs yields an identical list.
type Engine struct {
	registry *Registry
	quality  *QualityEstimator
	victory  *VictoryCalculator
	weights  *TemporalWeightTable
}

func NewEngine(registry *Registry, quality *QualityEstimator, victory *VictoryCalculator, weights *TemporalWeightTable) *Engine {
	return &Engine{
		registry: registry,
		quality:  quality,
		victory:  victory,
		weights:  weights,
	}
}

// Rank computes adjusted totals for every team and orders them. Tie-breaks:
// adjusted total desc, total wins desc, head-to-head winner first, then the
// stable alphabetical base ordering.
func (e *Engine) Rank(records map[string]*models.TeamSeasonRecord) []Entry {
	teams := make([]string, 0, len(records))
	for team := range records {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	entries := make([]Entry, 0, len(teams))
	for _, team := range teams {
		entries = append(entries, e.score(team, records))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.AdjustedTotal != b.AdjustedTotal {
			return a.AdjustedTotal > b.AdjustedTotal
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		switch e.headToHead(records[a.Team], records[b.Team]) {
		case 1:
			return true
		case -1:
			return false
		}
		return false
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// TeamDetail returns a team's entry plus the scored breakdown of each win.
func (e *Engine) TeamDetail(team string, records map[string]*models.TeamSeasonRecord) (Entry, []WinDetail, bool) {
	rec, ok := records[team]
	if !ok {
		return Entry{}, nil, false
	}

	entry := e.score(team, records)
	details := make([]WinDetail, 0, rec.Wins)
	for _, outcome := range rec.Outcomes {
		if !outcome.Won {
			continue
		}
		details = append(details, WinDetail{
			Outcome: outcome,
			Value:   e.victory.Value(team, outcome, records),
		})
	}

	for _, ranked := range e.Rank(records) {
		if ranked.Team == team {
			entry.Position = ranked.Position
			break
		}
	}

	return entry, details, true
}

func (e *Engine) score(team string, records map[string]*models.TeamSeasonRecord) Entry {
	rec := records[team]

	var victorySum float64
	for _, outcome := range rec.Outcomes {
		if !outcome.Won {
			continue
		}
		value := e.victory.Value(team, outcome, records)
		victorySum += value.Total * e.weights.Weight(outcome.Week)
	}

	adjusted := round2(victorySum + winFactor*float64(rec.Wins) - lossFactor*float64(rec.Losses))

	return Entry{
		Team:          team,
		Conference:    rec.Conference,
		Wins:          rec.Wins,
		Losses:        rec.Losses,
		RealWins:      rec.RealWins,
		VictoryPoints: round2(victorySum),
		AdjustedTotal: adjusted,
	}
}

// headToHead returns 1 if a beat b more often than b beat a, -1 for the
// reverse, 0 when they never met or split.
func (e *Engine) headToHead(a, b *models.TeamSeasonRecord) int {
	if a == nil || b == nil {
		return 0
	}
	aWins, bWins := 0, 0
	for _, outcome := range a.Outcomes {
		if outcome.Opponent != b.Team {
			continue
		}
		if outcome.Won {
			aWins++
		} else {
			bWins++
		}
	}
	if aWins > bWins {
		return 1
	}
	if bWins > aWins {
		return -1
	}
	return 0
}
