package postseason

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/ranking"
)

const (
	fieldSize      = 12
	byeSeeds       = 4
	autoQualifiers = 5
)

// BracketSlot is one seeded team. Seeds 1-4 carry first-round byes.
type BracketSlot struct {
	Seed  int    `json:"seed"`
	Team  string `json:"team"`
	IsBye bool   `json:"is_bye"`
}

// FirstRoundGame pairs two non-bye seeds.
type FirstRoundGame struct {
	HighSeed BracketSlot `json:"high_seed"`
	LowSeed  BracketSlot `json:"low_seed"`
}

// Bracket is the result of one generation pass. Complete reports whether a
// full 12-team field with all four first-round games was produced; callers
// always get a structurally valid value either way.
type Bracket struct {
	Slots          []BracketSlot    `json:"slots"`
	FirstRound     []FirstRoundGame `json:"first_round"`
	AutoQualifiers []string         `json:"auto_qualifiers"`
	Complete       bool             `json:"complete"`
}

func emptyBracket() Bracket {
	return Bracket{
		Slots:          []BracketSlot{},
		FirstRound:     []FirstRoundGame{},
		AutoQualifiers: []string{},
	}
}

// BracketGenerator seeds the 12-team playoff from a ranking pass.
type BracketGenerator struct {
	registry *ranking.Registry
	logger   *logrus.Logger
}

func NewBracketGenerator(registry *ranking.Registry, logger *logrus.Logger) *BracketGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BracketGenerator{registry: registry, logger: logger}
}

// Generate builds the bracket: the top five distinct conference champions
// are automatic qualifiers, swapped into the top-12 field for the
// lowest-ranked at-large teams when needed. Internal failures never
// propagate; the caller receives an empty bracket instead.
func (g *BracketGenerator) Generate(entries []ranking.Entry) (bracket Bracket) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.WithField("panic", r).Error("Bracket generation failed, returning empty bracket")
			bracket = emptyBracket()
		}
	}()

	if len(entries) == 0 {
		return emptyBracket()
	}

	champions := g.conferenceChampions(entries)
	aqs := topChampions(champions, entries)

	field := make([]ranking.Entry, 0, fieldSize)
	for _, entry := range entries {
		if len(field) == fieldSize {
			break
		}
		field = append(field, entry)
	}

	field = g.swapInQualifiers(field, aqs, entries)

	// Re-seed the final field by adjusted total.
	sort.SliceStable(field, func(i, j int) bool {
		return field[i].AdjustedTotal > field[j].AdjustedTotal
	})

	slots := make([]BracketSlot, 0, len(field))
	for i, entry := range field {
		slots = append(slots, BracketSlot{
			Seed:  i + 1,
			Team:  entry.Team,
			IsBye: i < byeSeeds,
		})
	}

	// First-round pairings 5v12, 6v11, 7v10, 8v9; unpairable games are
	// omitted when the field is short.
	games := make([]FirstRoundGame, 0, 4)
	for high := byeSeeds + 1; high <= 8; high++ {
		low := fieldSize + byeSeeds + 1 - high // 17 - high
		if low > len(slots) || high > len(slots) {
			continue
		}
		games = append(games, FirstRoundGame{
			HighSeed: slots[high-1],
			LowSeed:  slots[low-1],
		})
	}

	return Bracket{
		Slots:          slots,
		FirstRound:     games,
		AutoQualifiers: aqs,
		Complete:       len(slots) == fieldSize && len(games) == 4,
	}
}

// conferenceChampions maps each championship-eligible conference to its
// highest-ranked team.
func (g *BracketGenerator) conferenceChampions(entries []ranking.Entry) map[string]ranking.Entry {
	champions := make(map[string]ranking.Entry)
	for _, entry := range entries {
		if !g.registry.HasChampionship(entry.Conference) {
			continue
		}
		if _, taken := champions[entry.Conference]; !taken {
			champions[entry.Conference] = entry
		}
	}
	return champions
}

// topChampions returns the five best-ranked distinct conference champions.
func topChampions(champions map[string]ranking.Entry, entries []ranking.Entry) []string {
	aqs := make([]string, 0, autoQualifiers)
	for _, entry := range entries {
		if len(aqs) == autoQualifiers {
			break
		}
		champ, ok := champions[entry.Conference]
		if ok && champ.Team == entry.Team {
			aqs = append(aqs, entry.Team)
		}
	}
	return aqs
}

// swapInQualifiers replaces the lowest-ranked non-qualifier in the field
// with each automatic qualifier missing from it, searching from the bottom
// of the field upward.
func (g *BracketGenerator) swapInQualifiers(field []ranking.Entry, aqs []string, entries []ranking.Entry) []ranking.Entry {
	inField := make(map[string]bool, len(field))
	for _, entry := range field {
		inField[entry.Team] = true
	}
	isAQ := make(map[string]bool, len(aqs))
	for _, team := range aqs {
		isAQ[team] = true
	}

	byTeam := make(map[string]ranking.Entry, len(entries))
	for _, entry := range entries {
		byTeam[entry.Team] = entry
	}

	for _, team := range aqs {
		if inField[team] {
			continue
		}
		for i := len(field) - 1; i >= 0; i-- {
			if isAQ[field[i].Team] {
				continue
			}
			g.logger.WithFields(logrus.Fields{
				"in":  team,
				"out": field[i].Team,
			}).Info("Swapping automatic qualifier into playoff field")
			delete(inField, field[i].Team)
			field[i] = byTeam[team]
			inField[team] = true
			break
		}
	}

	return field
}
