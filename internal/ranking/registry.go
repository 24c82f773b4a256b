package ranking

import (
	"strings"
)

// Classification buckets drive the conference-context bonus.
type Classification string

const (
	ClassPower4      Classification = "P4"
	ClassGroupOf5    Classification = "G5"
	ClassIndependent Classification = "Independent"
	ClassFCS         Classification = "FCS"
	ClassUnknown     Classification = "Unknown"
)

// Rivalry bonus values. Tier-1 pairs are the historic trophy games; any
// other listed pair gets the lesser bonus.
const (
	rivalryTier1Bonus = 1.0
	rivalryTier2Bonus = 0.6
)

// Registry is the static team universe: team -> conference, conference ->
// classification, plus the rivalry graph. Loaded once, read-only after.
type Registry struct {
	teamConference map[string]string
	conferences    map[string][]string
	classes        map[string]Classification
	rivalries      map[[2]string]float64
	noChampionship map[string]bool
}

var conferenceRosters = map[string][]string{
	"SEC": {
		"Alabama", "Auburn", "Arkansas", "Florida", "Georgia", "Kentucky",
		"LSU", "Ole Miss", "Mississippi State", "Missouri", "Oklahoma",
		"South Carolina", "Tennessee", "Texas", "Texas A&M", "Vanderbilt",
	},
	"Big Ten": {
		"Illinois", "Indiana", "Iowa", "Maryland", "Michigan",
		"Michigan State", "Minnesota", "Nebraska", "Northwestern",
		"Ohio State", "Oregon", "Penn State", "Purdue", "Rutgers",
		"UCLA", "USC", "Washington", "Wisconsin",
	},
	"Big 12": {
		"Arizona", "Arizona State", "Baylor", "BYU", "Cincinnati",
		"Colorado", "Houston", "Iowa State", "Kansas", "Kansas State",
		"Oklahoma State", "TCU", "Texas Tech", "UCF", "Utah", "West Virginia",
	},
	"ACC": {
		"Boston College", "California", "Clemson", "Duke", "Florida State",
		"Georgia Tech", "Louisville", "Miami", "North Carolina",
		"NC State", "Pittsburgh", "SMU", "Stanford", "Syracuse",
		"Virginia", "Virginia Tech", "Wake Forest",
	},
	"American": {
		"Army", "Charlotte", "East Carolina", "Memphis", "Navy",
		"North Texas", "South Florida", "Temple", "Tulane", "Tulsa", "UTSA",
	},
	"Mountain West": {
		"Air Force", "Boise State", "Colorado State", "Fresno State",
		"Hawaii", "Nevada", "New Mexico", "San Diego State",
		"San Jose State", "UNLV", "Utah State", "Wyoming",
	},
	"MAC": {
		"Akron", "Ball State", "Bowling Green", "Buffalo",
		"Central Michigan", "Eastern Michigan", "Kent State", "Miami (OH)",
		"Northern Illinois", "Ohio", "Toledo", "Western Michigan",
	},
	"Sun Belt": {
		"Appalachian State", "Arkansas State", "Coastal Carolina",
		"Georgia Southern", "Georgia State", "James Madison", "Louisiana",
		"Marshall", "Old Dominion", "South Alabama", "Texas State", "Troy",
	},
	"Conference USA": {
		"FIU", "Jacksonville State", "Kennesaw State", "Liberty",
		"Louisiana Tech", "Middle Tennessee", "New Mexico State",
		"Sam Houston", "UTEP", "Western Kentucky",
	},
	// Two-team leftover league, no round-robin, excluded from champ logic.
	"Pac-12": {
		"Oregon State", "Washington State",
	},
	"Independent": {
		"Notre Dame", "UConn", "UMass",
	},
}

var conferenceClasses = map[string]Classification{
	"SEC":            ClassPower4,
	"Big Ten":        ClassPower4,
	"Big 12":         ClassPower4,
	"ACC":            ClassPower4,
	"American":       ClassGroupOf5,
	"Mountain West":  ClassGroupOf5,
	"MAC":            ClassGroupOf5,
	"Sun Belt":       ClassGroupOf5,
	"Conference USA": ClassGroupOf5,
	"Pac-12":         ClassGroupOf5,
	"Independent":    ClassIndependent,
}

// Historic trophy games. Order-independent.
var tier1Rivalries = [][2]string{
	{"Ohio State", "Michigan"},
	{"Alabama", "Auburn"},
	{"Texas", "Oklahoma"},
	{"Army", "Navy"},
	{"USC", "Notre Dame"},
	{"Georgia", "Florida"},
	{"Ole Miss", "Mississippi State"},
	{"Oregon", "Washington"},
	{"Florida", "Florida State"},
	{"Clemson", "South Carolina"},
}

var tier2Rivalries = [][2]string{
	{"Texas", "Texas A&M"},
	{"Michigan", "Michigan State"},
	{"Iowa", "Iowa State"},
	{"Georgia", "Georgia Tech"},
	{"Kentucky", "Louisville"},
	{"Utah", "BYU"},
	{"Oregon", "Oregon State"},
	{"Washington", "Washington State"},
	{"Kansas", "Kansas State"},
	{"Virginia", "Virginia Tech"},
	{"North Carolina", "NC State"},
	{"Pittsburgh", "West Virginia"},
	{"LSU", "Texas A&M"},
	{"Tennessee", "Alabama"},
	{"Miami", "Florida State"},
	{"Boise State", "Fresno State"},
	{"Toledo", "Bowling Green"},
	{"Tulane", "Memphis"},
	{"Appalachian State", "Georgia Southern"},
	{"Notre Dame", "Stanford"},
}

// NewRegistry builds the lookup tables from the static rosters.
func NewRegistry() *Registry {
	r := &Registry{
		teamConference: make(map[string]string),
		conferences:    make(map[string][]string, len(conferenceRosters)),
		classes:        conferenceClasses,
		rivalries:      make(map[[2]string]float64),
		noChampionship: map[string]bool{
			"Independent": true,
			"Pac-12":      true,
		},
	}

	for conf, teams := range conferenceRosters {
		r.conferences[conf] = teams
		for _, team := range teams {
			r.teamConference[normalizeTeam(team)] = conf
		}
	}

	for _, pair := range tier1Rivalries {
		r.rivalries[rivalryKey(pair[0], pair[1])] = rivalryTier1Bonus
	}
	for _, pair := range tier2Rivalries {
		key := rivalryKey(pair[0], pair[1])
		if _, exists := r.rivalries[key]; !exists {
			r.rivalries[key] = rivalryTier2Bonus
		}
	}

	return r
}

func normalizeTeam(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}

func rivalryKey(a, b string) [2]string {
	na, nb := normalizeTeam(a), normalizeTeam(b)
	if na > nb {
		na, nb = nb, na
	}
	return [2]string{na, nb}
}

// Conference returns the team's conference, or "Unknown" for teams outside
// the registry. Unknown teams stay rankable but are excluded from
// championship and bowl tie-in logic.
func (r *Registry) Conference(team string) string {
	if r.IsFCS(team) {
		return "FCS"
	}
	if conf, ok := r.teamConference[normalizeTeam(team)]; ok {
		return conf
	}
	return "Unknown"
}

// Class returns the classification for a team.
func (r *Registry) Class(team string) Classification {
	if r.IsFCS(team) {
		return ClassFCS
	}
	conf, ok := r.teamConference[normalizeTeam(team)]
	if !ok {
		return ClassUnknown
	}
	if class, ok := r.classes[conf]; ok {
		return class
	}
	return ClassUnknown
}

// IsFCS reports whether the opponent carries the FCS flag. Matching is
// case-insensitive on the "(FCS)" suffix.
func (r *Registry) IsFCS(team string) bool {
	return strings.Contains(strings.ToLower(team), "(fcs)")
}

// RivalryBonus returns the order-independent rivalry bonus for a pair.
func (r *Registry) RivalryBonus(a, b string) float64 {
	return r.rivalries[rivalryKey(a, b)]
}

// Conferences returns every conference name in the registry.
func (r *Registry) Conferences() []string {
	names := make([]string, 0, len(r.conferences))
	for conf := range r.conferences {
		names = append(names, conf)
	}
	return names
}

// ConferenceTeams returns the roster for a conference.
func (r *Registry) ConferenceTeams(conference string) []string {
	return r.conferences[conference]
}

// HasChampionship reports whether a conference crowns a champion.
// Independents and leagues without a round-robin structure do not.
func (r *Registry) HasChampionship(conference string) bool {
	if conference == "Unknown" || conference == "FCS" {
		return false
	}
	if r.noChampionship[conference] {
		return false
	}
	_, ok := r.conferences[conference]
	return ok
}
