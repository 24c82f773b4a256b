package postseason

// BowlDef is one bowl's static contract: tier, venue, ordered conference
// tie-ins, and where it picks in the selection order. Immutable
// configuration data, loaded once.
type BowlDef struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Tier           string   `json:"tier"`
	Location       string   `json:"location"`
	TieIns         []string `json:"tie_ins"`
	SelectionOrder int      `json:"selection_order"`
	TeamCount      int      `json:"team_count"`
	Payout         float64  `json:"payout"` // millions per team
}

// DefaultBowls is the projection slate, ordered loosely by prestige. Teams
// already in the playoff field are skipped, so the New Year's Six bowls
// here fill with the best remaining teams.
var DefaultBowls = []BowlDef{
	{ID: "rose", Name: "Rose Bowl", Tier: "NY6", Location: "Pasadena, CA", TieIns: []string{"Big Ten", "SEC"}, SelectionOrder: 1, TeamCount: 2, Payout: 4.0},
	{ID: "sugar", Name: "Sugar Bowl", Tier: "NY6", Location: "New Orleans, LA", TieIns: []string{"SEC", "Big 12"}, SelectionOrder: 2, TeamCount: 2, Payout: 4.0},
	{ID: "orange", Name: "Orange Bowl", Tier: "NY6", Location: "Miami Gardens, FL", TieIns: []string{"ACC", "SEC"}, SelectionOrder: 3, TeamCount: 2, Payout: 4.0},
	{ID: "cotton", Name: "Cotton Bowl", Tier: "NY6", Location: "Arlington, TX", TieIns: []string{"Big 12", "Big Ten"}, SelectionOrder: 4, TeamCount: 2, Payout: 4.0},
	{ID: "fiesta", Name: "Fiesta Bowl", Tier: "NY6", Location: "Glendale, AZ", TieIns: []string{"Big 12", "ACC"}, SelectionOrder: 5, TeamCount: 2, Payout: 4.0},
	{ID: "peach", Name: "Peach Bowl", Tier: "NY6", Location: "Atlanta, GA", TieIns: []string{"American", "Mountain West"}, SelectionOrder: 6, TeamCount: 2, Payout: 4.0},
	{ID: "citrus", Name: "Citrus Bowl", Tier: "major", Location: "Orlando, FL", TieIns: []string{"SEC", "Big Ten"}, SelectionOrder: 7, TeamCount: 2, Payout: 2.75},
	{ID: "alamo", Name: "Alamo Bowl", Tier: "major", Location: "San Antonio, TX", TieIns: []string{"Big 12", "Big Ten"}, SelectionOrder: 8, TeamCount: 2, Payout: 2.4},
	{ID: "holiday", Name: "Holiday Bowl", Tier: "major", Location: "San Diego, CA", TieIns: []string{"ACC", "Big Ten"}, SelectionOrder: 9, TeamCount: 2, Payout: 1.7},
	{ID: "gator", Name: "Gator Bowl", Tier: "major", Location: "Jacksonville, FL", TieIns: []string{"ACC", "SEC"}, SelectionOrder: 10, TeamCount: 2, Payout: 1.6},
	{ID: "outback", Name: "ReliaQuest Bowl", Tier: "major", Location: "Tampa, FL", TieIns: []string{"SEC", "Big Ten"}, SelectionOrder: 11, TeamCount: 2, Payout: 1.5},
	{ID: "musiccity", Name: "Music City Bowl", Tier: "mid", Location: "Nashville, TN", TieIns: []string{"SEC", "Big Ten"}, SelectionOrder: 12, TeamCount: 2, Payout: 1.1},
	{ID: "lasvegas", Name: "Las Vegas Bowl", Tier: "mid", Location: "Las Vegas, NV", TieIns: []string{"Big Ten", "Mountain West"}, SelectionOrder: 13, TeamCount: 2, Payout: 1.0},
	{ID: "sunbowl", Name: "Sun Bowl", Tier: "mid", Location: "El Paso, TX", TieIns: []string{"ACC", "Big 12"}, SelectionOrder: 14, TeamCount: 2, Payout: 1.0},
	{ID: "libertybowl", Name: "Liberty Bowl", Tier: "mid", Location: "Memphis, TN", TieIns: []string{"Big 12", "SEC"}, SelectionOrder: 15, TeamCount: 2, Payout: 0.9},
	{ID: "military", Name: "Military Bowl", Tier: "mid", Location: "Annapolis, MD", TieIns: []string{"ACC", "American"}, SelectionOrder: 16, TeamCount: 2, Payout: 0.6},
	{ID: "fenway", Name: "Fenway Bowl", Tier: "mid", Location: "Boston, MA", TieIns: []string{"ACC", "American"}, SelectionOrder: 17, TeamCount: 2, Payout: 0.6},
	{ID: "boca", Name: "Boca Raton Bowl", Tier: "g5", Location: "Boca Raton, FL", TieIns: []string{"American", "MAC"}, SelectionOrder: 18, TeamCount: 2, Payout: 0.45},
	{ID: "frisco", Name: "Frisco Bowl", Tier: "g5", Location: "Frisco, TX", TieIns: []string{"American", "Mountain West"}, SelectionOrder: 19, TeamCount: 2, Payout: 0.45},
	{ID: "cure", Name: "Cure Bowl", Tier: "g5", Location: "Orlando, FL", TieIns: []string{"Sun Belt", "Conference USA"}, SelectionOrder: 20, TeamCount: 2, Payout: 0.4},
	{ID: "newmexico", Name: "New Mexico Bowl", Tier: "g5", Location: "Albuquerque, NM", TieIns: []string{"Mountain West", "Conference USA"}, SelectionOrder: 21, TeamCount: 2, Payout: 0.35},
	{ID: "camellia", Name: "Camellia Bowl", Tier: "g5", Location: "Montgomery, AL", TieIns: []string{"MAC", "Sun Belt"}, SelectionOrder: 22, TeamCount: 2, Payout: 0.3},
}
