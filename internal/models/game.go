package models

import (
	"fmt"
	"strings"
	"time"
)

// Game is a completed result. Rows are append-only; a game is never edited
// once recorded.
type Game struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Season      int       `gorm:"not null;uniqueIndex:idx_games_matchup" json:"season"`
	Week        int       `gorm:"not null;uniqueIndex:idx_games_matchup" json:"week"`
	HomeTeam    string    `gorm:"not null;uniqueIndex:idx_games_matchup" json:"home_team"`
	AwayTeam    string    `gorm:"not null;uniqueIndex:idx_games_matchup" json:"away_team"`
	HomeScore   int       `gorm:"not null" json:"home_score"`
	AwayScore   int       `gorm:"not null" json:"away_score"`
	NeutralSite bool      `gorm:"default:false" json:"neutral_site"`
	Overtime    bool      `gorm:"default:false" json:"overtime"`
	GameDate    time.Time `json:"game_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Game) TableName() string {
	return "games"
}

// Validate rejects malformed results before they reach the engine.
func (g *Game) Validate() error {
	if strings.TrimSpace(g.HomeTeam) == "" || strings.TrimSpace(g.AwayTeam) == "" {
		return fmt.Errorf("both teams are required")
	}
	if strings.EqualFold(g.HomeTeam, g.AwayTeam) {
		return fmt.Errorf("a team cannot play itself")
	}
	if g.HomeScore < 0 || g.AwayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	if g.HomeScore == g.AwayScore {
		return fmt.Errorf("ties are not a valid final result")
	}
	if g.Week < 1 || g.Week > 20 {
		return fmt.Errorf("week %d out of range", g.Week)
	}
	return nil
}

// Winner returns the winning team name.
func (g *Game) Winner() string {
	if g.HomeScore > g.AwayScore {
		return g.HomeTeam
	}
	return g.AwayTeam
}

// Loser returns the losing team name.
func (g *Game) Loser() string {
	if g.HomeScore > g.AwayScore {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// Margin returns the winner's margin of victory.
func (g *Game) Margin() int {
	m := g.HomeScore - g.AwayScore
	if m < 0 {
		m = -m
	}
	return m
}

// Involves reports whether team played in this game (case-insensitive).
func (g *Game) Involves(team string) bool {
	return strings.EqualFold(g.HomeTeam, team) || strings.EqualFold(g.AwayTeam, team)
}

// OpponentOf returns the other team, or "" if team did not play.
func (g *Game) OpponentOf(team string) string {
	if strings.EqualFold(g.HomeTeam, team) {
		return g.AwayTeam
	}
	if strings.EqualFold(g.AwayTeam, team) {
		return g.HomeTeam
	}
	return ""
}

// ScheduledGame is an upcoming game, used for bowl and eligibility windows.
type ScheduledGame struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Season   int       `gorm:"not null;index" json:"season"`
	Week     int       `gorm:"not null" json:"week"`
	HomeTeam string    `gorm:"not null" json:"home_team"`
	AwayTeam string    `gorm:"not null" json:"away_team"`
	Kickoff  time.Time `json:"kickoff"`
}

func (ScheduledGame) TableName() string {
	return "scheduled_games"
}
