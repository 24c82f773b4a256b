package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Location of a game from one team's perspective.
const (
	LocationHome    = "home"
	LocationAway    = "away"
	LocationNeutral = "neutral"
)

// GameOutcome is one entry in a team's ordered result log.
type GameOutcome struct {
	Week          int    `json:"week"`
	Opponent      string `json:"opponent"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	Location      string `json:"location"`
	Won           bool   `json:"won"`
	Overtime      bool   `json:"overtime"`
	FCSOpponent   bool   `json:"fcs_opponent"`
}

// Margin is positive for a win, negative for a loss.
func (o GameOutcome) Margin() int {
	return o.PointsFor - o.PointsAgainst
}

// GameOutcomeList is stored as a JSONB column, ordered by week.
type GameOutcomeList []GameOutcome

// Scan implements the sql.Scanner interface for JSONB
func (l *GameOutcomeList) Scan(value interface{}) error {
	if value == nil {
		*l = GameOutcomeList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into GameOutcomeList", value)
	}

	var result []GameOutcome
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}

	*l = GameOutcomeList(result)
	return nil
}

// Value implements the driver.Valuer interface for JSONB
func (l GameOutcomeList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]GameOutcome{})
	}
	return json.Marshal(l)
}

// TeamSeasonRecord is the per-team aggregate owned by the stats aggregator.
// Ranking code reads it; only the aggregator writes it.
type TeamSeasonRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Season        int             `gorm:"not null;uniqueIndex:idx_record_team" json:"season"`
	Team          string          `gorm:"not null;uniqueIndex:idx_record_team" json:"team"`
	Conference    string          `json:"conference"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	RealWins      int             `json:"real_wins"` // FCS wins excluded
	FCSWins       int             `json:"fcs_wins"`
	PointsFor     int             `json:"points_for"`
	PointsAgainst int             `json:"points_against"`
	HomeWins      int             `json:"home_wins"`
	RoadWins      int             `json:"road_wins"`
	MarginTotal   int             `json:"margin_total"`
	Outcomes      GameOutcomeList `gorm:"type:jsonb" json:"outcomes"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (TeamSeasonRecord) TableName() string {
	return "team_season_records"
}

// GamesPlayed returns the number of completed games.
func (r *TeamSeasonRecord) GamesPlayed() int {
	return r.Wins + r.Losses
}

// PointDiffPerGame returns average scoring margin, 0 before any games.
func (r *TeamSeasonRecord) PointDiffPerGame() float64 {
	played := r.GamesPlayed()
	if played == 0 {
		return 0
	}
	return float64(r.PointsFor-r.PointsAgainst) / float64(played)
}

// BowlEligible requires six real (non-FCS) wins.
func (r *TeamSeasonRecord) BowlEligible() bool {
	return r.RealWins >= 6
}
