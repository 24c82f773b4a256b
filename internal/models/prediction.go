package models

import (
	"time"

	"github.com/lib/pq"
)

// PredictionLog records one game prediction. The predicted half is written
// once at log time; the resolved half is written once when the actual result
// lands. Rows are never otherwise mutated.
type PredictionLog struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PublicID        string         `gorm:"type:uuid;uniqueIndex" json:"public_id"`
	Season          int            `gorm:"not null;index" json:"season"`
	Week            int            `gorm:"not null;index" json:"week"`
	Team1           string         `gorm:"not null" json:"team1"`
	Team2           string         `gorm:"not null" json:"team2"`
	PredictedWinner string         `gorm:"not null" json:"predicted_winner"`
	PredictedMargin float64        `json:"predicted_margin"`
	WinProbability  float64        `json:"win_probability"`
	Confidence      float64        `json:"confidence"`
	Methodology     string         `json:"methodology"`
	Factors         pq.StringArray `gorm:"type:text[]" json:"factors"`

	// Resolution half, write-once
	Resolved      bool       `gorm:"default:false;index" json:"resolved"`
	ActualWinner  *string    `json:"actual_winner,omitempty"`
	ActualMargin  *float64   `json:"actual_margin,omitempty"`
	WinnerCorrect *bool      `json:"winner_correct,omitempty"`
	MarginError   *float64   `json:"margin_error,omitempty"`
	AccuracyScore *float64   `json:"accuracy_score,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (PredictionLog) TableName() string {
	return "prediction_logs"
}

// Matches reports whether this prediction covers the given matchup,
// in either team order.
func (p *PredictionLog) Matches(team1, team2 string) bool {
	return (p.Team1 == team1 && p.Team2 == team2) ||
		(p.Team1 == team2 && p.Team2 == team1)
}

// TemporalWeight is the persisted per-week multiplier applied to victory
// values. Mutated only by the accuracy tracker's recalibration step.
type TemporalWeight struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Season    int       `gorm:"not null;uniqueIndex:idx_weight_week" json:"season"`
	Week      int       `gorm:"not null;uniqueIndex:idx_weight_week" json:"week"`
	Weight    float64   `gorm:"not null;default:1.0" json:"weight"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TemporalWeight) TableName() string {
	return "temporal_weights"
}
