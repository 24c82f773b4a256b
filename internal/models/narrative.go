package models

import (
	"time"

	"gorm.io/datatypes"
)

// NarrativeLog is an audit row for each AI narrative generation call, kept
// for diagnostics. The ranking engine never reads these back.
type NarrativeLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Season    int            `gorm:"index" json:"season"`
	Week      int            `json:"week"`
	Kind      string         `gorm:"not null" json:"kind"` // "rankings", "bracket"
	Request   datatypes.JSON `json:"request"`
	Response  datatypes.JSON `json:"response"`
	Succeeded bool           `json:"succeeded"`
	LatencyMS int64          `json:"latency_ms"`
	CreatedAt time.Time      `json:"created_at"`
}

func (NarrativeLog) TableName() string {
	return "narrative_logs"
}
