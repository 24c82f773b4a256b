package ranking

import (
	"strings"
	"sync"
	"time"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

// Opponent quality bounds. FCS-tier opponents sit at the floor.
const (
	qualityFloor    = 0.5
	qualityCeiling  = 10.0
	qualityBaseline = 3.0
)

type qualitySnapshot struct {
	value      float64
	computedAt time.Time
}

// QualityEstimator produces a team's strength score for use in victory
// valuation. Quality is computed only from the team's already-finalized
// season aggregate, never from live victory values of the current ranking
// pass, so mutually-scheduled opponents can never recurse into each other.
// The one-pass lag this introduces is accepted by design.
type QualityEstimator struct {
	registry *Registry
	ttl      time.Duration

	mu        sync.RWMutex
	snapshots map[string]qualitySnapshot
}

func NewQualityEstimator(registry *Registry, ttl time.Duration) *QualityEstimator {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QualityEstimator{
		registry:  registry,
		ttl:       ttl,
		snapshots: make(map[string]qualitySnapshot),
	}
}

// Estimate returns the opponent's strength in [0.5, 10]. Snapshots are
// memoized for the estimator's validity window; a miss triggers a fresh
// bounded computation from the record, never a recursive call.
func (e *QualityEstimator) Estimate(team string, record *models.TeamSeasonRecord) float64 {
	key := strings.ToLower(team)

	e.mu.RLock()
	snap, ok := e.snapshots[key]
	e.mu.RUnlock()
	if ok && time.Since(snap.computedAt) < e.ttl {
		return snap.value
	}

	value := e.compute(team, record)

	e.mu.Lock()
	e.snapshots[key] = qualitySnapshot{value: value, computedAt: time.Now()}
	e.mu.Unlock()

	return value
}

// Reset clears all snapshots, starting a fresh pass.
func (e *QualityEstimator) Reset() {
	e.mu.Lock()
	e.snapshots = make(map[string]qualitySnapshot)
	e.mu.Unlock()
}

func (e *QualityEstimator) compute(team string, record *models.TeamSeasonRecord) float64 {
	if e.registry.IsFCS(team) {
		return qualityFloor
	}

	value := qualityBaseline

	if record != nil {
		value += 0.45 * float64(record.Wins)
		value -= 0.35 * float64(record.Losses)
		value += record.PointDiffPerGame() / 12.0
	}

	switch e.registry.Class(team) {
	case ClassPower4:
		value += 0.5
	case ClassGroupOf5:
		value -= 0.25
	case ClassUnknown:
		value -= 0.75
	}

	return clamp(value, qualityFloor, qualityCeiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
