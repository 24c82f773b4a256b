package ranking

import (
	"sync"
)

// Temporal weight bounds. Weights reflect data confidence per week: early
// results carry less signal than late-season ones until the accuracy
// tracker says otherwise.
const (
	WeightFloor   = 0.6
	WeightCeiling = 1.3
	WeightDefault = 1.0
)

// TemporalWeightTable maps week -> multiplier applied to victory values.
// Process-scoped state with an explicit lifecycle: loaded at startup,
// mutated only by the accuracy tracker's recalibration, read everywhere
// else. Passed as an explicit dependency, never reached as a global.
type TemporalWeightTable struct {
	mu      sync.RWMutex
	weights map[int]float64
}

func NewTemporalWeightTable() *TemporalWeightTable {
	return &TemporalWeightTable{weights: make(map[int]float64)}
}

// Weight returns the multiplier for a week, defaulting to 1.0.
func (t *TemporalWeightTable) Weight(week int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if w, ok := t.weights[week]; ok {
		return w
	}
	return WeightDefault
}

// Set stores a clamped weight for a week.
func (t *TemporalWeightTable) Set(week int, weight float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.weights[week] = clamp(weight, WeightFloor, WeightCeiling)
}

// Load replaces the whole table, clamping each entry.
func (t *TemporalWeightTable) Load(weights map[int]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.weights = make(map[int]float64, len(weights))
	for week, w := range weights {
		t.weights[week] = clamp(w, WeightFloor, WeightCeiling)
	}
}

// Snapshot returns a copy of the current table.
func (t *TemporalWeightTable) Snapshot() map[int]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[int]float64, len(t.weights))
	for week, w := range t.weights {
		out[week] = w
	}
	return out
}
