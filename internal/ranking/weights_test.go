package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporalWeightTable_DefaultsToOne(t *testing.T) {
	table := NewTemporalWeightTable()

	assert.Equal(t, WeightDefault, table.Weight(1))
	assert.Equal(t, WeightDefault, table.Weight(15))
}

func TestTemporalWeightTable_SetClamps(t *testing.T) {
	table := NewTemporalWeightTable()

	table.Set(3, 0.85)
	table.Set(4, 0.1)
	table.Set(5, 2.0)

	assert.Equal(t, 0.85, table.Weight(3))
	assert.Equal(t, WeightFloor, table.Weight(4))
	assert.Equal(t, WeightCeiling, table.Weight(5))
}

func TestTemporalWeightTable_LoadReplacesTable(t *testing.T) {
	table := NewTemporalWeightTable()
	table.Set(1, 0.7)

	table.Load(map[int]float64{2: 1.1, 3: 5.0})

	assert.Equal(t, WeightDefault, table.Weight(1))
	assert.Equal(t, 1.1, table.Weight(2))
	assert.Equal(t, WeightCeiling, table.Weight(3))
}

func TestTemporalWeightTable_SnapshotIsACopy(t *testing.T) {
	table := NewTemporalWeightTable()
	table.Set(2, 0.9)

	snap := table.Snapshot()
	snap[2] = 0.6

	assert.Equal(t, 0.9, table.Weight(2))
}
