package tiremodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall/pitwall/core/model"
)

func TestBuildOverstayTable(t *testing.T) {
	models := map[model.Compound]model.CompoundModel{
		model.CompoundSoft: {Compound: model.CompoundSoft, SlopeSecPerKM: 0.05},
		model.CompoundHard: {Compound: model.CompoundHard, SlopeSecPerKM: 0.0},
	}

	table := BuildOverstayTable(models, 5.0, 10)
	require.Len(t, table, 2)

	soft := table[model.CompoundSoft]
	require.Len(t, soft, 10)
	assert.Equal(t, 1, soft[0].ExtraLap)
	assert.InDelta(t, 0.25, soft[0].IncrementalDeltaSec, 1e-9)
	assert.InDelta(t, 0.5, soft[1].IncrementalDeltaSec, 1e-9)
	assert.InDelta(t, 0.75, soft[1].CumulativeDeltaSec, 1e-9)

	for compound, rows := range table {
		prev := 0.0
		for _, row := range rows {
			assert.GreaterOrEqual(t, row.CumulativeDeltaSec, prev, compound)
			prev = row.CumulativeDeltaSec
		}
	}
}
