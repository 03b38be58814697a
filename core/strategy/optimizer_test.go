package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall/pitwall/core/model"
)

func searchConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()
	return cfg
}

func dryModels() map[model.Compound]model.CompoundModel {
	return map[model.Compound]model.CompoundModel{
		model.CompoundSoft:   {Compound: model.CompoundSoft, FreshLapTimeSec: 95.0, SlopeSecPerKM: 0.05, WindowLaps: 12},
		model.CompoundMedium: {Compound: model.CompoundMedium, FreshLapTimeSec: 96.5, SlopeSecPerKM: 0.03, WindowLaps: 20},
		model.CompoundHard:   {Compound: model.CompoundHard, FreshLapTimeSec: 98.0, SlopeSecPerKM: 0.015, WindowLaps: 30},
	}
}

func TestOptimize_DryRaceScenario(t *testing.T) {
	models := dryModels()
	raceLaps := 57
	best, evaluated := Optimize(models, raceLaps, 5.412, model.ConditionDry, searchConfig())

	require.NotEmpty(t, best)
	assert.LessOrEqual(t, len(best), 5)
	assert.Greater(t, evaluated, 0)

	for _, cand := range best {
		total := 0
		for _, laps := range cand.StintLaps {
			total += laps
		}
		assert.Equal(t, raceLaps, total)
		assert.Equal(t, len(cand.Compounds), len(cand.StintLaps))
		assert.Equal(t, len(cand.Compounds)-1, cand.Stops)

		distinct := map[model.Compound]struct{}{}
		for _, c := range cand.Compounds {
			distinct[c] = struct{}{}
		}
		assert.GreaterOrEqual(t, len(distinct), 2)
	}

	for i := 1; i < len(best); i++ {
		assert.LessOrEqual(t, best[i-1].PredictedTotalTimeSec, best[i].PredictedTotalTimeSec)
	}
}

func TestOptimize_DryPoolTooSmall(t *testing.T) {
	models := map[model.Compound]model.CompoundModel{
		model.CompoundSoft: {Compound: model.CompoundSoft, FreshLapTimeSec: 95, SlopeSecPerKM: 0.05, WindowLaps: 12},
	}
	best, evaluated := Optimize(models, 57, 5.412, model.ConditionDry, searchConfig())
	assert.Empty(t, best)
	assert.Zero(t, evaluated)
}

func TestOptimize_EmptyPool(t *testing.T) {
	// Dry models only, wet race: the pool is empty.
	best, _ := Optimize(dryModels(), 57, 5.412, model.ConditionWet, searchConfig())
	assert.Empty(t, best)
}

func TestOptimize_WetRaceUsesWetPool(t *testing.T) {
	models := map[model.Compound]model.CompoundModel{
		model.CompoundIntermediate: {Compound: model.CompoundIntermediate, FreshLapTimeSec: 105, SlopeSecPerKM: 0.02, WindowLaps: 25},
		model.CompoundWet:          {Compound: model.CompoundWet, FreshLapTimeSec: 110, SlopeSecPerKM: 0.01, WindowLaps: 30},
	}
	best, _ := Optimize(models, 50, 5.0, model.ConditionWet, searchConfig())
	require.NotEmpty(t, best)
	for _, cand := range best {
		for _, c := range cand.Compounds {
			assert.True(t, c.IsWet())
		}
	}
}

func TestOptimize_NoFeasibleSum(t *testing.T) {
	// Windows so short that no stint combination reaches the race distance.
	models := map[model.Compound]model.CompoundModel{
		model.CompoundSoft:   {Compound: model.CompoundSoft, FreshLapTimeSec: 95, SlopeSecPerKM: 0.1, WindowLaps: 5},
		model.CompoundMedium: {Compound: model.CompoundMedium, FreshLapTimeSec: 96, SlopeSecPerKM: 0.08, WindowLaps: 5},
	}
	best, _ := Optimize(models, 200, 5.0, model.ConditionDry, searchConfig())
	assert.Empty(t, best)
}

func TestOptimize_MixedConditionAllowsSingleCompoundType(t *testing.T) {
	models := map[model.Compound]model.CompoundModel{
		model.CompoundIntermediate: {Compound: model.CompoundIntermediate, FreshLapTimeSec: 105, SlopeSecPerKM: 0.02, WindowLaps: 25},
		model.CompoundSoft:         {Compound: model.CompoundSoft, FreshLapTimeSec: 95, SlopeSecPerKM: 0.05, WindowLaps: 20},
	}
	best, _ := Optimize(models, 44, 5.0, model.ConditionMixed, searchConfig())
	require.NotEmpty(t, best)
}

func TestWalkLengths_ExactSumAndStep(t *testing.T) {
	ranges := []lapRange{{lo: 5, hi: 15}, {lo: 5, hi: 15}}
	var seen [][]int
	walkLengths(ranges, 20, 2, func(lengths []int) {
		seen = append(seen, append([]int(nil), lengths...))
	})
	require.NotEmpty(t, seen)
	for _, lengths := range seen {
		assert.Equal(t, 20, lengths[0]+lengths[1])
		// Interior positions advance from the range floor in strides of 2.
		assert.Equal(t, 1, lengths[0]%2)
	}
}

func TestWalkSequences_CountsWithRepetition(t *testing.T) {
	pool := []model.Compound{model.CompoundSoft, model.CompoundMedium, model.CompoundHard}
	count := 0
	walkSequences(pool, 2, func([]model.Compound) { count++ })
	assert.Equal(t, 9, count)
}

func TestValidSequence_DryRequiresTwoDistinct(t *testing.T) {
	assert.False(t, validSequence([]model.Compound{model.CompoundSoft, model.CompoundSoft}, model.ConditionDry))
	assert.True(t, validSequence([]model.Compound{model.CompoundSoft, model.CompoundHard}, model.ConditionDry))
	assert.True(t, validSequence([]model.Compound{model.CompoundWet, model.CompoundWet}, model.ConditionWet))
}

func TestScoreStrategy_PenalizesStops(t *testing.T) {
	models := dryModels()
	seq := []model.Compound{model.CompoundSoft, model.CompoundMedium}
	two := scoreStrategy(seq, []int{20, 20}, models, 5.0, 21)
	three := scoreStrategy(
		[]model.Compound{model.CompoundSoft, model.CompoundMedium, model.CompoundSoft},
		[]int{20, 20, 0}, models, 5.0, 21)
	// Same laps driven, one more stop costs one more pit loss at least.
	assert.Greater(t, three, two)
}
