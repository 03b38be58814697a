package tiremodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall/pitwall/core/model"
)

func testTarget() Target {
	return Target{
		Driver:        "VER",
		Team:          "Red Bull Racing",
		TrackType:     model.TrackMedium,
		TrackLengthKM: 5.0,
	}
}

func testConfig() FitConfig {
	cfg := FitConfig{}
	cfg.SetDefaults()
	return cfg
}

func lap(driver, team string, compound model.Compound, stint int, life, lapTime, weight float64) model.LapRecord {
	return model.LapRecord{
		Year:           2025,
		EventName:      "Test Grand Prix",
		Driver:         driver,
		Team:           team,
		TyreLifeLaps:   life,
		TyreLifeKM:     life * 5.0,
		TrackLengthKM:  5.0,
		Compound:       compound,
		Stint:          stint,
		TrackType:      model.TrackMedium,
		IsWet:          compound.IsWet(),
		LapTimeSeconds: lapTime,
		DataWeight:     weight,
		DataSource:     "test",
	}
}

// linearStint builds one stint whose lap times rise linearly with tire age.
func linearStint(driver, team string, compound model.Compound, laps int, base, perLap float64) []model.LapRecord {
	var out []model.LapRecord
	for i := 1; i <= laps; i++ {
		out = append(out, lap(driver, team, compound, 1, float64(i), base+perLap*float64(i), 1.0))
	}
	return out
}

func TestBuildCompoundModels_LinearFit(t *testing.T) {
	// 0.25 s/lap on a 5 km track is 0.05 s/km.
	records := linearStint("VER", "Red Bull Racing", model.CompoundSoft, 8, 90, 0.25)

	models := BuildCompoundModels(records, testTarget(), testConfig())
	require.Contains(t, models, model.CompoundSoft)
	m := models[model.CompoundSoft]

	assert.InDelta(t, 0.05, m.SlopeSecPerKM, 1e-6)
	assert.Equal(t, 0.0, m.InterceptSec) // clamped, fit intercept is negative
	assert.InDelta(t, 24.0, m.WindowKM, 1e-6)
	assert.Equal(t, 5, m.WindowLaps)
	assert.InDelta(t, 90.25, m.FreshLapTimeSec, 1e-9)
	assert.Equal(t, 8, m.SampleSize)
}

func TestBuildCompoundModels_DefaultSlopeOnSparseData(t *testing.T) {
	records := linearStint("VER", "Red Bull Racing", model.CompoundMedium, 3, 91, 0.4)

	models := BuildCompoundModels(records, testTarget(), testConfig())
	require.Contains(t, models, model.CompoundMedium)
	m := models[model.CompoundMedium]

	assert.Equal(t, 0.03, m.SlopeSecPerKM)
	assert.Equal(t, 0.0, m.InterceptSec)
	// 1.2/0.03 = 40 km, clamped to the observed P90 of tyre life (15 km).
	assert.InDelta(t, 15.0, m.WindowKM, 1e-9)
	assert.Equal(t, 3, m.WindowLaps)
}

func TestBuildCompoundModels_FlatStintFallsBackToQuantileWindow(t *testing.T) {
	var records []model.LapRecord
	for i := 1; i <= 8; i++ {
		records = append(records, lap("VER", "Red Bull Racing", model.CompoundHard, 1, float64(i), 92, 1.0))
	}

	models := BuildCompoundModels(records, testTarget(), testConfig())
	require.Contains(t, models, model.CompoundHard)
	m := models[model.CompoundHard]

	assert.Equal(t, 0.0, m.SlopeSecPerKM)
	// Window comes from the P75 of observed tyre life, not from the slope.
	assert.InDelta(t, 30.0, m.WindowKM, 1e-9)
	assert.Equal(t, 6, m.WindowLaps)
}

func TestBuildCompoundModels_WetExperienceDiscount(t *testing.T) {
	records := linearStint("VER", "Red Bull Racing", model.CompoundIntermediate, 8, 100, 0.25)

	tgt := testTarget()
	tgt.WetExperienceKM = 1000 // discount 0.5, capped at 0.2
	models := BuildCompoundModels(records, tgt, testConfig())
	require.Contains(t, models, model.CompoundIntermediate)

	assert.InDelta(t, 0.05*0.8, models[model.CompoundIntermediate].SlopeSecPerKM, 1e-6)
}

func TestBuildCompoundModels_ScopingFallback(t *testing.T) {
	// Only a teammate's laps exist: the team scope must apply.
	teammate := linearStint("PER", "Red Bull Racing", model.CompoundSoft, 8, 90, 0.25)
	models := BuildCompoundModels(teammate, testTarget(), testConfig())
	assert.Contains(t, models, model.CompoundSoft)

	// Only an unrelated team's laps exist: the whole dataset applies.
	rivals := linearStint("HAM", "Mercedes", model.CompoundSoft, 8, 90, 0.25)
	models = BuildCompoundModels(rivals, testTarget(), testConfig())
	assert.Contains(t, models, model.CompoundSoft)
}

func TestBuildCompoundModels_Invariants(t *testing.T) {
	var records []model.LapRecord
	records = append(records, linearStint("VER", "Red Bull Racing", model.CompoundSoft, 10, 90, 0.3)...)
	records = append(records, linearStint("VER", "Red Bull Racing", model.CompoundMedium, 4, 91, 0.2)...)
	records = append(records, linearStint("PER", "Red Bull Racing", model.CompoundHard, 2, 93, 0.0)...)

	models := BuildCompoundModels(records, testTarget(), testConfig())
	require.NotEmpty(t, models)
	for compound, m := range models {
		assert.GreaterOrEqual(t, m.SlopeSecPerKM, 0.0, compound)
		assert.GreaterOrEqual(t, m.InterceptSec, 0.0, compound)
		assert.GreaterOrEqual(t, m.WindowLaps, 1, compound)
		assert.GreaterOrEqual(t, m.SampleSize, 1, compound)
	}
}

func TestBuildCompoundModels_EmptyHistory(t *testing.T) {
	models := BuildCompoundModels(nil, testTarget(), testConfig())
	assert.Empty(t, models)
}
