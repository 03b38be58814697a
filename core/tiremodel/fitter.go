// Package tiremodel fits per-compound degradation models from the weighted
// historical dataset and derives the useful stint window of each compound.
package tiremodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pitwall/pitwall/core/model"
)

// Target scopes the fit to a driver and team at a specific track character.
type Target struct {
	Driver          string
	Team            string
	TrackType       model.TrackType
	TrackLengthKM   float64
	WetExperienceKM float64
}

const slopeEpsilon = 1e-6

// stintKey groups laps belonging to one stint of one car at one event.
type stintKey struct {
	Year     int
	Event    string
	Driver   string
	Team     string
	Stint    int
	Compound model.Compound
}

// BuildCompoundModels fits one degradation model per compound present in
// the scoped data. Compounds without any history are absent from the result.
func BuildCompoundModels(records []model.LapRecord, tgt Target, cfg FitConfig) map[model.Compound]model.CompoundModel {
	models := make(map[model.Compound]model.CompoundModel)
	if len(records) == 0 {
		return models
	}

	scoped := scopeRecords(records, tgt)
	deltas := lapDeltas(scoped)

	for _, compound := range model.ValidCompounds {
		idx := filterIndices(scoped, func(r model.LapRecord) bool { return r.Compound == compound })
		if len(idx) == 0 {
			continue
		}

		// Prefer laps from the target's track character when there are
		// enough of them to carry a fit.
		inTrack := filterIndices(scoped, func(r model.LapRecord) bool {
			return r.Compound == compound && r.TrackType == tgt.TrackType
		})
		if len(inTrack) >= cfg.TrackTypeMinRecords {
			idx = inTrack
		}

		x := make([]float64, len(idx))
		y := make([]float64, len(idx))
		w := make([]float64, len(idx))
		for i, j := range idx {
			x[i] = scoped[j].TyreLifeKM
			y[i] = deltas[j]
			w[i] = dataWeight(scoped[j])
		}

		var slope, intercept float64
		if len(idx) >= cfg.FitMinRecords && floats.Max(x)-floats.Min(x) > 0 {
			intercept, slope = stat.LinearRegression(x, y, w, false)
		} else {
			slope, intercept = cfg.DefaultSlopeSecPerKM, 0
		}
		// Degradation never improves lap time by model construction.
		slope = math.Max(0, slope)
		intercept = math.Max(0, intercept)

		if compound.IsWet() && tgt.WetExperienceKM > 0 {
			reduction := math.Min(cfg.WetDiscountCap, tgt.WetExperienceKM/cfg.WetDiscountKM)
			slope *= 1 - reduction
		}

		models[compound] = deriveModel(compound, scoped, idx, slope, intercept, x, tgt, cfg)
	}
	return models
}

func deriveModel(
	compound model.Compound,
	scoped []model.LapRecord,
	idx []int,
	slope, intercept float64,
	life []float64,
	tgt Target,
	cfg FitConfig,
) model.CompoundModel {
	var windowKM float64
	if slope > slopeEpsilon {
		windowKM = cfg.LapDeltaWindowSec / slope
	} else {
		windowKM = quantile(0.75, life)
	}
	// Never extrapolate the window past the data support.
	if p90 := quantile(0.9, life); windowKM > p90 {
		windowKM = p90
	}
	windowLaps := int(math.Round(windowKM / tgt.TrackLengthKM))
	if windowLaps < 1 {
		windowLaps = 1
	}

	fresh := filterSubset(scoped, idx, func(r model.LapRecord) bool { return r.TyreLifeLaps <= 2 })
	if len(fresh) == 0 {
		fresh = idx
	}
	times := make([]float64, len(fresh))
	weights := make([]float64, len(fresh))
	for i, j := range fresh {
		times[i] = scoped[j].LapTimeSeconds
		weights[i] = dataWeight(scoped[j])
	}

	return model.CompoundModel{
		Compound:        compound,
		SlopeSecPerKM:   slope,
		InterceptSec:    intercept,
		WindowKM:        windowKM,
		WindowLaps:      windowLaps,
		FreshLapTimeSec: weightedMedian(times, weights),
		SampleSize:      len(idx),
	}
}

// scopeRecords narrows the dataset to the most specific non-empty scope.
// The chain is ordered from most to least specific so a model can always be
// attempted whenever any history exists.
func scopeRecords(records []model.LapRecord, tgt Target) []model.LapRecord {
	scopes := []func(model.LapRecord) bool{
		func(r model.LapRecord) bool { return r.Driver == tgt.Driver && r.Team == tgt.Team },
		func(r model.LapRecord) bool { return r.Team == tgt.Team },
		func(model.LapRecord) bool { return true },
	}
	for _, keep := range scopes {
		var out []model.LapRecord
		for _, r := range records {
			if keep(r) {
				out = append(out, r)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// lapDeltas subtracts the per-stint baseline (stint-minimum lap time) from
// every lap. This removes fuel-load and track-evolution drift within a stint
// so the remaining signal isolates tire wear.
func lapDeltas(records []model.LapRecord) []float64 {
	baselines := make(map[stintKey]float64, len(records))
	for _, r := range records {
		k := stintKey{r.Year, r.EventName, r.Driver, r.Team, r.Stint, r.Compound}
		if base, ok := baselines[k]; !ok || r.LapTimeSeconds < base {
			baselines[k] = r.LapTimeSeconds
		}
	}
	deltas := make([]float64, len(records))
	for i, r := range records {
		k := stintKey{r.Year, r.EventName, r.Driver, r.Team, r.Stint, r.Compound}
		deltas[i] = r.LapTimeSeconds - baselines[k]
	}
	return deltas
}

func dataWeight(r model.LapRecord) float64 {
	if r.DataWeight <= 0 || math.IsNaN(r.DataWeight) {
		return 1.0
	}
	return r.DataWeight
}

func filterIndices(records []model.LapRecord, keep func(model.LapRecord) bool) []int {
	var idx []int
	for i, r := range records {
		if keep(r) {
			idx = append(idx, i)
		}
	}
	return idx
}

func filterSubset(records []model.LapRecord, idx []int, keep func(model.LapRecord) bool) []int {
	var out []int
	for _, j := range idx {
		if keep(records[j]) {
			out = append(out, j)
		}
	}
	return out
}
