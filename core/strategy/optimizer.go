// Package strategy enumerates feasible pit-stop strategies and ranks them
// by predicted total race time. Enumeration is demand-driven: sequences and
// stint lengths are walked with callbacks, only the scored candidates are
// materialized and only the top-K survive.
package strategy

import (
	"math"
	"sort"

	"github.com/pitwall/pitwall/core/model"
)

type lapRange struct {
	lo, hi int
}

// Optimize searches compound sequences and stint lengths for the given race
// and returns up to cfg.TopK candidates sorted ascending by predicted time,
// plus the number of candidates evaluated. An empty result is a normal
// outcome: it means no feasible strategy exists for the inputs.
func Optimize(
	models map[model.Compound]model.CompoundModel,
	raceLaps int,
	trackLengthKM float64,
	condition model.RaceCondition,
	cfg Config,
) ([]model.StrategyCandidate, int) {
	pool := compoundPool(condition, models)
	if len(pool) == 0 {
		return nil, 0
	}
	if condition == model.ConditionDry && len(pool) < 2 {
		return nil, 0
	}

	var candidates []model.StrategyCandidate
	evaluated := 0
	maxStints := cfg.MaxStops + 1
	for stints := 2; stints <= maxStints; stints++ {
		walkSequences(pool, stints, func(seq []model.Compound) {
			if !validSequence(seq, condition) {
				return
			}
			ranges := lengthRanges(seq, models, cfg)
			walkLengths(ranges, raceLaps, cfg.StepLaps, func(lengths []int) {
				evaluated++
				candidates = append(candidates, model.StrategyCandidate{
					Compounds:             append([]model.Compound(nil), seq...),
					StintLaps:             append([]int(nil), lengths...),
					Stops:                 stints - 1,
					PredictedTotalTimeSec: scoreStrategy(seq, lengths, models, trackLengthKM, cfg.PitLossSec),
				})
			})
		})
	}

	// Stable sort keeps the first-generated candidate ahead on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PredictedTotalTimeSec < candidates[j].PredictedTotalTimeSec
	})
	if len(candidates) > cfg.TopK {
		candidates = candidates[:cfg.TopK]
	}
	return candidates, evaluated
}

// compoundPool returns the compounds eligible for the race condition that
// also have a fitted model, preserving soft-to-hard order.
func compoundPool(condition model.RaceCondition, models map[model.Compound]model.CompoundModel) []model.Compound {
	var eligible []model.Compound
	switch condition {
	case model.ConditionWet:
		eligible = model.WetCompounds
	case model.ConditionMixed:
		eligible = append(append([]model.Compound(nil), model.DryCompounds...), model.WetCompounds...)
	default:
		eligible = model.DryCompounds
	}
	var pool []model.Compound
	for _, c := range eligible {
		if _, ok := models[c]; ok {
			pool = append(pool, c)
		}
	}
	return pool
}

// validSequence enforces the dry-race rule that at least two distinct dry
// compounds must be used.
func validSequence(seq []model.Compound, condition model.RaceCondition) bool {
	if condition != model.ConditionDry {
		return true
	}
	distinct := make(map[model.Compound]struct{}, 2)
	for _, c := range seq {
		if !c.IsWet() {
			distinct[c] = struct{}{}
		}
	}
	return len(distinct) >= 2
}

// lengthRanges computes the allowed stint-lap range per position: a fixed
// margin around the compound's modeled window, floored at MinStintLaps.
func lengthRanges(seq []model.Compound, models map[model.Compound]model.CompoundModel, cfg Config) []lapRange {
	ranges := make([]lapRange, len(seq))
	for i, c := range seq {
		window := models[c].WindowLaps
		lo := window - cfg.MarginLaps
		if lo < cfg.MinStintLaps {
			lo = cfg.MinStintLaps
		}
		hi := window + cfg.MarginLaps
		if hi < lo {
			hi = lo
		}
		ranges[i] = lapRange{lo: lo, hi: hi}
	}
	return ranges
}

// walkSequences visits every ordered sequence (with repetition) of length n
// over the pool, in lexicographic pool order.
func walkSequences(pool []model.Compound, n int, visit func([]model.Compound)) {
	idx := make([]int, n)
	seq := make([]model.Compound, n)
	for {
		for i, j := range idx {
			seq[i] = pool[j]
		}
		visit(seq)

		pos := n - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(pool) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return
		}
	}
}

// walkLengths enumerates stint-length combinations over the given ranges
// that sum to total exactly. Interior positions step by the configured
// stride; the final position absorbs the exact remainder. Branches whose
// remaining total cannot be reached by the remaining positions are pruned.
func walkLengths(ranges []lapRange, total, step int, visit func([]int)) {
	n := len(ranges)
	if n == 0 {
		return
	}
	if step < 1 {
		step = 1
	}

	// Suffix sums of range bounds for pruning.
	minRem := make([]int, n+1)
	maxRem := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		minRem[i] = minRem[i+1] + ranges[i].lo
		maxRem[i] = maxRem[i+1] + ranges[i].hi
	}

	lengths := make([]int, n)
	var rec func(pos, remaining int)
	rec = func(pos, remaining int) {
		if pos == n-1 {
			if remaining >= ranges[pos].lo && remaining <= ranges[pos].hi {
				lengths[pos] = remaining
				visit(lengths)
			}
			return
		}
		for l := ranges[pos].lo; l <= ranges[pos].hi; l += step {
			rest := remaining - l
			if rest < minRem[pos+1] || rest > maxRem[pos+1] {
				continue
			}
			lengths[pos] = l
			rec(pos+1, rest)
		}
	}
	rec(0, total)
}

// scoreStrategy predicts the total race time of one candidate: per stint,
// the fresh-tire pace plus linear degradation per lap on tire age, plus the
// fixed pit loss per stop.
func scoreStrategy(
	seq []model.Compound,
	lengths []int,
	models map[model.Compound]model.CompoundModel,
	trackLengthKM, pitLossSec float64,
) float64 {
	total := 0.0
	for i, c := range seq {
		m := models[c]
		n := float64(lengths[i])
		slopePerLap := m.SlopeSecPerKM * trackLengthKM
		total += n*m.FreshLapTimeSec + slopePerLap*n*(n-1)/2
	}
	total += pitLossSec * float64(len(seq)-1)
	return math.Round(total*1000) / 1000
}
