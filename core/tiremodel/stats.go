package tiremodel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// weightedMedian returns the first value whose cumulative weight reaches
// half the total weight, scanning values in ascending order. With equal
// weights and an odd sample size this is the ordinary median.
func weightedMedian(values, weights []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	total := 0.0
	for _, w := range weights {
		total += w
	}
	cutoff := total / 2
	cum := 0.0
	for _, i := range order {
		cum += weights[i]
		if cum >= cutoff {
			return values[i]
		}
	}
	return values[order[len(order)-1]]
}

// quantile returns the empirical p-quantile of xs.
func quantile(p float64, xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
