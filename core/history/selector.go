package history

import (
	"context"
	"fmt"
	"sort"

	"github.com/pitwall/pitwall/core/model"
)

// Relevance weights per slice source. Recent form dominates, the same event
// a year earlier carries track-specific signal, the rest of the season fills
// in at base weight.
var recentWeights = []float64{3.0, 2.5, 2.0}

const (
	weightOlderCurrentSeason = 1.0
	weightSameRacePrevYear   = 2.5
	weightPrevSeasonTail     = 1.2

	sourceOlderCurrentSeason = "older_current_season"
	sourceSameRacePrevYear   = "same_race_prev_year"
	sourcePrevSeasonTail     = "fallback_prev_season_tail"

	prevSeasonTailSize = 5
)

// BuildSlices decides which past races to draw data from for the given
// target and assigns each a relevance weight. The previous-season fallback
// is not part of the returned list; the aggregator activates it only when
// none of these slices yields data.
func BuildSlices(ctx context.Context, p Provider, targetYear int, target Event) ([]model.RaceSlice, error) {
	schedule, err := p.Schedule(ctx, targetYear)
	if err != nil {
		return nil, fmt.Errorf("schedule %d: %w", targetYear, err)
	}

	var prior []Event
	for _, ev := range schedule {
		if ev.Round < target.Round {
			prior = append(prior, ev)
		}
	}
	sort.Slice(prior, func(i, j int) bool { return prior[i].Round < prior[j].Round })

	recent := len(recentWeights)
	if recent > len(prior) {
		recent = len(prior)
	}

	var slices []model.RaceSlice
	for i := 0; i < recent; i++ {
		ev := prior[len(prior)-1-i] // most recent first
		slices = append(slices, model.RaceSlice{
			Year:      targetYear,
			EventName: ev.Name,
			Weight:    recentWeights[i],
			Source:    fmt.Sprintf("prev_%d_race", i+1),
		})
	}
	for _, ev := range prior[:len(prior)-recent] {
		slices = append(slices, model.RaceSlice{
			Year:      targetYear,
			EventName: ev.Name,
			Weight:    weightOlderCurrentSeason,
			Source:    sourceOlderCurrentSeason,
		})
	}
	slices = append(slices, model.RaceSlice{
		Year:      targetYear - 1,
		EventName: target.Name,
		Weight:    weightSameRacePrevYear,
		Source:    sourceSameRacePrevYear,
	})
	return slices, nil
}

// fallbackSlices returns the tail of the previous season's schedule, used
// when no primary slice produced data (early season, cold cache).
func fallbackSlices(ctx context.Context, p Provider, targetYear int) ([]model.RaceSlice, error) {
	schedule, err := p.Schedule(ctx, targetYear-1)
	if err != nil {
		return nil, fmt.Errorf("schedule %d: %w", targetYear-1, err)
	}
	sort.Slice(schedule, func(i, j int) bool { return schedule[i].Round < schedule[j].Round })

	start := len(schedule) - prevSeasonTailSize
	if start < 0 {
		start = 0
	}
	var slices []model.RaceSlice
	for _, ev := range schedule[start:] {
		slices = append(slices, model.RaceSlice{
			Year:      targetYear - 1,
			EventName: ev.Name,
			Weight:    weightPrevSeasonTail,
			Source:    sourcePrevSeasonTail,
		})
	}
	return slices, nil
}
