package history

import (
	"context"
	"time"

	"github.com/pitwall/pitwall/core/logger"
	"github.com/pitwall/pitwall/core/metrics"
	"github.com/pitwall/pitwall/core/model"
)

// Aggregator builds the weighted historical dataset for a strategy query.
// Per-slice load failures are absorbed so a partial upstream outage never
// aborts the whole aggregation.
type Aggregator struct {
	Provider Provider
	Log      logger.Logger
	Sink     metrics.Sink
}

// Build assembles the weighted lap dataset for the target event. When none
// of the primary slices yields data it falls back to the tail of the
// previous season; if that is also empty it returns ErrNoHistory.
func (a *Aggregator) Build(ctx context.Context, runID string, targetYear int, target Event) ([]model.LapRecord, error) {
	slices, err := BuildSlices(ctx, a.Provider, targetYear, target)
	if err != nil {
		return nil, err
	}

	records := a.collect(ctx, runID, slices)
	if len(records) == 0 {
		a.Log.Warnf("no usable laps in %d primary slices, falling back to %d season tail", len(slices), targetYear-1)
		fallback, err := fallbackSlices(ctx, a.Provider, targetYear)
		if err != nil {
			a.Log.Errorf("fallback schedule: %v", err)
			return nil, ErrNoHistory
		}
		records = a.collect(ctx, runID, fallback)
	}
	if len(records) == 0 {
		return nil, ErrNoHistory
	}
	return records, nil
}

func (a *Aggregator) collect(ctx context.Context, runID string, slices []model.RaceSlice) []model.LapRecord {
	var records []model.LapRecord
	for _, slc := range slices {
		ev := metrics.HistorySliceEvent{
			RunID:  runID,
			Year:   slc.Year,
			Event:  slc.EventName,
			Source: slc.Source,
			Weight: slc.Weight,
			Time:   time.Now(),
		}

		sess, err := a.Provider.RaceSession(ctx, slc.Year, slc.EventName)
		if err != nil {
			a.Log.Warnf("skip %d %s (%s): %v", slc.Year, slc.EventName, slc.Source, err)
			ev.Error = err.Error()
			a.record(ev)
			continue
		}
		recs := ExtractLaps(sess, slc.Weight, slc.Source)
		ev.Rows = len(recs)
		a.record(ev)
		if len(recs) == 0 {
			a.Log.Debugf("no usable laps in %d %s", slc.Year, slc.EventName)
			continue
		}
		records = append(records, recs...)
	}
	return records
}

func (a *Aggregator) record(ev metrics.HistorySliceEvent) {
	if a.Sink == nil {
		return
	}
	if err := a.Sink.RecordHistorySlice(ev); err != nil {
		a.Log.Errorf("record history slice: %v", err)
	}
}

// WetShare returns the fraction of records flagged wet, used to infer the
// race condition when the caller requests auto.
func WetShare(records []model.LapRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	wet := 0
	for _, r := range records {
		if r.IsWet {
			wet++
		}
	}
	return float64(wet) / float64(len(records))
}
