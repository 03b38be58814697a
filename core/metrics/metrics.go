// Package metrics defines the planner's observability events and the sink
// interfaces that record them. Concrete sinks live under infra/metrics.
package metrics

import (
	"time"

	"github.com/pitwall/pitwall/core/model"
)

// HistorySliceEvent captures the outcome of loading one historical slice.
type HistorySliceEvent struct {
	RunID  string
	Year   int
	Event  string
	Source string
	Weight float64
	Rows   int
	Error  string
	Time   time.Time
}

// ModelFitEvent captures one fitted compound model.
type ModelFitEvent struct {
	RunID      string
	Compound   model.Compound
	SlopePerKM float64
	WindowKM   float64
	WindowLaps int
	SampleSize int
	Time       time.Time
}

// SearchEvent captures one strategy search pass.
type SearchEvent struct {
	RunID      string
	Condition  model.RaceCondition
	Evaluated  int
	Returned   int
	Duration   time.Duration
	Time       time.Time
}

// Sink records planner events for observability purposes.
type Sink interface {
	RecordHistorySlice(ev HistorySliceEvent) error
	RecordModelFit(ev ModelFitEvent) error
	RecordSearch(ev SearchEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordHistorySlice(HistorySliceEvent) error { return nil }
func (NopSink) RecordModelFit(ModelFitEvent) error         { return nil }
func (NopSink) RecordSearch(SearchEvent) error             { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordHistorySlice forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordHistorySlice(ev HistorySliceEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordHistorySlice(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordModelFit forwards fit events.
func (m *MultiSink) RecordModelFit(ev ModelFitEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordModelFit(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSearch forwards search events.
func (m *MultiSink) RecordSearch(ev SearchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSearch(ev); err != nil {
			return err
		}
	}
	return nil
}
