// Package metrics provides the concrete metrics sinks: Prometheus
// exposition and InfluxDB line-protocol writes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/pitwall/pitwall/core/metrics"
)

// PromSink records planner events in Prometheus metrics.
type PromSink struct {
	historyRows *prometheus.CounterVec
	sliceErrors *prometheus.CounterVec
	modelFits   *prometheus.CounterVec
	candidates  prometheus.Counter
	searchTime  prometheus.Histogram
}

// NewPromSink registers planner metrics on the default Prometheus
// registerer. The exposition server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		historyRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitwall_history_rows_total",
			Help: "Usable lap records extracted per slice source",
		}, []string{"source"}),
		sliceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitwall_history_slice_errors_total",
			Help: "Historical slices skipped because the session failed to load",
		}, []string{"source"}),
		modelFits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitwall_model_fits_total",
			Help: "Compound degradation models fitted",
		}, []string{"compound"}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitwall_search_candidates_total",
			Help: "Strategy candidates evaluated by the search engine",
		}),
		searchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pitwall_search_duration_seconds",
			Help:    "Wall time of one strategy search pass",
			Buckets: prometheus.DefBuckets,
		}),
	}

	collectors := []prometheus.Collector{s.historyRows, s.sliceErrors, s.modelFits, s.candidates, s.searchTime}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				s.historyRows = are.ExistingCollector.(*prometheus.CounterVec)
			case 1:
				s.sliceErrors = are.ExistingCollector.(*prometheus.CounterVec)
			case 2:
				s.modelFits = are.ExistingCollector.(*prometheus.CounterVec)
			case 3:
				s.candidates = are.ExistingCollector.(prometheus.Counter)
			case 4:
				s.searchTime = are.ExistingCollector.(prometheus.Histogram)
			}
		}
	}
	return s, nil
}

// RecordHistorySlice counts extracted rows and load failures per source.
func (s *PromSink) RecordHistorySlice(ev coremetrics.HistorySliceEvent) error {
	if ev.Error != "" {
		s.sliceErrors.WithLabelValues(ev.Source).Inc()
		return nil
	}
	s.historyRows.WithLabelValues(ev.Source).Add(float64(ev.Rows))
	return nil
}

// RecordModelFit counts fitted models per compound.
func (s *PromSink) RecordModelFit(ev coremetrics.ModelFitEvent) error {
	s.modelFits.WithLabelValues(string(ev.Compound)).Inc()
	return nil
}

// RecordSearch counts evaluated candidates and observes the search latency.
func (s *PromSink) RecordSearch(ev coremetrics.SearchEvent) error {
	s.candidates.Add(float64(ev.Evaluated))
	s.searchTime.Observe(ev.Duration.Seconds())
	return nil
}
