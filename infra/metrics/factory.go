package metrics

import (
	"github.com/pitwall/pitwall/core/logger"
	coremetrics "github.com/pitwall/pitwall/core/metrics"
)

// NewSink assembles the configured sinks. With nothing enabled it returns a
// NopSink. When the Prometheus sink is active the caller is expected to run
// StartPromServer to expose it.
func NewSink(cfg coremetrics.Config, log logger.Logger) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.PrometheusEnabled {
		sink, err := NewPromSink()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket, log))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return coremetrics.NewMultiSink(sinks...), nil
	}
}

// Close closes any sink that holds external resources.
func Close(sink coremetrics.Sink) {
	type closer interface{ Close() }
	switch s := sink.(type) {
	case *coremetrics.MultiSink:
		for _, sub := range s.Sinks {
			if c, ok := sub.(closer); ok {
				c.Close()
			}
		}
	case closer:
		s.Close()
	}
}
