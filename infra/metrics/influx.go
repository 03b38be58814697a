package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/pitwall/pitwall/core/logger"
	coremetrics "github.com/pitwall/pitwall/core/metrics"
)

// InfluxSink writes planner events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string, log logger.Logger) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      log,
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a missing metrics backend never
// blocks a planning run.
func NewInfluxSinkWithFallback(url, token, org, bucket string, log logger.Logger) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket, log)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			log.Errorf("influx health check error: %v", err)
		} else {
			log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// RecordHistorySlice writes one history_slice point.
func (s *InfluxSink) RecordHistorySlice(ev coremetrics.HistorySliceEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("history_slice").
		AddTag("run_id", ev.RunID).
		AddTag("source", ev.Source).
		AddTag("event", ev.Event).
		AddTag("year", strconv.Itoa(ev.Year)).
		AddField("rows", ev.Rows).
		AddField("weight", ev.Weight).
		AddField("error", ev.Error).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordModelFit writes one model_fit point.
func (s *InfluxSink) RecordModelFit(ev coremetrics.ModelFitEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("model_fit").
		AddTag("run_id", ev.RunID).
		AddTag("compound", string(ev.Compound)).
		AddField("slope_sec_per_km", ev.SlopePerKM).
		AddField("window_km", ev.WindowKM).
		AddField("window_laps", ev.WindowLaps).
		AddField("sample_size", ev.SampleSize).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSearch writes one strategy_search point.
func (s *InfluxSink) RecordSearch(ev coremetrics.SearchEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("strategy_search").
		AddTag("run_id", ev.RunID).
		AddTag("condition", string(ev.Condition)).
		AddField("evaluated", ev.Evaluated).
		AddField("returned", ev.Returned).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}
