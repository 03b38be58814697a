// Package app wires the planner together: historical aggregation, compound
// model fitting, strategy search and report assembly.
package app

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pitwall/pitwall/config"
	"github.com/pitwall/pitwall/core/catalog"
	"github.com/pitwall/pitwall/core/history"
	"github.com/pitwall/pitwall/core/logger"
	"github.com/pitwall/pitwall/core/metrics"
	"github.com/pitwall/pitwall/core/model"
	"github.com/pitwall/pitwall/core/strategy"
	"github.com/pitwall/pitwall/core/tiremodel"
)

// ErrNoModels is returned when the available history supports no compound
// model at all.
var ErrNoModels = errors.New("unable to build compound models from available history")

// wetShareThreshold is the historical wet-lap share above which an auto
// condition resolves to wet.
const wetShareThreshold = 0.25

// Request describes one strategy query.
type Request struct {
	Year      int
	GrandPrix string
	Driver    string
	Team      string
	RaceLaps  int
	Condition model.RaceCondition
	// PitLossSec overrides the configured pit loss when set. An explicit
	// zero is a valid override.
	PitLossSec *float64
}

// Target echoes the resolved query in the report.
type Target struct {
	Year          int                 `json:"year"`
	GrandPrix     string              `json:"grand_prix"`
	EventName     string              `json:"event_name"`
	Driver        string              `json:"driver"`
	Team          string              `json:"team"`
	TrackType     model.TrackType     `json:"track_type"`
	TrackLengthKM float64             `json:"track_length_km"`
	RaceLaps      int                 `json:"race_laps"`
	RaceCondition model.RaceCondition `json:"race_condition"`
}

// Report is the planner's JSON output document.
type Report struct {
	Target          Target                                     `json:"target"`
	HistoryRows     int                                        `json:"phase_1_history_rows"`
	CompoundModels  map[model.Compound]model.CompoundModel     `json:"phase_2_compound_models"`
	WetExperienceKM float64                                    `json:"phase_2_wet_experience_km"`
	BestStrategies  []model.StrategyCandidate                  `json:"phase_3_best_strategies"`
	OverstayDelta   map[model.Compound][]model.OverstayRow     `json:"phase_3_overstay_delta"`
}

// Planner runs strategy queries end to end.
type Planner struct {
	cfg      *config.Config
	provider history.Provider
	sink     metrics.Sink
	log      logger.Logger
}

// New creates a Planner. A nil sink disables metrics.
func New(cfg *config.Config, provider history.Provider, sink metrics.Sink, log logger.Logger) *Planner {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{cfg: cfg, provider: provider, sink: sink, log: log}
}

// Run executes the three planning phases for the request. It fails only on
// the two fatal boundary conditions: no loadable history and no derivable
// compound models. An empty strategy list is a valid result.
func (p *Planner) Run(ctx context.Context, req Request) (*Report, error) {
	runID := uuid.NewString()
	team := catalog.NormalizeTeam(req.Team)
	p.log.Debugw("strategy run", map[string]any{
		"run_id": runID, "year": req.Year, "gp": req.GrandPrix,
		"driver": req.Driver, "team": team,
	})

	target, err := p.provider.ResolveEvent(ctx, req.Year, req.GrandPrix)
	if err != nil {
		return nil, err
	}
	track := catalog.TrackInfo(target.Name)

	agg := &history.Aggregator{Provider: p.provider, Log: p.log, Sink: p.sink}
	records, err := agg.Build(ctx, runID, req.Year, target)
	if err != nil {
		return nil, err
	}
	p.log.Infof("aggregated %d weighted laps for %s", len(records), target.Name)

	wetKM := tiremodel.ComputeWetExperienceKM(records, req.Year, req.Driver, team, track.Type)
	models := tiremodel.BuildCompoundModels(records, tiremodel.Target{
		Driver:          req.Driver,
		Team:            team,
		TrackType:       track.Type,
		TrackLengthKM:   track.LengthKM,
		WetExperienceKM: wetKM,
	}, p.cfg.Model)
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	for _, m := range models {
		p.recordFit(runID, m)
	}

	condition := req.Condition
	if condition == "" || condition == model.ConditionAuto {
		condition = model.ConditionDry
		if history.WetShare(records) >= wetShareThreshold {
			condition = model.ConditionWet
		}
		p.log.Infof("inferred race condition: %s", condition)
	}

	searchCfg := p.cfg.Search
	if req.PitLossSec != nil {
		searchCfg.PitLossSec = *req.PitLossSec
	}
	start := time.Now()
	best, evaluated := strategy.Optimize(models, req.RaceLaps, track.LengthKM, condition, searchCfg)
	p.recordSearch(metrics.SearchEvent{
		RunID:     runID,
		Condition: condition,
		Evaluated: evaluated,
		Returned:  len(best),
		Duration:  time.Since(start),
		Time:      time.Now(),
	})
	if len(best) == 0 {
		p.log.Warnf("no feasible strategy found for %d laps under %s conditions", req.RaceLaps, condition)
		best = []model.StrategyCandidate{}
	}

	return &Report{
		Target: Target{
			Year:          req.Year,
			GrandPrix:     req.GrandPrix,
			EventName:     target.Name,
			Driver:        req.Driver,
			Team:          team,
			TrackType:     track.Type,
			TrackLengthKM: track.LengthKM,
			RaceLaps:      req.RaceLaps,
			RaceCondition: condition,
		},
		HistoryRows:     len(records),
		CompoundModels:  models,
		WetExperienceKM: math.Round(wetKM*1000) / 1000,
		BestStrategies:  best,
		OverstayDelta:   tiremodel.BuildOverstayTable(models, track.LengthKM, p.cfg.Model.MaxOverstayLaps),
	}, nil
}

func (p *Planner) recordFit(runID string, m model.CompoundModel) {
	err := p.sink.RecordModelFit(metrics.ModelFitEvent{
		RunID:      runID,
		Compound:   m.Compound,
		SlopePerKM: m.SlopeSecPerKM,
		WindowKM:   m.WindowKM,
		WindowLaps: m.WindowLaps,
		SampleSize: m.SampleSize,
		Time:       time.Now(),
	})
	if err != nil {
		p.log.Errorf("record model fit: %v", err)
	}
}

func (p *Planner) recordSearch(ev metrics.SearchEvent) {
	if err := p.sink.RecordSearch(ev); err != nil {
		p.log.Errorf("record search: %v", err)
	}
}
