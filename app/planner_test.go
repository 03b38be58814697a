package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall/pitwall/config"
	"github.com/pitwall/pitwall/core/history"
	"github.com/pitwall/pitwall/core/model"
	"github.com/pitwall/pitwall/infra/logger"
)

type fakeProvider struct {
	schedules map[int][]history.Event
	sessions  map[string]*history.Session
}

func sessionKey(year int, event string) string {
	return fmt.Sprintf("%d/%s", year, event)
}

func (f *fakeProvider) Schedule(_ context.Context, year int) ([]history.Event, error) {
	evs, ok := f.schedules[year]
	if !ok {
		return nil, fmt.Errorf("no schedule for %d", year)
	}
	return evs, nil
}

func (f *fakeProvider) ResolveEvent(ctx context.Context, year int, grandPrix string) (history.Event, error) {
	evs, err := f.Schedule(ctx, year)
	if err != nil {
		return history.Event{}, err
	}
	for _, ev := range evs {
		if ev.Name == grandPrix {
			return ev, nil
		}
	}
	return history.Event{}, fmt.Errorf("no event %q in %d", grandPrix, year)
}

func (f *fakeProvider) RaceSession(_ context.Context, year int, eventName string) (*history.Session, error) {
	sess, ok := f.sessions[sessionKey(year, eventName)]
	if !ok {
		return nil, fmt.Errorf("session unavailable: %d %s", year, eventName)
	}
	return sess, nil
}

// stintLaps builds one clean green-flag stint whose lap times rise linearly
// with tire age.
func stintLaps(stint int, compound string, laps int, base, perLap, timeOffset float64) []history.RawLap {
	var out []history.RawLap
	for i := 1; i <= laps; i++ {
		out = append(out, history.RawLap{
			Driver:         "VER",
			Team:           "Red Bull Racing",
			LapNumber:      i,
			Stint:          stint,
			Compound:       compound,
			TyreLife:       float64(i),
			LapTimeSeconds: base + perLap*float64(i),
			Accurate:       true,
			TrackStatus:    "1",
			SessionTime:    timeOffset + float64(i)*100,
		})
	}
	return out
}

func drySession(year, round int, name string) *history.Session {
	laps := stintLaps(1, "MEDIUM", 10, 91, 0.10, 0)
	laps = append(laps, stintLaps(2, "HARD", 14, 93, 0.05, 2000)...)
	return &history.Session{
		Year:    year,
		Event:   history.Event{Round: round, Name: name},
		Laps:    laps,
		Weather: []history.WeatherSample{{SessionTime: 0, AirTemp: 28, TrackTemp: 40}},
	}
}

func wetSession(year, round int, name string) *history.Session {
	return &history.Session{
		Year:    year,
		Event:   history.Event{Round: round, Name: name},
		Laps:    stintLaps(1, "INTERMEDIATE", 12, 101, 0.05, 0),
		Weather: []history.WeatherSample{{SessionTime: 0, AirTemp: 18, TrackTemp: 22, Rainfall: true}},
	}
}

func newFakeProvider(build func(year, round int, name string) *history.Session) *fakeProvider {
	f := &fakeProvider{
		schedules: map[int][]history.Event{
			2025: {
				{Round: 1, Name: "Australian Grand Prix"},
				{Round: 2, Name: "Chinese Grand Prix"},
				{Round: 3, Name: "Japanese Grand Prix"},
				{Round: 4, Name: "Bahrain Grand Prix"},
			},
			2024: {
				{Round: 1, Name: "Bahrain Grand Prix"},
			},
		},
		sessions: map[string]*history.Session{},
	}
	if build != nil {
		f.sessions[sessionKey(2025, "Australian Grand Prix")] = build(2025, 1, "Australian Grand Prix")
		f.sessions[sessionKey(2025, "Chinese Grand Prix")] = build(2025, 2, "Chinese Grand Prix")
		f.sessions[sessionKey(2025, "Japanese Grand Prix")] = build(2025, 3, "Japanese Grand Prix")
		f.sessions[sessionKey(2024, "Bahrain Grand Prix")] = build(2024, 1, "Bahrain Grand Prix")
	}
	return f
}

func newTestPlanner(provider history.Provider) *Planner {
	return New(config.Default(), provider, nil, logger.NopLogger{})
}

func dryRequest() Request {
	return Request{
		Year:      2025,
		GrandPrix: "Bahrain Grand Prix",
		Driver:    "VER",
		Team:      "Oracle Red Bull Racing",
		RaceLaps:  40,
		Condition: model.ConditionAuto,
	}
}

func TestPlannerRun_DryRace(t *testing.T) {
	p := newTestPlanner(newFakeProvider(drySession))

	report, err := p.Run(context.Background(), dryRequest())
	require.NoError(t, err)

	assert.Equal(t, 2025, report.Target.Year)
	assert.Equal(t, "Bahrain Grand Prix", report.Target.EventName)
	assert.Equal(t, "Red Bull Racing", report.Target.Team) // normalized
	assert.Equal(t, model.ConditionDry, report.Target.RaceCondition)
	assert.Equal(t, 40, report.Target.RaceLaps)

	// 24 MEDIUM + HARD laps per session across four sessions.
	assert.Equal(t, 96, report.HistoryRows)
	require.Contains(t, report.CompoundModels, model.CompoundMedium)
	require.Contains(t, report.CompoundModels, model.CompoundHard)
	assert.Equal(t, 0.0, report.WetExperienceKM)

	require.NotEmpty(t, report.BestStrategies)
	for _, s := range report.BestStrategies {
		sum := 0
		for _, n := range s.StintLaps {
			sum += n
		}
		assert.Equal(t, 40, sum)
		assert.Equal(t, len(s.Compounds)-1, s.Stops)
		assert.Positive(t, s.PredictedTotalTimeSec)
	}
	// Ascending by predicted time.
	for i := 1; i < len(report.BestStrategies); i++ {
		assert.LessOrEqual(t,
			report.BestStrategies[i-1].PredictedTotalTimeSec,
			report.BestStrategies[i].PredictedTotalTimeSec)
	}

	require.Contains(t, report.OverstayDelta, model.CompoundMedium)
	rows := report.OverstayDelta[model.CompoundMedium]
	assert.Len(t, rows, config.Default().Model.MaxOverstayLaps)
}

func TestPlannerRun_AutoInfersWet(t *testing.T) {
	p := newTestPlanner(newFakeProvider(wetSession))

	req := dryRequest()
	req.RaceLaps = 30
	report, err := p.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.ConditionWet, report.Target.RaceCondition)
	require.Contains(t, report.CompoundModels, model.CompoundIntermediate)
	// Three current-season sessions of 12 wet laps on the default 5 km track.
	assert.Equal(t, 180.0, report.WetExperienceKM)
	assert.NotEmpty(t, report.BestStrategies)
}

func TestPlannerRun_ExplicitConditionWins(t *testing.T) {
	p := newTestPlanner(newFakeProvider(drySession))

	req := dryRequest()
	req.Condition = model.ConditionWet
	report, err := p.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.ConditionWet, report.Target.RaceCondition)
	// No wet compound models exist, so the search yields nothing. That is a
	// report, not an error.
	assert.Empty(t, report.BestStrategies)
	assert.NotNil(t, report.BestStrategies)
}

func TestPlannerRun_NoHistory(t *testing.T) {
	p := newTestPlanner(newFakeProvider(nil))

	_, err := p.Run(context.Background(), dryRequest())
	assert.ErrorIs(t, err, history.ErrNoHistory)
}

func TestPlannerRun_UnknownEvent(t *testing.T) {
	p := newTestPlanner(newFakeProvider(drySession))

	req := dryRequest()
	req.GrandPrix = "Atlantis Grand Prix"
	_, err := p.Run(context.Background(), req)
	assert.Error(t, err)
}

func TestPlannerRun_PitLossOverride(t *testing.T) {
	p := newTestPlanner(newFakeProvider(drySession))

	base, err := p.Run(context.Background(), dryRequest())
	require.NoError(t, err)
	require.NotEmpty(t, base.BestStrategies)

	req := dryRequest()
	pitLoss := 60.0
	req.PitLossSec = &pitLoss
	slow, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, slow.BestStrategies)

	assert.Greater(t,
		slow.BestStrategies[0].PredictedTotalTimeSec,
		base.BestStrategies[0].PredictedTotalTimeSec)
}

func TestPlannerRun_PitLossExplicitZero(t *testing.T) {
	p := newTestPlanner(newFakeProvider(drySession))

	base, err := p.Run(context.Background(), dryRequest())
	require.NoError(t, err)
	require.NotEmpty(t, base.BestStrategies)

	req := dryRequest()
	zero := 0.0
	req.PitLossSec = &zero
	free, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, free.BestStrategies)

	// Every feasible strategy here is a two-stop, so dropping the 21 s
	// pit loss shifts all scores uniformly by 42 s.
	assert.Equal(t, 2, free.BestStrategies[0].Stops)
	assert.InDelta(t, 42.0,
		base.BestStrategies[0].PredictedTotalTimeSec-free.BestStrategies[0].PredictedTotalTimeSec,
		1e-9)
}
