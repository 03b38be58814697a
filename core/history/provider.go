// Package history selects relevant past races, extracts cleaned lap records
// from their sessions and aggregates them into the weighted dataset the
// degradation models are fitted on.
package history

import (
	"context"
	"errors"
)

// ErrNoHistory is returned when no slice, including the previous-season
// fallback, yields any usable lap records.
var ErrNoHistory = errors.New("no historical race data available")

// Event identifies one round of a season schedule.
type Event struct {
	Round int
	Name  string
}

// RawLap is a lap as delivered by the timing provider, before cleaning.
// Missing float fields are NaN.
type RawLap struct {
	Driver    string
	Team      string
	LapNumber int
	Stint     int
	Compound  string
	// TyreLife is the age of the fitted tire set in laps.
	TyreLife       float64
	LapTimeSeconds float64
	// Accurate marks laps the provider considers representative (no pit
	// in/out, no timing glitches).
	Accurate bool
	// TrackStatus is "1" while the track is green.
	TrackStatus string
	// SessionTime is seconds since session start at the end of the lap,
	// used to join weather samples.
	SessionTime float64
}

// WeatherSample is one reading of the session weather feed.
type WeatherSample struct {
	SessionTime float64
	AirTemp     float64
	TrackTemp   float64
	Humidity    float64
	WindSpeed   float64
	Rainfall    bool
}

// Session is a loaded race session: metadata plus lap and weather feeds.
type Session struct {
	Year    int
	Event   Event
	Laps    []RawLap
	Weather []WeatherSample
}

// Provider supplies season schedules and race sessions. Implementations must
// surface per-event failures as errors instead of panicking; the aggregator
// absorbs them and moves on to the next slice.
type Provider interface {
	// Schedule returns the season's events ordered by round number,
	// excluding testing.
	Schedule(ctx context.Context, year int) ([]Event, error)

	// ResolveEvent resolves a grand-prix query (name or fragment) to the
	// season's canonical event.
	ResolveEvent(ctx context.Context, year int, grandPrix string) (Event, error)

	// RaceSession loads the race session of the given event.
	RaceSession(ctx context.Context, year int, eventName string) (*Session, error)
}
