package model

import "math"

// RaceSlice is one past race selected as a data source, with the relevance
// weight its laps carry in the fit.
type RaceSlice struct {
	Year      int
	EventName string
	Weight    float64
	Source    string
}

// LapRecord is one cleaned race lap with its joined weather context and
// relevance weight. Weather fields are NaN when no sample preceded the lap.
type LapRecord struct {
	Year      int
	Round     int
	EventName string
	Driver    string
	Team      string
	LapNumber int

	// TyreLifeLaps is the age of the tire set in laps, TyreLifeKM the same
	// age converted through the track length.
	TyreLifeLaps  float64
	TyreLifeKM    float64
	TrackLengthKM float64
	Compound      Compound
	Stint         int
	TrackType     TrackType

	AirTemp   float64
	TrackTemp float64
	Humidity  float64
	WindSpeed float64
	Rainfall  bool
	// IsWet is true when the lap ran on a grooved compound or under rain.
	IsWet bool

	LapTimeSeconds float64
	DataWeight     float64
	DataSource     string
}

// Valid reports whether the record carries everything the fit needs.
func (r LapRecord) Valid() bool {
	if math.IsNaN(r.LapTimeSeconds) || math.IsNaN(r.TyreLifeLaps) || math.IsNaN(r.TyreLifeKM) {
		return false
	}
	return r.Compound != "" && r.Driver != "" && r.Team != ""
}

// CompoundModel is the fitted degradation model of one compound.
type CompoundModel struct {
	Compound      Compound `json:"compound"`
	SlopeSecPerKM float64  `json:"slope_sec_per_km"`
	InterceptSec  float64  `json:"intercept_sec"`
	// WindowKM is the distance a set stays inside the acceptable lap-time
	// delta, WindowLaps the same window in whole laps of the target track.
	WindowKM        float64 `json:"window_km"`
	WindowLaps      int     `json:"window_laps"`
	FreshLapTimeSec float64 `json:"fresh_lap_time_sec"`
	SampleSize      int     `json:"sample_size"`
}

// StrategyCandidate is one scored pit-stop strategy.
type StrategyCandidate struct {
	Compounds             []Compound `json:"compounds"`
	StintLaps             []int      `json:"stint_laps"`
	Stops                 int        `json:"stops"`
	PredictedTotalTimeSec float64    `json:"predicted_total_time_sec"`
}

// OverstayRow quantifies the cost of one extra lap past a compound's window.
type OverstayRow struct {
	ExtraLap            int     `json:"extra_lap"`
	IncrementalDeltaSec float64 `json:"incremental_delta_sec"`
	CumulativeDeltaSec  float64 `json:"cumulative_delta_sec"`
}
