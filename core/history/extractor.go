package history

import (
	"math"
	"sort"

	"github.com/pitwall/pitwall/core/catalog"
	"github.com/pitwall/pitwall/core/model"
)

const greenTrackStatus = "1"

// ExtractLaps turns a loaded session into cleaned, weighted lap records.
// Laps are kept only when flagged accurate, run under green flag and on one
// of the five modeled compounds. Weather is joined by nearest preceding
// sample. Rows missing lap time, tyre-life distance, compound, driver or
// team are dropped. An empty result is not an error; the caller skips the
// slice and continues.
func ExtractLaps(sess *Session, weight float64, source string) []model.LapRecord {
	if sess == nil || len(sess.Laps) == 0 {
		return nil
	}

	track := catalog.TrackInfo(sess.Event.Name)

	laps := make([]RawLap, 0, len(sess.Laps))
	for _, lap := range sess.Laps {
		if !lap.Accurate || lap.TrackStatus != greenTrackStatus {
			continue
		}
		if !model.Compound(lap.Compound).IsValid() {
			continue
		}
		laps = append(laps, lap)
	}
	if len(laps) == 0 {
		return nil
	}

	// Backward as-of join of the weather feed on session time.
	sort.Slice(laps, func(i, j int) bool { return laps[i].SessionTime < laps[j].SessionTime })
	weather := append([]WeatherSample(nil), sess.Weather...)
	sort.Slice(weather, func(i, j int) bool { return weather[i].SessionTime < weather[j].SessionTime })

	records := make([]model.LapRecord, 0, len(laps))
	wi := 0
	for _, lap := range laps {
		for wi < len(weather) && weather[wi].SessionTime <= lap.SessionTime {
			wi++
		}

		rec := model.LapRecord{
			Year:           sess.Year,
			Round:          sess.Event.Round,
			EventName:      sess.Event.Name,
			Driver:         lap.Driver,
			Team:           catalog.NormalizeTeam(lap.Team),
			LapNumber:      lap.LapNumber,
			TyreLifeLaps:   lap.TyreLife,
			TyreLifeKM:     lap.TyreLife * track.LengthKM,
			TrackLengthKM:  track.LengthKM,
			Compound:       model.Compound(lap.Compound),
			Stint:          lap.Stint,
			TrackType:      track.Type,
			AirTemp:        math.NaN(),
			TrackTemp:      math.NaN(),
			Humidity:       math.NaN(),
			WindSpeed:      math.NaN(),
			LapTimeSeconds: lap.LapTimeSeconds,
			DataWeight:     weight,
			DataSource:     source,
		}
		if wi > 0 {
			w := weather[wi-1]
			rec.AirTemp = w.AirTemp
			rec.TrackTemp = w.TrackTemp
			rec.Humidity = w.Humidity
			rec.WindSpeed = w.WindSpeed
			rec.Rainfall = w.Rainfall
		}
		rec.IsWet = rec.Compound.IsWet() || rec.Rainfall

		if !rec.Valid() {
			continue
		}
		records = append(records, rec)
	}
	return records
}
