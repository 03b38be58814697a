package tiremodel

import "github.com/pitwall/pitwall/core/model"

// BuildOverstayTable quantifies, per compound, the cost of running extra
// laps beyond the modeled window. The incremental delta grows linearly with
// the overstay depth, so the cumulative delta accelerates.
func BuildOverstayTable(
	models map[model.Compound]model.CompoundModel,
	trackLengthKM float64,
	maxExtraLaps int,
) map[model.Compound][]model.OverstayRow {
	out := make(map[model.Compound][]model.OverstayRow, len(models))
	for compound, m := range models {
		slopePerLap := m.SlopeSecPerKM * trackLengthKM
		rows := make([]model.OverstayRow, 0, maxExtraLaps)
		cumulative := 0.0
		for extra := 1; extra <= maxExtraLaps; extra++ {
			incremental := slopePerLap * float64(extra)
			cumulative += incremental
			rows = append(rows, model.OverstayRow{
				ExtraLap:            extra,
				IncrementalDeltaSec: round3(incremental),
				CumulativeDeltaSec:  round3(cumulative),
			})
		}
		out[compound] = rows
	}
	return out
}
