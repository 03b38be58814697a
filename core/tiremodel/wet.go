package tiremodel

import "github.com/pitwall/pitwall/core/model"

// ComputeWetExperienceKM sums the distance the target driver and team have
// covered in wet conditions during the target season on tracks of the same
// speed character. Returns 0.0 when there is none.
func ComputeWetExperienceKM(records []model.LapRecord, targetYear int, driver, team string, trackType model.TrackType) float64 {
	total := 0.0
	for _, r := range records {
		if r.Year != targetYear || r.Driver != driver || r.Team != team {
			continue
		}
		if !r.IsWet || r.TrackType != trackType {
			continue
		}
		total += r.TrackLengthKM
	}
	return total
}
