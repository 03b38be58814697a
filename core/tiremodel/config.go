package tiremodel

// FitConfig holds the tunables of the degradation fit. Defaults reproduce
// the planner's reference behavior; they are exposed through configuration
// rather than hard-coded because several of them (the 1.2s window, the
// sample thresholds) are empirical choices.
type FitConfig struct {
	// LapDeltaWindowSec is the pace loss that marks the end of a
	// compound's useful window.
	LapDeltaWindowSec float64 `json:"lap_delta_window_sec"`
	// TrackTypeMinRecords is the minimum sample size required before the
	// fit restricts itself to laps from the target's track type.
	TrackTypeMinRecords int `json:"track_type_min_records"`
	// FitMinRecords is the minimum sample size for a regression; below it
	// the default slope applies.
	FitMinRecords int `json:"fit_min_records"`
	// DefaultSlopeSecPerKM is used when the data cannot support a fit.
	DefaultSlopeSecPerKM float64 `json:"default_slope_sec_per_km"`
	// WetDiscountCap bounds the wet-experience slope reduction.
	WetDiscountCap float64 `json:"wet_discount_cap"`
	// WetDiscountKM is the wet distance at which the reduction saturates.
	WetDiscountKM float64 `json:"wet_discount_km"`
	// MaxOverstayLaps is the depth of the overstay table.
	MaxOverstayLaps int `json:"max_overstay_laps"`
}

// SetDefaults applies the reference values.
func (c *FitConfig) SetDefaults() {
	if c.LapDeltaWindowSec == 0 {
		c.LapDeltaWindowSec = 1.2
	}
	if c.TrackTypeMinRecords == 0 {
		c.TrackTypeMinRecords = 12
	}
	if c.FitMinRecords == 0 {
		c.FitMinRecords = 6
	}
	if c.DefaultSlopeSecPerKM == 0 {
		c.DefaultSlopeSecPerKM = 0.03
	}
	if c.WetDiscountCap == 0 {
		c.WetDiscountCap = 0.2
	}
	if c.WetDiscountKM == 0 {
		c.WetDiscountKM = 2000
	}
	if c.MaxOverstayLaps == 0 {
		c.MaxOverstayLaps = 10
	}
}
