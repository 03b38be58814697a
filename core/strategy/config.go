package strategy

// Config holds the search tunables. MarginLaps and StepLaps trade result
// diversity against enumeration cost; their defaults are deliberate,
// inherited values rather than derived bounds, which is why they are
// configuration instead of constants.
type Config struct {
	// MarginLaps widens the allowed stint length around a compound's
	// modeled window, in laps each way.
	MarginLaps int `json:"margin_laps"`
	// StepLaps is the stride used when enumerating stint lengths.
	StepLaps int `json:"step_laps"`
	// MinStintLaps floors every stint length.
	MinStintLaps int `json:"min_stint_laps"`
	// MaxStops caps the number of pit stops per strategy.
	MaxStops int `json:"max_stops"`
	// TopK is the number of ranked strategies returned.
	TopK int `json:"top_k"`
	// PitLossSec is the fixed time cost of one pit stop.
	PitLossSec float64 `json:"pit_loss_sec"`
}

// SetDefaults applies the reference values.
func (c *Config) SetDefaults() {
	if c.MarginLaps == 0 {
		c.MarginLaps = 6
	}
	if c.StepLaps == 0 {
		c.StepLaps = 2
	}
	if c.MinStintLaps == 0 {
		c.MinStintLaps = 5
	}
	if c.MaxStops == 0 {
		c.MaxStops = 2
	}
	if c.TopK == 0 {
		c.TopK = 5
	}
	if c.PitLossSec == 0 {
		c.PitLossSec = 21.0
	}
}
