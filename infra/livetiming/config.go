package livetiming

import "fmt"

// Config defines the timing API endpoint and local cache location.
type Config struct {
	// BaseURL is the root of the timing API, e.g. https://timing.example.com
	BaseURL string `json:"base_url"`
	// CacheDir stores raw session payloads so repeated runs do not re-fetch
	// them. Empty disables caching.
	CacheDir string `json:"cache_dir"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.CacheDir == "" {
		c.CacheDir = "cache"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}
