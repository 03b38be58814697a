// Package config loads the planner configuration from YAML or JSON files
// with optional environment overrides. Every section has usable defaults,
// so the CLI runs without a config file at all.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pitwall/pitwall/core/metrics"
	"github.com/pitwall/pitwall/core/strategy"
	"github.com/pitwall/pitwall/core/tiremodel"
	"github.com/pitwall/pitwall/infra/livetiming"
)

type Config struct {
	Provider livetiming.Config   `json:"provider"`
	Search   strategy.Config     `json:"search"`
	Model    tiremodel.FitConfig `json:"model"`
	Metrics  metrics.Config      `json:"metrics"`
	Logging  LoggingConfig       `json:"logging"`
}

// Default returns a configuration with every section at its defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the configuration file at path. An empty path yields the
// defaults. Environment variables prefixed PW_ override file values, with
// __ separating nesting levels (PW_PROVIDER__BASE_URL, ...).
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PW_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Provider.SetDefaults()
	c.Search.SetDefaults()
	c.Model.SetDefaults()
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
}
