// Package config loads run configuration from disk. YAML is tried first,
// then JSON, matching the file conventions of the rest of the tooling.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/prereg/prereg"
)

// Config is the full run configuration. Params feed the preregistration;
// changing them changes AEQ, which is the commitment working as intended.
type Config struct {
	Params prereg.Params `json:"params" yaml:"params"`
	Out    string        `json:"out,omitempty" yaml:"out,omitempty"`
	Seed   int64         `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Default returns the preregistered defaults.
func Default() *Config {
	return &Config{
		Params: prereg.DefaultParams(),
		Out:    "outputs_unblind",
		Seed:   123,
	}
}

// LoadFromFile reads configuration from path, trying YAML first and falling
// back to JSON. Missing params fields keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration is committable.
func (c *Config) Validate() error {
	if c.Out == "" {
		return fmt.Errorf("out directory is required")
	}
	return c.Params.Validate()
}
