package app

import "fmt"

// Config carries the run parameters resolved by the CLI layer.
type Config struct {
	// ProfilePath is the directory holding profile.json and extension data.
	ProfilePath string

	// ModulesPath is the default directory scanned for extension manifests,
	// in addition to any directories listed by the profile itself.
	ModulesPath string

	LogFormat string
	LogLevel  string

	// HealthcheckPort enables the liveness endpoint when > 0.
	HealthcheckPort int

	// CheckOnly resolves and prints the load order without loading anything.
	CheckOnly bool
}

// NewConfig validates the minimal invariants before the app starts.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProfilePath == "" {
		return nil, fmt.Errorf("profile path is required")
	}
	if cfg.ModulesPath == "" {
		cfg.ModulesPath = "modules"
	}
	return &cfg, nil
}
