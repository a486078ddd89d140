package types

import (
	"errors"
	"time"
)

// Reference dwell bounds for the status simulation, matching the original
// storefront behavior of 10 to 25 seconds per step.
const (
	DefaultMinDelayMS = 10000
	DefaultMaxDelayMS = 25000
)

// Config holds store location and simulation parameters.
type Config struct {
	DataDir    string           `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation" mapstructure:"simulation"`
}

// SimulationConfig bounds the randomized dwell interval between autonomous
// status transitions.
type SimulationConfig struct {
	MinDelayMS int64 `json:"min_delay_ms" yaml:"min_delay_ms" mapstructure:"min_delay_ms"`
	MaxDelayMS int64 `json:"max_delay_ms" yaml:"max_delay_ms" mapstructure:"max_delay_ms"`
}

// Config validation errors.
var (
	ErrDelayNonPositive = errors.New("simulation delay must be positive")
	ErrDelayRange       = errors.New("simulation max delay must not be below min delay")
)

// DefaultConfig returns a Config with the reference simulation bounds and
// an empty DataDir, which callers resolve via internal/paths.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			MinDelayMS: DefaultMinDelayMS,
			MaxDelayMS: DefaultMaxDelayMS,
		},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	return c.Simulation.Validate()
}

// Validate checks the simulation dwell bounds.
func (s SimulationConfig) Validate() error {
	if s.MinDelayMS <= 0 || s.MaxDelayMS <= 0 {
		return ErrDelayNonPositive
	}
	if s.MaxDelayMS < s.MinDelayMS {
		return ErrDelayRange
	}
	return nil
}

// MinDelay returns the lower dwell bound as a duration.
func (s SimulationConfig) MinDelay() time.Duration {
	return time.Duration(s.MinDelayMS) * time.Millisecond
}

// MaxDelay returns the upper dwell bound as a duration.
func (s SimulationConfig) MaxDelay() time.Duration {
	return time.Duration(s.MaxDelayMS) * time.Millisecond
}
