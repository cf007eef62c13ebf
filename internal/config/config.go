// SPDX-License-Identifier: MIT

// Package config loads the riemann CLI settings from the environment.
//
//	RIEMANN_LOG_LEVEL   debug | info | warn | error (default info)
//	RIEMANN_LOG_DEV     console logging with stack traces (default false)
//	RIEMANN_TOLERANCE   structural tolerance of the point/vector checks (default 1e-9)
//	RIEMANN_WORKERS     cases evaluated concurrently, 0 = GOMAXPROCS (default 0)
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/riemann/manifold"
)

// Prefix is the environment prefix of every variable.
const Prefix = "RIEMANN"

// ErrInvalid reports a setting outside its domain.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the CLI configuration. The variables share one prefix, so
// the struct stays flat: envconfig prefixes nested structs with their field name.
type Config struct {
	LogLevel  string  `envconfig:"LOG_LEVEL" default:"info"`
	LogDev    bool    `envconfig:"LOG_DEV" default:"false"`
	Tolerance float64 `envconfig:"TOLERANCE" default:"1e-9"`
	Workers   int     `envconfig:"WORKERS" default:"0"`
}

// Load reads the configuration from RIEMANN_* variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when the environment sets nothing.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogDev:    false,
		Tolerance: manifold.DefaultTolerance,
		Workers:   0,
	}
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	if t := c.Tolerance; t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: tolerance %g", ErrInvalid, t)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}

	return nil
}

// ManifoldOptions returns the manifold options implied by the configuration.
func (c *Config) ManifoldOptions() []manifold.Option {
	return []manifold.Option{manifold.WithTolerance(c.Tolerance)}
}
