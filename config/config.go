// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the tunable constants of the cube
// snapping mechanic: piece geometry, container sizing, join
// alignment and haptic feedback parameters.
package config

import (
	"errors"
	"fmt"

	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/math32"
	"github.com/caarlos0/env/v11"
)

// Config is the main config struct that contains all of the
// parameters of the snapping mechanic. Zero values are not
// meaningful: use [New] or [Config.Defaults].
type Config struct {

	// PieceSize is the edge length of a single cube piece, in world units.
	PieceSize float32 `default:"0.1" env:"PIECE_SIZE"`

	// BoxMargin is the extra container size added around the pieces
	// along each axis.
	BoxMargin float32 `default:"0.06" env:"BOX_MARGIN"`

	// MinBoxScale is the floor applied to the container scale on each axis.
	MinBoxScale float32 `default:"0.12" env:"MIN_BOX_SCALE"`

	// SeparationThreshold is the minimum distance from the reference
	// piece along an axis for a piece to be classified to that axis.
	SeparationThreshold float32 `default:"0.09" env:"SEPARATION_THRESHOLD"`

	// ClusterTolerance is the fraction of [Config.PieceSize] within which
	// two positions along an axis are considered the same slot.
	ClusterTolerance float32 `default:"0.1" env:"CLUSTER_TOLERANCE"`

	// JoinOffsetDivisor divides the parent face position (in unit piece
	// coordinates) to obtain the join translation offset. It must match
	// [Config.PieceSize]: see [Config.JoinDistance].
	JoinOffsetDivisor float32 `default:"5" env:"JOIN_OFFSET_DIVISOR"`

	// JoinSettleTicks is the number of scheduler ticks the join
	// constraint is given to settle before the container takes over.
	JoinSettleTicks int `default:"2" env:"JOIN_SETTLE_TICKS"`

	// HapticFrequency is the frequency of the ready-to-attach signal.
	HapticFrequency float32 `default:"1" env:"HAPTIC_FREQUENCY"`

	// HapticIntensity is the amplitude of the ready-to-attach signal.
	HapticIntensity float32 `default:"0.5" env:"HAPTIC_INTENSITY"`

	// TriggerDepth is the thickness of an anchor face trigger region,
	// as a fraction of [Config.PieceSize].
	TriggerDepth float32 `default:"0.2" env:"TRIGGER_DEPTH"`

	// TickRate is the number of simulation ticks per second.
	TickRate float32 `default:"72" env:"TICK_RATE"`
}

// FaceOffset is the distance from the center of a piece to the center
// of a face, in unit piece coordinates.
const FaceOffset = 0.5

// EnvPrefix is the prefix of all environment variable overrides.
const EnvPrefix = "CUBESNAP_"

// New returns a new [Config] with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults sets all fields to their `default:` tag values.
func (c *Config) Defaults() {
	reflectx.SetFromDefaultTags(c)
}

// Tolerance returns the distance within which two positions
// along an axis collapse into the same slot.
func (c *Config) Tolerance() float32 {
	return c.PieceSize * c.ClusterTolerance
}

// JoinDistance returns the distance between the centers of two joined
// pieces, in world units.
func (c *Config) JoinDistance() float32 {
	return FaceOffset / c.JoinOffsetDivisor
}

// TickStep returns the duration of one tick, in seconds.
func (c *Config) TickStep() float32 {
	if c.TickRate <= 0 {
		return 0
	}
	return 1 / c.TickRate
}

// Open loads the config from the given TOML file, on top of the
// current values.
func (c *Config) Open(filename string) error {
	if err := tomlx.Open(c, filename); err != nil {
		return fmt.Errorf("config: open %q: %w", filename, err)
	}
	return nil
}

// ParseEnv applies CUBESNAP_* environment variable overrides.
func (c *Config) ParseEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Load returns a config with defaults, then the given TOML file
// if non-empty, then environment overrides.
func Load(filename string) (*Config, error) {
	c := New()
	if filename != "" {
		if err := c.Open(filename); err != nil {
			return nil, err
		}
	}
	if err := c.ParseEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate returns an error for values the mechanic cannot work with.
// All problems found are joined into the error.
func (c *Config) Validate() error {
	var errs []error
	if c.PieceSize <= 0 {
		errs = append(errs, fmt.Errorf("config: PieceSize must be positive, got %g", c.PieceSize))
	}
	if c.JoinOffsetDivisor <= 0 {
		errs = append(errs, fmt.Errorf("config: JoinOffsetDivisor must be positive, got %g", c.JoinOffsetDivisor))
	} else if c.PieceSize > 0 && math32.Abs(c.JoinDistance()-c.PieceSize) > 1e-3*c.PieceSize {
		errs = append(errs, fmt.Errorf("config: JoinOffsetDivisor %g joins pieces %g apart but PieceSize is %g (use JoinOffsetDivisor %g)",
			c.JoinOffsetDivisor, c.JoinDistance(), c.PieceSize, FaceOffset/c.PieceSize))
	}
	if c.JoinSettleTicks < 0 {
		errs = append(errs, fmt.Errorf("config: JoinSettleTicks must be >= 0, got %d", c.JoinSettleTicks))
	}
	if c.SeparationThreshold < 0 {
		errs = append(errs, fmt.Errorf("config: SeparationThreshold must be >= 0, got %g", c.SeparationThreshold))
	}
	return errors.Join(errs...)
}
