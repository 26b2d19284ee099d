// Package config provides YAML-based game configuration loading for the
// frogger arcade.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FroggerConfig contains all configuration for a Frogger session.
// Values are fixed at session start and never change while playing.
type FroggerConfig struct {
	Board     BoardConfig      `yaml:"board"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
	Rules     RulesConfig      `yaml:"rules"`
}

// BoardConfig defines the playfield in board pixels.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tile_size"`
}

// ObstacleConfig is the initial state of one car.
type ObstacleConfig struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Speed int `yaml:"speed"` // Pixels per tick, may be negative
	Width int `yaml:"width"`
}

// RulesConfig defines lives, timing and collision policy.
type RulesConfig struct {
	Lives  int `yaml:"lives"`
	TickMS int `yaml:"tick_ms"`

	// AtMostOneLifeLossPerTick caps the damage of a tick to a single life.
	// When false every overlapping car costs a life.
	AtMostOneLifeLossPerTick bool `yaml:"at_most_one_life_loss_per_tick"`
}

// TickPeriod returns the fixed simulation period.
func (r RulesConfig) TickPeriod() time.Duration {
	return time.Duration(r.TickMS) * time.Millisecond
}

// Validate reports the first configuration problem found, if any.
func (c FroggerConfig) Validate() error {
	b := c.Board
	if b.TileSize <= 0 {
		return fmt.Errorf("config: tile_size must be positive, got %d", b.TileSize)
	}
	if b.Width < b.TileSize || b.Height < b.TileSize {
		return fmt.Errorf("config: board %dx%d is smaller than one tile (%d)", b.Width, b.Height, b.TileSize)
	}
	if len(c.Obstacles) == 0 {
		return errors.New("config: at least one obstacle is required")
	}
	for i, o := range c.Obstacles {
		if o.Width <= 0 {
			return fmt.Errorf("config: obstacle %d: width must be positive, got %d", i, o.Width)
		}
		if o.Y < 0 || o.Y > b.Height-b.TileSize {
			return fmt.Errorf("config: obstacle %d: lane y=%d is outside the board", i, o.Y)
		}
	}
	if c.Rules.Lives < 1 {
		return fmt.Errorf("config: lives must be at least 1, got %d", c.Rules.Lives)
	}
	if c.Rules.TickMS <= 0 {
		return fmt.Errorf("config: tick_ms must be positive, got %d", c.Rules.TickMS)
	}
	return nil
}

// Variant names a registered rule set.
type Variant string

const (
	// VariantClassic loses one life per overlapping car.
	VariantClassic Variant = "classic"
	// VariantStrict loses at most one life per tick.
	VariantStrict Variant = "strict"
)

// ApplyVariant adjusts the rules for the given variant.
func ApplyVariant(cfg *FroggerConfig, v Variant) {
	switch v {
	case VariantStrict:
		cfg.Rules.AtMostOneLifeLossPerTick = true
	case VariantClassic:
		cfg.Rules.AtMostOneLifeLossPerTick = false
	}
}
