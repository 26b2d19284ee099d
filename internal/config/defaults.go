package config

import (
	_ "embed"
)

//go:embed defaults/frogger.yaml
var defaultFroggerYAML []byte

// DefaultFroggerConfig returns the built-in Frogger configuration: a 600x600
// board of 50px tiles with three cars and three lives.
func DefaultFroggerConfig() FroggerConfig {
	return FroggerConfig{
		Board: BoardConfig{
			Width:    600,
			Height:   600,
			TileSize: 50,
		},
		Obstacles: []ObstacleConfig{
			{X: 0, Y: 450, Speed: 3, Width: 100},
			{X: 200, Y: 400, Speed: 4, Width: 150},
			{X: 400, Y: 350, Speed: 5, Width: 100},
		},
		Rules: RulesConfig{
			Lives:                    3,
			TickMS:                   100,
			AtMostOneLifeLossPerTick: false,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "frogger":
		return defaultFroggerYAML
	default:
		return nil
	}
}
