package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
// It matches defaults/snake.yaml.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Size:       800,
			ShrinkStep: 48,
			CellSize:   16,
			MinSide:    96,
		},
		Snake: SnakeParams{
			InitialLength:  5,
			MoveIntervalMS: 80,
		},
		Food: FoodConfig{
			RespawnMinMS: 3000,
			RespawnMaxMS: 10000,
			MaxAttempts:  64,
		},
	}
}
