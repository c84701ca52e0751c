// Package config provides YAML-based configuration loading and validation
// for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// SnakeConfig contains all tunable game parameters.
type SnakeConfig struct {
	Board BoardConfig `yaml:"board"`
	Snake SnakeParams `yaml:"snake"`
	Food  FoodConfig  `yaml:"food"`
}

// BoardConfig defines the play area and its shrink policy.
type BoardConfig struct {
	Size       int `yaml:"size"`        // Initial side length
	ShrinkStep int `yaml:"shrink_step"` // Removed from both sides on every boundary exit
	CellSize   int `yaml:"cell_size"`   // Grid step
	MinSide    int `yaml:"min_side"`    // Smallest side a shrink may produce
}

// SnakeParams defines the snake's starting shape and speed.
type SnakeParams struct {
	InitialLength  int `yaml:"initial_length"`
	MoveIntervalMS int `yaml:"move_interval_ms"`
}

// FoodConfig defines food respawn timing and placement.
type FoodConfig struct {
	RespawnMinMS int `yaml:"respawn_min_ms"`
	RespawnMaxMS int `yaml:"respawn_max_ms"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// MoveInterval returns the movement repeat delay.
func (c SnakeConfig) MoveInterval() time.Duration {
	return time.Duration(c.Snake.MoveIntervalMS) * time.Millisecond
}

// RespawnWindow returns the food respawn delay bounds.
func (c SnakeConfig) RespawnWindow() (minDelay, maxDelay time.Duration) {
	return time.Duration(c.Food.RespawnMinMS) * time.Millisecond,
		time.Duration(c.Food.RespawnMaxMS) * time.Millisecond
}

// Validate checks that the config describes a playable board.
func (c SnakeConfig) Validate() error {
	b := c.Board
	switch {
	case b.CellSize <= 0:
		return fmt.Errorf("%w: board.cell_size must be positive, got %d", ErrInvalid, b.CellSize)
	case b.Size <= 0:
		return fmt.Errorf("%w: board.size must be positive, got %d", ErrInvalid, b.Size)
	case b.ShrinkStep <= 0:
		return fmt.Errorf("%w: board.shrink_step must be positive, got %d", ErrInvalid, b.ShrinkStep)
	case b.MinSide <= 0:
		return fmt.Errorf("%w: board.min_side must be positive, got %d", ErrInvalid, b.MinSide)
	case b.Size%b.CellSize != 0:
		return fmt.Errorf("%w: board.size %d is not a multiple of cell_size %d", ErrInvalid, b.Size, b.CellSize)
	case b.ShrinkStep%b.CellSize != 0:
		return fmt.Errorf("%w: board.shrink_step %d is not a multiple of cell_size %d", ErrInvalid, b.ShrinkStep, b.CellSize)
	case b.MinSide%b.CellSize != 0:
		return fmt.Errorf("%w: board.min_side %d is not a multiple of cell_size %d", ErrInvalid, b.MinSide, b.CellSize)
	case b.MinSide > b.Size:
		return fmt.Errorf("%w: board.min_side %d exceeds board.size %d", ErrInvalid, b.MinSide, b.Size)
	}

	s := c.Snake
	switch {
	case s.InitialLength < 2:
		return fmt.Errorf("%w: snake.initial_length must be at least 2, got %d", ErrInvalid, s.InitialLength)
	case s.InitialLength*b.CellSize > b.Size:
		return fmt.Errorf("%w: a snake of %d cells does not fit on a %d board", ErrInvalid, s.InitialLength, b.Size)
	case s.MoveIntervalMS <= 0:
		return fmt.Errorf("%w: snake.move_interval_ms must be positive, got %d", ErrInvalid, s.MoveIntervalMS)
	}

	f := c.Food
	switch {
	case f.RespawnMinMS < 0:
		return fmt.Errorf("%w: food.respawn_min_ms must not be negative, got %d", ErrInvalid, f.RespawnMinMS)
	case f.RespawnMinMS > f.RespawnMaxMS:
		return fmt.Errorf("%w: food.respawn_min_ms %d exceeds respawn_max_ms %d", ErrInvalid, f.RespawnMinMS, f.RespawnMaxMS)
	case f.MaxAttempts < 0:
		return fmt.Errorf("%w: food.max_attempts must not be negative, got %d", ErrInvalid, f.MaxAttempts)
	}
	return nil
}
