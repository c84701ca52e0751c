package game

import (
	"time"

	"github.com/vovakirdan/shrinking-snake/internal/snake"
)

// StateType represents the current game state.
type StateType string

const (
	StateIdle        StateType = "idle"
	StatePlaying     StateType = "playing"
	StatePaused      StateType = "paused"
	StateGameOver    StateType = "game_over"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Elapsed  time.Duration
	Score    int
	Side     int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      snake.Direction
	FoodX    int
	FoodY    int
	HasFood  bool
	Repaints int
	State    StateType
	Cause    Cause
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case !g.moving:
		state = StateIdle
	}

	head := g.snake.Head()
	return Snapshot{
		Tick:     g.tick,
		Elapsed:  g.timers.Now(),
		Score:    g.score,
		Side:     g.board.Side(),
		SnakeLen: g.snake.Len(),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.snake.Direction(),
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		HasFood:  g.hasFood,
		Repaints: g.repaints,
		State:    state,
		Cause:    g.cause,
	}
}
