// Package game runs one shrinking-snake session: it owns the board, the
// snake, the food and both timers, and turns direction input and elapsed
// time into moves, growth, board shrinks and the final loss.
package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/shrinking-snake/internal/board"
	"github.com/vovakirdan/shrinking-snake/internal/config"
	"github.com/vovakirdan/shrinking-snake/internal/core"
	"github.com/vovakirdan/shrinking-snake/internal/food"
	"github.com/vovakirdan/shrinking-snake/internal/sched"
	"github.com/vovakirdan/shrinking-snake/internal/snake"
)

// Timer slots.
const (
	timerMove sched.ID = "move"
	timerFood sched.ID = "food"
)

// Outcome describes a finished run.
type Outcome struct {
	Score    int
	Cause    Cause
	Length   int           // Final body length
	Side     int           // Final board side
	Duration time.Duration // Virtual time from start to loss, pauses excluded
}

// Game implements the shrinking-snake rules.
type Game struct {
	cfg     config.SnakeConfig
	rng     *rand.Rand
	board   *board.Board
	snake   *snake.Snake
	placer  *food.Placer
	timers  *sched.Scheduler
	canvas  *core.Canvas
	surface Surface

	tick     uint64
	tickDur  time.Duration
	score    int
	food     core.Cell
	hasFood  bool
	moving   bool // false until the first direction input
	gameOver bool
	paused   bool
	cause    Cause
	endedAt  time.Duration
	repaints int

	// Best score as reported by the presentation layer
	best    int
	newBest bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game from a validated config. Call Reset before use.
func New(cfg config.SnakeConfig) *Game {
	step := cfg.Board.CellSize
	g := &Game{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
		board:  board.New(cfg.Board.Size, cfg.Board.ShrinkStep, step, cfg.Board.MinSide),
		snake:  snake.New(step, cfg.Snake.InitialLength),
		placer: food.NewPlacer(step, cfg.Food.MaxAttempts),
		timers: sched.New(),
		canvas: core.NewCanvas(cfg.Board.Size, cfg.Board.Size, step),
	}
	g.surface = g.canvas
	g.tickDur = time.Second / 60
	return g
}

// ID returns the game identifier used for persistence.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Shrinking Snake"
}

// Reset seeds the game, adopts the screen size and starts a fresh run on a
// full-size board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickDur = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.PlayAgain()
}

// PlayAgain restores the board to its original side and starts a new run.
func (g *Game) PlayAgain() {
	g.board.Reset()
	g.Start()
}

// Start begins a run on the current board: score zero, a fresh snake, new
// food and a respawn timer. The snake stays idle until the first direction.
func (g *Game) Start() {
	g.timers.Reset()
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.moving = false
	g.cause = CauseNone
	g.endedAt = 0
	g.newBest = false
	g.snake.Initialize()
	g.clean()
}

// Resize adopts a new screen size. The run is kept; a screen too small for
// the board freezes play until it grows again.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	needW, needH := g.RequiredSize()
	g.tooSmall = w < needW || h < needH
}

// SetSurface redirects repaints to s. Render only shows the built-in canvas.
func (g *Game) SetSurface(s Surface) {
	g.surface = s
	g.repaint()
}

// SetBest tells the game the persisted best score, and whether the run that
// just ended set it.
func (g *Game) SetBest(best int, isNew bool) {
	g.best = best
	g.newBest = isNew
}

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		if input.Has(core.ActionRestart) || input.Has(core.ActionConfirm) {
			g.PlayAgain()
		}
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.TogglePause()
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Directions() {
		if dir, ok := snake.FromAction(a); ok {
			g.HandleDirection(dir)
		}
		if g.gameOver {
			return core.StepResult{State: g.State()}
		}
	}

	g.Advance(g.tickDur)
	return core.StepResult{State: g.State()}
}

// Advance moves virtual time forward, firing the movement and food timers.
// Nothing happens while paused or after the loss.
func (g *Game) Advance(dt time.Duration) {
	if g.gameOver || g.paused {
		return
	}
	g.timers.Advance(dt, g.fire)
}

// HandleDirection processes one direction input, as a key press would.
func (g *Game) HandleDirection(dir snake.Direction) {
	if g.gameOver || g.paused {
		return
	}
	g.moving = true
	g.move(dir)
}

// TogglePause freezes or resumes virtual time.
func (g *Game) TogglePause() {
	if !g.gameOver {
		g.paused = !g.paused
	}
}

func (g *Game) fire(id sched.ID) {
	switch id {
	case timerMove:
		g.move(g.snake.Direction())
	case timerFood:
		if g.placeFood() {
			g.repaint()
			g.armRespawn()
		}
	}
}

// move requests dir and resolves the result: a commit inside the board,
// a reversal on a boundary exit, or the loss on self-collision.
func (g *Game) move(dir snake.Direction) {
	candidate := g.snake.NextHead(dir)
	if !g.snake.RequestMove(candidate, dir) {
		return
	}

	if !g.board.Contains(candidate) {
		g.exitBoard(candidate)
		return
	}

	if !g.snake.CommitMove(candidate) {
		g.lose(CauseSelfCollision)
		return
	}
	g.positionChanged()
	if !g.gameOver {
		g.timers.Arm(timerMove, g.cfg.MoveInterval())
	}
}

func (g *Game) positionChanged() {
	if g.hasFood && g.snake.Head() == g.food {
		g.score++
		g.timers.Cancel(timerFood)
		// Grow first so the new food also avoids the new tail cell.
		g.snake.Grow()
		if !g.placeFood() {
			return
		}
		g.armRespawn()
	}
	g.repaint()
}

// exitBoard shrinks the board and turns the snake around, pulling it back
// inside along any axis that overflowed the far edge.
func (g *Game) exitBoard(candidate core.Cell) {
	dx, dy := g.board.ExitOffset(candidate)
	if !g.board.Shrink() {
		g.lose(CauseBoardCollapsed)
		return
	}
	g.snake.ReverseAndShift(dx, dy)
	g.clean()
	if g.gameOver {
		return
	}
	g.snake.ApplyPendingFlip()
	g.timers.Arm(timerMove, g.cfg.MoveInterval())
}

// clean replaces the food and restarts its respawn timer.
func (g *Game) clean() {
	g.timers.Cancel(timerFood)
	if !g.placeFood() {
		return
	}
	g.armRespawn()
	g.repaint()
}

// placeFood puts food on a free cell. With no free cell left the run ends.
func (g *Game) placeFood() bool {
	c, ok := g.placer.Place(g.rng, g.board.Side(), g.snake.IsSelfCollision)
	if !ok {
		g.hasFood = false
		g.lose(CauseBoardFull)
		return false
	}
	g.food = c
	g.hasFood = true
	return true
}

func (g *Game) armRespawn() {
	lo, hi := g.cfg.RespawnWindow()
	g.timers.Arm(timerFood, food.RespawnDelay(g.rng, lo, hi))
}

func (g *Game) lose(cause Cause) {
	g.gameOver = true
	g.cause = cause
	g.endedAt = g.timers.Now()
	g.timers.CancelAll()
	g.repaint()
}

// Outcome returns the finished run. ok is false while the run is alive.
func (g *Game) Outcome() (Outcome, bool) {
	if !g.gameOver {
		return Outcome{}, false
	}
	return Outcome{
		Score:    g.score,
		Cause:    g.cause,
		Length:   g.snake.Len(),
		Side:     g.board.Side(),
		Duration: g.endedAt,
	}, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Body returns a copy of the snake body, head first.
func (g *Game) Body() []core.Cell {
	return g.snake.Body()
}

// Food returns the current food cell.
func (g *Game) Food() (core.Cell, bool) {
	return g.food, g.hasFood
}

// Side returns the current board side.
func (g *Game) Side() int {
	return g.board.Side()
}
