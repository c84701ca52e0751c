package game

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/shrinking-snake/internal/config"
	"github.com/vovakirdan/shrinking-snake/internal/core"
	"github.com/vovakirdan/shrinking-snake/internal/snake"
)

func newTestGame(t *testing.T, cfg config.SnakeConfig, seed int64) *Game {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	g := New(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: seed})
	return g
}

func defaultGame(t *testing.T) *Game {
	return newTestGame(t, config.DefaultSnakeConfig(), 1)
}

func cells(xy ...int) []core.Cell {
	out := make([]core.Cell, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Cell{X: xy[i], Y: xy[i+1]})
	}
	return out
}

// parkFood moves the food somewhere the test will not reach.
func parkFood(g *Game, c core.Cell) {
	g.food = c
	g.hasFood = true
}

func dirFrame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestStart(t *testing.T) {
	g := defaultGame(t)

	want := cells(64, 0, 48, 0, 32, 0, 16, 0, 0, 0)
	if !slices.Equal(g.Body(), want) {
		t.Errorf("body = %v, expected %v", g.Body(), want)
	}
	if g.Score() != 0 || g.Side() != 800 {
		t.Errorf("score = %d side = %d", g.Score(), g.Side())
	}

	f, ok := g.Food()
	if !ok {
		t.Fatal("food should be placed at start")
	}
	if slices.Contains(g.Body(), f) {
		t.Errorf("food %v placed on the body", f)
	}

	d, armed := g.timers.Remaining(timerFood)
	if !armed || d < 3*time.Second || d > 10*time.Second {
		t.Errorf("food timer = %v armed = %v, expected within [3s, 10s]", d, armed)
	}
	if g.timers.Armed(timerMove) {
		t.Error("movement timer must not run before the first input")
	}
	if s := g.Snapshot(); s.State != StateIdle {
		t.Errorf("state = %s, expected idle", s.State)
	}
}

func TestIdleUntilFirstDirection(t *testing.T) {
	g := defaultGame(t)

	for range 600 { // 10 seconds at 60 fps
		g.Step(core.NewInputFrame())
	}
	if g.Body()[0] != (core.Cell{X: 64, Y: 0}) {
		t.Errorf("idle snake moved to %v", g.Body()[0])
	}
	if _, ok := g.Food(); !ok {
		t.Error("food should keep respawning while idle")
	}
}

func TestMoveRightScenario(t *testing.T) {
	g := defaultGame(t)

	g.HandleDirection(snake.DirRight)

	want := cells(80, 0, 64, 0, 48, 0, 32, 0, 16, 0)
	if !slices.Equal(g.Body(), want) {
		t.Errorf("body = %v, expected %v", g.Body(), want)
	}
	d, ok := g.timers.Remaining(timerMove)
	if !ok || d != 80*time.Millisecond {
		t.Errorf("movement timer = %v armed = %v, expected 80ms", d, ok)
	}
}

func TestRepeatCadence(t *testing.T) {
	g := defaultGame(t)
	g.HandleDirection(snake.DirRight) // head 80

	g.Advance(800 * time.Millisecond)

	// Food never spawns on row 0, so the snake just glides
	if head := g.Body()[0]; head != (core.Cell{X: 240, Y: 0}) {
		t.Errorf("head after 800ms = %v, expected (240,0)", head)
	}
}

func TestStepAppliesDirections(t *testing.T) {
	g := defaultGame(t)
	parkFood(g, core.Cell{X: 400, Y: 400})

	g.Step(dirFrame(core.ActionDown, core.ActionLeft))

	want := cells(48, 16, 64, 16, 64, 0, 48, 0, 32, 0)
	if !slices.Equal(g.Body(), want) {
		t.Errorf("body = %v, expected %v", g.Body(), want)
	}
	if g.Snapshot().Dir != snake.DirLeft {
		t.Errorf("direction = %v, expected left", g.Snapshot().Dir)
	}
}

func TestNeckReversalIgnored(t *testing.T) {
	g := defaultGame(t)
	before := g.Body()

	g.HandleDirection(snake.DirLeft)

	if !slices.Equal(g.Body(), before) {
		t.Errorf("reversal moved the snake: %v", g.Body())
	}
	if g.timers.Armed(timerMove) {
		t.Error("rejected reversal must not arm the movement timer")
	}
	if g.Snapshot().Dir != snake.DirRight {
		t.Errorf("direction = %v, expected right", g.Snapshot().Dir)
	}
}

func TestBoundaryExitShrinksAndReverses(t *testing.T) {
	g := defaultGame(t)
	for g.Body()[0].X < 784 {
		g.HandleDirection(snake.DirRight)
	}
	if g.Score() != 0 {
		t.Fatalf("row 0 should hold no food, score = %d", g.Score())
	}
	repaints := g.repaints

	g.HandleDirection(snake.DirRight) // candidate x = 800

	if g.Side() != 752 {
		t.Errorf("side = %d, expected 752", g.Side())
	}
	want := cells(672, 0, 688, 0, 704, 0, 720, 0, 736, 0)
	if !slices.Equal(g.Body(), want) {
		t.Errorf("body = %v, expected %v", g.Body(), want)
	}
	if g.Snapshot().Dir != snake.DirLeft {
		t.Errorf("direction = %v, expected left after the flip", g.Snapshot().Dir)
	}
	if !g.timers.Armed(timerMove) || !g.timers.Armed(timerFood) {
		t.Error("both timers should be armed after a reversal")
	}
	if g.repaints <= repaints {
		t.Error("reversal should repaint")
	}

	f, _ := g.Food()
	if f.X > 752-16 || f.Y > 752-16 || slices.Contains(g.Body(), f) {
		t.Errorf("food %v invalid on the shrunk board", f)
	}

	// The timer carries the snake away from its old tail
	g.Advance(80 * time.Millisecond)
	if head := g.Body()[0]; head != (core.Cell{X: 656, Y: 0}) {
		t.Errorf("head after reversal = %v, expected (656,0)", head)
	}
}

func TestExitThroughOriginShiftsNothing(t *testing.T) {
	g := defaultGame(t)
	parkFood(g, core.Cell{X: 400, Y: 400})

	g.HandleDirection(snake.DirUp) // candidate y = -16

	if g.Side() != 752 {
		t.Errorf("side = %d, expected 752", g.Side())
	}
	want := cells(0, 0, 16, 0, 32, 0, 48, 0, 64, 0)
	if !slices.Equal(g.Body(), want) {
		t.Errorf("body = %v, expected %v", g.Body(), want)
	}
	if g.Snapshot().Dir != snake.DirDown {
		t.Errorf("direction = %v, expected down", g.Snapshot().Dir)
	}
}

func TestEatFood(t *testing.T) {
	g := defaultGame(t)
	parkFood(g, core.Cell{X: 80, Y: 0})

	g.HandleDirection(snake.DirRight)

	if g.Score() != 1 {
		t.Errorf("score = %d, expected 1", g.Score())
	}
	if len(g.Body()) != 6 {
		t.Errorf("length = %d, expected 6", len(g.Body()))
	}
	f, ok := g.Food()
	if !ok || f == (core.Cell{X: 80, Y: 0}) {
		t.Errorf("food should move after being eaten, got %v", f)
	}
	if slices.Contains(g.Body(), f) {
		t.Errorf("new food %v on the body", f)
	}
	d, _ := g.timers.Remaining(timerFood)
	if d < 3*time.Second || d > 10*time.Second {
		t.Errorf("respawn timer = %v after eating", d)
	}
}

// On a small board the grown tail lands inside the food area; the new food
// must avoid it.
func TestEatFoodAvoidsGrownTail(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.Size = 112
	cfg.Board.MinSide = 96

	for seed := int64(1); seed <= 200; seed++ {
		g := newTestGame(t, cfg, seed)
		parkFood(g, core.Cell{X: 96, Y: 96})

		g.HandleDirection(snake.DirDown)
		for range 4 {
			g.HandleDirection(snake.DirLeft)
		}
		want := cells(0, 16, 16, 16, 32, 16, 48, 16, 64, 16)
		if !slices.Equal(g.Body(), want) {
			t.Fatalf("seed %d: body = %v, expected %v", seed, g.Body(), want)
		}

		parkFood(g, core.Cell{X: 0, Y: 32})
		g.HandleDirection(snake.DirDown)

		body := g.Body()
		if len(body) != 6 || body[5] != (core.Cell{X: 64, Y: 16}) {
			t.Fatalf("seed %d: body = %v, expected the tail to grow to (64,16)", seed, body)
		}
		f, ok := g.Food()
		if !ok {
			t.Fatalf("seed %d: no food after eating", seed)
		}
		if slices.Contains(body, f) {
			t.Fatalf("seed %d: food %v placed on body %v", seed, f, body)
		}
	}
}

func TestSelfCollisionEndsRun(t *testing.T) {
	g := defaultGame(t)
	parkFood(g, core.Cell{X: 400, Y: 400})

	for _, d := range []snake.Direction{snake.DirDown, snake.DirLeft, snake.DirUp} {
		g.HandleDirection(d)
	}

	out, ok := g.Outcome()
	if !ok {
		t.Fatal("running into the body should end the run")
	}
	if out.Cause != CauseSelfCollision || out.Score != 0 || out.Length != 5 || out.Side != 800 {
		t.Errorf("outcome = %+v", out)
	}
	if g.timers.Armed(timerMove) || g.timers.Armed(timerFood) {
		t.Error("timers must be cancelled after the loss")
	}

	before := g.Snapshot()
	g.Advance(time.Minute)
	g.HandleDirection(snake.DirRight)
	after := g.Snapshot()
	if before.HeadX != after.HeadX || before.HeadY != after.HeadY || before.FoodX != after.FoodX {
		t.Error("simulation must stay frozen after the loss")
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := defaultGame(t)
	g.HandleDirection(snake.DirRight)
	foodLeft, _ := g.timers.Remaining(timerFood)

	g.Step(dirFrame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause input should pause")
	}
	head := g.Body()[0]
	for range 120 {
		g.Step(core.NewInputFrame())
	}
	g.Advance(time.Second)
	if g.Body()[0] != head {
		t.Error("snake moved while paused")
	}
	if left, _ := g.timers.Remaining(timerFood); left != foodLeft {
		t.Errorf("food timer moved while paused: %v -> %v", foodLeft, left)
	}

	g.Step(dirFrame(core.ActionPause))
	if g.State().Paused {
		t.Fatal("second pause input should resume")
	}
	g.Advance(80 * time.Millisecond)
	if g.Body()[0] == head {
		t.Error("snake should move after resuming")
	}
}

func TestPlayAgainRestoresBoard(t *testing.T) {
	g := defaultGame(t)
	parkFood(g, core.Cell{X: 400, Y: 400})
	g.HandleDirection(snake.DirUp) // exit through the top: side 752
	parkFood(g, core.Cell{X: 400, Y: 400})
	// Head is now (0,0) heading down
	for _, d := range []snake.Direction{snake.DirDown, snake.DirRight, snake.DirUp} {
		g.HandleDirection(d)
	}
	if !g.State().GameOver {
		t.Fatalf("expected a loss, snapshot %+v", g.Snapshot())
	}

	g.Step(dirFrame(core.ActionRestart))

	if g.State().GameOver || g.Score() != 0 || g.Side() != 800 {
		t.Errorf("after play again: over=%v score=%d side=%d", g.State().GameOver, g.Score(), g.Side())
	}
	if !slices.Equal(g.Body(), cells(64, 0, 48, 0, 32, 0, 16, 0, 0, 0)) {
		t.Errorf("body not reset: %v", g.Body())
	}
	if _, ok := g.Outcome(); ok {
		t.Error("Outcome should be cleared by play again")
	}
}

func TestBoardCollapse(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.Size = 160
	cfg.Board.MinSide = 160
	g := newTestGame(t, cfg, 5)
	parkFood(g, core.Cell{X: 80, Y: 80})

	for g.Body()[0].X < 144 {
		g.HandleDirection(snake.DirRight)
	}
	g.HandleDirection(snake.DirRight)

	out, ok := g.Outcome()
	if !ok || out.Cause != CauseBoardCollapsed {
		t.Fatalf("outcome = %+v ok = %v, expected board-collapsed", out, ok)
	}
	if out.Side != 160 {
		t.Errorf("side = %d, the refused shrink must leave it at 160", out.Side)
	}
}

func TestBoardFull(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Size: 32, ShrinkStep: 16, CellSize: 16, MinSide: 16}
	cfg.Snake.InitialLength = 2
	g := newTestGame(t, cfg, 9)

	f, ok := g.Food()
	if !ok || f != (core.Cell{X: 16, Y: 16}) {
		t.Fatalf("food = %v ok = %v, the only interior cell is (16,16)", f, ok)
	}

	g.HandleDirection(snake.DirDown) // eat the only food cell

	out, ok := g.Outcome()
	if !ok || out.Cause != CauseBoardFull {
		t.Fatalf("outcome = %+v ok = %v, expected board-full", out, ok)
	}
	if out.Score != 1 {
		t.Errorf("score = %d, expected 1", out.Score)
	}
}

func TestOutcomeDuration(t *testing.T) {
	g := defaultGame(t)
	parkFood(g, core.Cell{X: 400, Y: 400})
	g.HandleDirection(snake.DirDown)
	g.HandleDirection(snake.DirLeft)
	g.HandleDirection(snake.DirUp)
	g.Advance(time.Second) // no-op after the loss

	out, ok := g.Outcome()
	if !ok || out.Duration != 0 {
		t.Errorf("duration = %v, expected 0 for a loss before any time passed", out.Duration)
	}
}

// Food is never placed on the snake across long random games.
func TestFoodNeverPlacedOnBody(t *testing.T) {
	dirs := []snake.Direction{snake.DirUp, snake.DirDown, snake.DirLeft, snake.DirRight}

	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, config.DefaultSnakeConfig(), seed)
		rng := rand.New(rand.NewSource(seed))

		lastFood, _ := g.Food()
		for i := 0; i < 2000 && !g.State().GameOver; i++ {
			if rng.Intn(4) == 0 {
				g.HandleDirection(dirs[rng.Intn(len(dirs))])
			} else {
				g.Advance(80 * time.Millisecond)
			}

			f, ok := g.Food()
			if !ok || f == lastFood {
				continue
			}
			body := g.Body()
			if slices.Contains(body, f) {
				t.Fatalf("seed %d: food %v placed on body %v", seed, f, body)
			}
			if f.X <= 0 || f.Y <= 0 || f.X >= g.Side() || f.Y >= g.Side() {
				t.Fatalf("seed %d: food %v outside interior of side %d", seed, f, g.Side())
			}
			lastFood = f
		}
	}
}

func TestScoreCountsFood(t *testing.T) {
	g := defaultGame(t)
	for i := 1; i <= 3; i++ {
		next := g.Body()[0].Add(16, 0)
		parkFood(g, next)
		g.HandleDirection(snake.DirRight)
		if g.Score() != i || len(g.Body()) != 5+i {
			t.Fatalf("after %d meals: score = %d length = %d", i, g.Score(), len(g.Body()))
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Snapshot {
		g := newTestGame(t, config.DefaultSnakeConfig(), 42)
		inputs := []core.Action{core.ActionDown, core.ActionNone, core.ActionRight, core.ActionNone, core.ActionUp}
		var snaps []Snapshot
		for i := range 900 {
			a := inputs[(i/37)%len(inputs)]
			if i%37 == 0 && a != core.ActionNone {
				g.Step(dirFrame(a))
			} else {
				g.Step(core.NewInputFrame())
			}
			if i%30 == 0 {
				snaps = append(snaps, g.Snapshot())
			}
		}
		return snaps
	}

	a, b := run(), run()
	if !slices.Equal(a, b) {
		t.Error("same seed and input produced different runs")
	}
}

type recordingSurface struct {
	clears int
	draws  map[core.Color][]core.Cell
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.draws = map[core.Color][]core.Cell{}
}

func (r *recordingSurface) DrawCells(color core.Color, _ int, cells []core.Cell) {
	r.draws[color] = append(r.draws[color], cells...)
}

func TestRepaintMarksHead(t *testing.T) {
	g := defaultGame(t)
	surf := &recordingSurface{}
	g.SetSurface(surf)

	g.HandleDirection(snake.DirRight)

	if surf.clears < 2 {
		t.Errorf("clears = %d, expected a repaint per change", surf.clears)
	}
	if head := surf.draws[colorHead]; len(head) != 1 || head[0] != (core.Cell{X: 80, Y: 0}) {
		t.Errorf("head drawn as %v", head)
	}
	if len(surf.draws[colorBody]) != 4 {
		t.Errorf("body drawn with %d cells, expected 4", len(surf.draws[colorBody]))
	}
	f, _ := g.Food()
	if got := surf.draws[colorFood]; len(got) != 1 || got[0] != f {
		t.Errorf("food drawn as %v, expected %v", got, f)
	}
}
