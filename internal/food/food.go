// Package food chooses where food appears and when it respawns.
package food

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/shrinking-snake/internal/core"
)

// DefaultMaxAttempts is how many random proposals Place tries before it
// falls back to enumerating the free cells.
const DefaultMaxAttempts = 64

// Default respawn window.
const (
	DefaultRespawnMin = 3000 * time.Millisecond
	DefaultRespawnMax = 10000 * time.Millisecond
)

// Propose returns a random interior cell: each axis independently picks
// k*step with k uniform in [1, side/step-1]. The origin row and column are
// never chosen.
func Propose(rng *rand.Rand, side, step int) core.Cell {
	return core.Cell{
		X: core.RandomPosition(rng, side, step),
		Y: core.RandomPosition(rng, side, step),
	}
}

// Placer picks food cells that are not occupied.
type Placer struct {
	Step        int
	MaxAttempts int
}

// NewPlacer creates a placer for the given grid step.
func NewPlacer(step, maxAttempts int) *Placer {
	if step <= 0 {
		step = core.Step
	}
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return &Placer{Step: step, MaxAttempts: maxAttempts}
}

// Place returns a cell on a side x side board for which occupied is false.
// It first samples up to MaxAttempts proposals, then picks uniformly among
// every free interior cell. ok is false only when no free cell exists.
func (p *Placer) Place(rng *rand.Rand, side int, occupied func(core.Cell) bool) (core.Cell, bool) {
	if core.InteriorSlots(side, p.Step) < 1 {
		return core.Cell{}, false
	}

	for range p.MaxAttempts {
		c := Propose(rng, side, p.Step)
		if !occupied(c) {
			return c, true
		}
	}

	free := FreeCells(side, p.Step, occupied)
	if len(free) == 0 {
		return core.Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}

// FreeCells lists every interior cell Propose could return that is not
// occupied, in row-major order.
func FreeCells(side, step int, occupied func(core.Cell) bool) []core.Cell {
	slots := core.InteriorSlots(side, step)
	if slots < 1 {
		return nil
	}
	free := make([]core.Cell, 0, slots*slots)
	for y := 1; y <= slots; y++ {
		for x := 1; x <= slots; x++ {
			c := core.Cell{X: x * step, Y: y * step}
			if !occupied(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// RespawnDelay returns a duration uniform in [minDelay, maxDelay] at
// millisecond resolution. Swapped bounds are tolerated.
func RespawnDelay(rng *rand.Rand, minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
	}
	lo := minDelay.Milliseconds()
	span := maxDelay.Milliseconds() - lo
	if span <= 0 {
		return minDelay
	}
	return time.Duration(lo+rng.Int63n(span+1)) * time.Millisecond
}
