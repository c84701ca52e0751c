// Package board implements the square play area and its shrink policy.
package board

import "github.com/vovakirdan/shrinking-snake/internal/core"

// Default board measures in board units.
const (
	DefaultSide       = 800
	DefaultShrinkStep = 48
	DefaultMinSide    = 96
)

// Board is a square play area of side S whose origin is (0,0).
// Every boundary exit shrinks both dimensions by the same fixed step,
// whichever edge was crossed.
type Board struct {
	original   int
	side       int
	shrinkStep int
	step       int
	minSide    int
}

// New creates a board of the given side.
// step is the grid cell size; minSide is the smallest side Shrink may produce.
func New(side, shrinkStep, step, minSide int) *Board {
	return &Board{
		original:   side,
		side:       side,
		shrinkStep: shrinkStep,
		step:       step,
		minSide:    minSide,
	}
}

// Side returns the current side length.
func (b *Board) Side() int {
	return b.side
}

// Step returns the grid cell size.
func (b *Board) Step() int {
	return b.step
}

// Contains reports whether c lies in [0, side) on both axes.
func (b *Board) Contains(c core.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.side && c.Y < b.side
}

// ExitOffset returns the shift to apply to the snake after c left the board.
// Only an overflow past the far edge of an axis moves that axis, and always
// inward by one shrink step. Exits through the origin edges shift nothing.
func (b *Board) ExitOffset(c core.Cell) (dx, dy int) {
	if c.X >= b.side {
		dx = -b.shrinkStep
	}
	if c.Y >= b.side {
		dy = -b.shrinkStep
	}
	return dx, dy
}

// CanShrink reports whether one more shrink keeps the side at or above the floor.
func (b *Board) CanShrink() bool {
	return b.side-b.shrinkStep >= b.minSide && b.side-b.shrinkStep > 0
}

// Shrink reduces both dimensions by one shrink step.
// It returns false and leaves the board untouched when that would cross the floor.
func (b *Board) Shrink() bool {
	if !b.CanShrink() {
		return false
	}
	b.side -= b.shrinkStep
	return true
}

// Reset restores the original side length.
func (b *Board) Reset() {
	b.side = b.original
}
