package core

import (
	"fmt"
	"math/rand"
)

// Step is the size of one grid cell in board units.
const Step = 16

// Cell is one grid-aligned coordinate pair in board units.
// Cells are values: two cells are equal when their coordinates are equal.
type Cell struct {
	X, Y int
}

// Add returns the cell shifted by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Aligned reports whether both coordinates are multiples of step.
func (c Cell) Aligned(step int) bool {
	return step > 0 && c.X%step == 0 && c.Y%step == 0
}

// String returns "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Adjacent reports whether a and b are exactly one step apart along exactly one axis.
func Adjacent(a, b Cell, step int) bool {
	dx, dy := Abs(a.X-b.X), Abs(a.Y-b.Y)
	return (dx == step && dy == 0) || (dx == 0 && dy == step)
}

// RandomPosition returns a coordinate snapped to step, drawn uniformly from
// step, 2*step, ..., size-step. The origin row/column is never chosen.
// Returns 0 when size leaves no interior slot.
func RandomPosition(rng *rand.Rand, size, step int) int {
	slots := InteriorSlots(size, step)
	if slots < 1 {
		return 0
	}
	return (1 + rng.Intn(slots)) * step
}

// InteriorSlots returns how many positions RandomPosition can produce on one axis.
func InteriorSlots(size, step int) int {
	if step <= 0 {
		return 0
	}
	return size/step - 1
}
