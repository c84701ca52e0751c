// Package snake implements the snake state machine: an ordered body of grid
// cells with the head at index 0, a heading, and the move, grow and reverse
// operations that keep the body connected.
package snake

import (
	"slices"

	"github.com/vovakirdan/shrinking-snake/internal/core"
)

// DefaultLength is the body length after Initialize.
const DefaultLength = 5

// Snake owns the body, the cached head and the current heading.
// The head is always body[0]; nothing stores a per-cell head flag.
type Snake struct {
	body        []core.Cell
	head        core.Cell
	direction   Direction
	step        int
	length      int
	flipPending bool
}

// New creates a snake that moves step units per move and starts with length cells.
// Call Initialize before use.
func New(step, length int) *Snake {
	if step <= 0 {
		step = core.Step
	}
	if length < 2 {
		length = 2
	}
	return &Snake{step: step, length: length}
}

// Initialize lays the body out along the top row, head rightmost, heading right.
// With the defaults the body is (64,0) (48,0) (32,0) (16,0) (0,0).
func (s *Snake) Initialize() []core.Cell {
	s.body = make([]core.Cell, s.length)
	for i := range s.body {
		s.body[i] = core.Cell{X: (s.length - 1 - i) * s.step, Y: 0}
	}
	s.head = s.body[0]
	s.direction = DirRight
	s.flipPending = false
	return s.Body()
}

// Body returns a copy of the body, head first.
func (s *Snake) Body() []core.Cell {
	return slices.Clone(s.body)
}

// Head returns the cached head cell.
func (s *Snake) Head() core.Cell {
	return s.head
}

// Neck returns body[1].
func (s *Snake) Neck() (core.Cell, bool) {
	if len(s.body) < 2 {
		return core.Cell{}, false
	}
	return s.body[1], true
}

// Tail returns the last body cell.
func (s *Snake) Tail() core.Cell {
	if len(s.body) == 0 {
		return core.Cell{}
	}
	return s.body[len(s.body)-1]
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Direction returns the current heading.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Step returns the move distance in board units.
func (s *Snake) Step() int {
	return s.step
}

// NextHead returns the cell one step from the head in dir.
func (s *Snake) NextHead(dir Direction) core.Cell {
	dx, dy := dir.Delta(s.step)
	return s.head.Add(dx, dy)
}

// RequestMove validates a proposed head. A candidate equal to the neck is a
// reversal and is rejected silently. On acceptance dir becomes the heading;
// the caller decides whether the move is in bounds before calling CommitMove.
func (s *Snake) RequestMove(candidate core.Cell, dir Direction) bool {
	if neck, ok := s.Neck(); ok && candidate == neck {
		return false
	}
	s.direction = dir
	return true
}

// CommitMove advances the body to newHead: the tail cell is dropped and
// newHead becomes body[0]. It returns false, leaving the body untouched, when
// newHead lands on any current body cell.
func (s *Snake) CommitMove(newHead core.Cell) bool {
	if s.IsSelfCollision(newHead) {
		return false
	}
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = newHead
	s.head = newHead
	return true
}

// Grow appends one cell beyond the tail, continuing the line of the last
// segment so the body stays connected.
func (s *Snake) Grow() {
	n := len(s.body)
	if n == 0 {
		return
	}
	tail := s.Tail()

	var next core.Cell
	if n == 1 {
		dx, dy := s.direction.Opposite().Delta(s.step)
		next = tail.Add(dx, dy)
	} else {
		preTail := s.body[n-2]
		if tail.X == preTail.X {
			dy := -s.step
			if preTail.Y < tail.Y {
				dy = s.step
			}
			next = tail.Add(0, dy)
		} else {
			dx := -s.step
			if preTail.X < tail.X {
				dx = s.step
			}
			next = tail.Add(dx, 0)
		}
	}
	s.body = append(s.body, next)
}

// ReverseAndShift turns the snake around after a boundary exit: the old tail
// becomes the head and every cell moves by (dx, dy). The heading is not
// changed yet; ApplyPendingFlip inverts it once the caller has repainted.
func (s *Snake) ReverseAndShift(dx, dy int) []core.Cell {
	slices.Reverse(s.body)
	if dx != 0 || dy != 0 {
		for i := range s.body {
			s.body[i] = s.body[i].Add(dx, dy)
		}
	}
	if len(s.body) > 0 {
		s.head = s.body[0]
	}
	s.flipPending = true
	return s.Body()
}

// ApplyPendingFlip inverts the heading after a reversal.
// It returns false when no reversal is pending.
func (s *Snake) ApplyPendingFlip() bool {
	if !s.flipPending {
		return false
	}
	s.flipPending = false
	s.direction = s.direction.Opposite()
	return true
}

// IsSelfCollision reports whether c equals any current body cell.
func (s *Snake) IsSelfCollision(c core.Cell) bool {
	return slices.Contains(s.body, c)
}
