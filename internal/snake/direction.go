package snake

import "github.com/vovakirdan/shrinking-snake/internal/core"

// Direction represents the snake's heading.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the coordinate change of one step in this direction.
// Y grows downward.
func (d Direction) Delta(step int) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -step
	case DirDown:
		return 0, step
	case DirLeft:
		return -step, 0
	default:
		return step, 0
	}
}

// FromAction converts a steering action to a direction.
func FromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
