package game

// Cause records why a run ended.
type Cause string

const (
	CauseNone           Cause = ""
	CauseSelfCollision  Cause = "self-collision"
	CauseBoardCollapsed Cause = "board-collapsed"
	CauseBoardFull      Cause = "board-full"
)

// Message returns the end-screen line for the cause.
func (c Cause) Message() string {
	switch c {
	case CauseSelfCollision:
		return "The snake ate itself"
	case CauseBoardCollapsed:
		return "The board collapsed"
	case CauseBoardFull:
		return "No room left for food"
	default:
		return ""
	}
}
