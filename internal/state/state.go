package state

import "github.com/rook-computer/moodlight/internal/palette"

type Phase int

const (
	BOOTING Phase = iota
	SELECTING
	FADING
	PAUSING
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case SELECTING:
		return "selecting"
	case FADING:
		return "fading"
	case PAUSING:
		return "pausing"
	default:
		return "unknown"
	}
}

// State is the controller's whole memory. It is passed into each controller
// step and the updated copy is returned; nothing else holds it.
type State struct {
	Phase Phase
	// Current is the last color a fade fully applied, never an intermediate.
	Current palette.Color
	Cycles  int
}

func New() State {
	return State{Phase: BOOTING, Current: palette.Black}
}
