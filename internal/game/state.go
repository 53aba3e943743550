package game

// State is a mode of the game state machine.
type State int

const (
	StateMenu State = iota
	StateAbout
	StateRoundStart
	StateActive
	StatePaused
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateAbout:
		return "about"
	case StateRoundStart:
		return "round-start"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Transition records one state change.
type Transition struct {
	Tick     uint64
	From, To State
	Reason   string
}
