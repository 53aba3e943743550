package core

// Action represents a semantic game action, abstracted from physical key presses.
// Platforms map their raw keys to actions; the simulation only sees actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionPause          // P - pause/unpause game
	ActionQuit           // Q, Ctrl+C - exit
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	mouseButtonCount
)

// Input holds the current and previous-tick state of every action and mouse
// button, plus the pointer position in pixel space.
//
// Platforms write the current state as raw events arrive. The simulation reads
// both snapshots during a tick and calls Commit exactly once at the end of it,
// so an edge is observed at most once per tick no matter how many raw events
// arrived in between.
type Input struct {
	keys      [actionCount]bool
	prevKeys  [actionCount]bool
	mouse     [mouseButtonCount]bool
	prevMouse [mouseButtonCount]bool
	pointer   Point
}

// NewInput creates an input snapshot with everything released.
func NewInput() *Input {
	return &Input{}
}

// SetKey records the raw state of an action.
func (in *Input) SetKey(a Action, down bool) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	in.keys[a] = down
}

// Press marks an action as held.
func (in *Input) Press(a Action) {
	in.SetKey(a, true)
}

// Release marks an action as not held.
func (in *Input) Release(a Action) {
	in.SetKey(a, false)
}

// ReleaseKeys releases every action. Terminal platforms call it after each
// tick because terminals report presses but never releases.
func (in *Input) ReleaseKeys() {
	for i := range in.keys {
		in.keys[i] = false
	}
}

// SetMouse records the raw state of a mouse button.
func (in *Input) SetMouse(b MouseButton, down bool) {
	if b < 0 || b >= mouseButtonCount {
		return
	}
	in.mouse[b] = down
}

// MoveMouse records the pointer position in pixels.
func (in *Input) MoveMouse(x, y float64) {
	in.pointer = Point{X: x, Y: y}
}

// Pointer returns the pointer position in pixels.
func (in *Input) Pointer() Point {
	return in.pointer
}

// Down reports whether the action is held this tick.
func (in *Input) Down(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return in.keys[a]
}

// WasDown reports whether the action was held at the end of the previous tick.
func (in *Input) WasDown(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return in.prevKeys[a]
}

// JustPressed reports a rising edge: held now, not held last tick.
func (in *Input) JustPressed(a Action) bool {
	return in.Down(a) && !in.WasDown(a)
}

// MouseDown reports whether the button is held this tick.
func (in *Input) MouseDown(b MouseButton) bool {
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	return in.mouse[b]
}

// JustClicked reports a rising edge on a mouse button.
func (in *Input) JustClicked(b MouseButton) bool {
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	return in.mouse[b] && !in.prevMouse[b]
}

// ClickedIn reports a rising edge on b with the pointer inside r (edges inclusive).
func (in *Input) ClickedIn(b MouseButton, r Region) bool {
	if !in.JustClicked(b) {
		return false
	}
	return r.Contains(in.pointer)
}

// Commit copies the current state into the previous snapshot.
// Must run once per tick, after every consumer has read both snapshots.
func (in *Input) Commit() {
	in.prevKeys = in.keys
	in.prevMouse = in.mouse
}
