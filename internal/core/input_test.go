package core

import "testing"

func TestInputJustPressed(t *testing.T) {
	in := NewInput()

	in.Press(ActionPause)
	if !in.JustPressed(ActionPause) {
		t.Fatal("first tick with key down should be an edge")
	}
	in.Commit()

	if in.JustPressed(ActionPause) {
		t.Error("held key should not be an edge on the next tick")
	}
	if !in.Down(ActionPause) || !in.WasDown(ActionPause) {
		t.Error("held key should be down now and last tick")
	}
	in.Commit()

	in.Release(ActionPause)
	in.Commit()
	in.Press(ActionPause)
	if !in.JustPressed(ActionPause) {
		t.Error("re-press after release should be an edge")
	}
}

func TestInputRawTogglesWithinOneTick(t *testing.T) {
	tests := []struct {
		name     string
		events   []bool // raw key states applied in order before the tick
		expected bool
	}{
		{"press", []bool{true}, true},
		{"press then release", []bool{true, false}, false},
		{"press release press", []bool{true, false, true}, true},
		{"many toggles ending down", []bool{true, false, true, false, true}, true},
		{"no events", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInput()
			for _, down := range tc.events {
				in.SetKey(ActionPause, down)
			}

			edges := 0
			// Several consumers may read during one tick; the answer must not change
			for i := 0; i < 3; i++ {
				if in.JustPressed(ActionPause) {
					edges++
				}
			}
			in.Commit()

			if tc.expected && edges != 3 || !tc.expected && edges != 0 {
				t.Errorf("edge reads = %d, expected edge=%v", edges, tc.expected)
			}
			if in.JustPressed(ActionPause) {
				t.Error("edge must not survive Commit")
			}
		})
	}
}

func TestInputMouse(t *testing.T) {
	in := NewInput()
	hotspot := NewRegion(750, 100, 1000, 250)

	in.MoveMouse(800, 150)
	in.SetMouse(MouseLeft, true)
	if !in.ClickedIn(MouseLeft, hotspot) {
		t.Error("click inside hotspot should register")
	}
	if in.ClickedIn(MouseRight, hotspot) {
		t.Error("right button was not pressed")
	}
	in.Commit()

	if in.JustClicked(MouseLeft) {
		t.Error("held button should not click again")
	}

	in.SetMouse(MouseLeft, false)
	in.Commit()
	in.MoveMouse(10, 10)
	in.SetMouse(MouseLeft, true)
	if in.ClickedIn(MouseLeft, hotspot) {
		t.Error("click outside hotspot should not register")
	}
	if !in.JustClicked(MouseLeft) {
		t.Error("click outside hotspot is still a click")
	}

	// Hotspot edges are inclusive
	in.MoveMouse(1000, 250)
	if !in.ClickedIn(MouseLeft, hotspot) {
		t.Error("click on hotspot edge should register")
	}
}

func TestInputReleaseKeys(t *testing.T) {
	in := NewInput()
	in.Press(ActionUp)
	in.Press(ActionPause)
	in.Commit()
	in.ReleaseKeys()

	if in.Down(ActionUp) || in.Down(ActionPause) {
		t.Error("ReleaseKeys should release every action")
	}
	if !in.WasDown(ActionPause) {
		t.Error("ReleaseKeys must not touch the previous snapshot")
	}
}

func TestInputIgnoresInvalidAction(t *testing.T) {
	in := NewInput()
	in.Press(ActionNone)
	in.Press(Action(999))
	if in.Down(ActionNone) || in.Down(Action(999)) {
		t.Error("invalid actions should never be down")
	}
	if ActionPause.String() != "Pause" || Action(999).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
