// Package audio plays intro and background sounds for the state machine.
package audio

// Mode selects one-shot or looping playback.
type Mode int

const (
	Once Mode = iota
	Loop
)

func (m Mode) String() string {
	if m == Loop {
		return "loop"
	}
	return "once"
}

// Voice is a handle to one playback started by Play. Only the goroutine that
// owns the Player reads or changes it.
type Voice struct {
	Key  string
	Mode Mode

	id      uint64
	playing bool
	paused  bool
	ticks   int // Null: Update calls seen
	ctrl    pauser
}

// pauser is the part of a beep.Ctrl a voice touches.
type pauser interface {
	setPaused(bool)
}

// Paused reports whether the voice is paused.
func (v *Voice) Paused() bool {
	return v != nil && v.paused
}

// Player is the audio collaborator of the state machine.
type Player interface {
	// Play starts key. A sound that cannot be loaded yields a voice that is
	// already finished.
	Play(key string, mode Mode) *Voice
	// IsPlaying reports whether v has not finished. Paused voices are still playing.
	IsPlaying(v *Voice) bool
	// TogglePlaying pauses or resumes v.
	TogglePlaying(v *Voice)
	// Update applies completion notifications. Called once per tick.
	Update()
	// Close stops everything and releases the device.
	Close() error
}

// Null is a silent Player. One-shot voices finish after FinishAfter updates
// (at least one); looping voices play until Close.
type Null struct {
	FinishAfter int

	nextID uint64
	voices []*Voice
}

// NewNull creates a silent player whose one-shots finish on the next Update.
func NewNull() *Null {
	return &Null{FinishAfter: 1}
}

func (n *Null) Play(key string, mode Mode) *Voice {
	n.nextID++
	v := &Voice{Key: key, Mode: mode, id: n.nextID, playing: true}
	n.voices = append(n.voices, v)
	return v
}

func (n *Null) IsPlaying(v *Voice) bool {
	return v != nil && v.playing
}

func (n *Null) TogglePlaying(v *Voice) {
	if v == nil || !v.playing {
		return
	}
	v.paused = !v.paused
}

func (n *Null) Update() {
	live := n.voices[:0]
	for _, v := range n.voices {
		if v.Mode == Once && !v.paused {
			v.ticks++
			if v.ticks >= max(n.FinishAfter, 1) {
				v.playing = false
			}
		}
		if v.playing {
			live = append(live, v)
		}
	}
	n.voices = live
}

func (n *Null) Close() error {
	for _, v := range n.voices {
		v.playing = false
	}
	n.voices = nil
	return nil
}
