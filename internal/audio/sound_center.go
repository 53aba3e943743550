package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/siege/internal/core"
)

// SoundCenter is a Player backed by the system speaker.
//
// Sounds are WAV files read from an fs.FS and decoded once into memory.
// Every voice runs inside a shared mixer. Completion is signalled from the
// speaker goroutine through a buffered channel and applied in Update, so
// voice state is only ever touched by the owning goroutine.
type SoundCenter struct {
	fsys   fs.FS
	rate   beep.SampleRate
	volume float64
	logger *log.Logger

	mixer   *beep.Mixer
	buffers map[string]*beep.Buffer
	voices  map[uint64]*Voice
	done    chan uint64
	nextID  uint64
	opened  bool
}

// NewSoundCenter creates a sound center. Call Open to start the speaker.
func NewSoundCenter(fsys fs.FS, sampleRate int, volume float64, logger *log.Logger) *SoundCenter {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &SoundCenter{
		fsys:    fsys,
		rate:    beep.SampleRate(sampleRate),
		volume:  volume,
		logger:  logger,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
		voices:  make(map[uint64]*Voice),
		done:    make(chan uint64, 64),
	}
}

// Open initializes the speaker and starts the mixer.
func (c *SoundCenter) Open() error {
	if c.opened {
		return nil
	}
	if err := speaker.Init(c.rate, c.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.opened = true
	c.logger.Debug("speaker ready", "rate", int(c.rate))
	return nil
}

// Preload decodes sounds ahead of their first Play.
func (c *SoundCenter) Preload(keys ...string) error {
	for _, k := range keys {
		if _, err := c.buffer(k); err != nil {
			return err
		}
	}
	return nil
}

func (c *SoundCenter) buffer(key string) (*beep.Buffer, error) {
	if b, ok := c.buffers[key]; ok {
		return b, nil
	}
	f, err := c.fsys.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sound %s: %w", key, core.ErrAssetMissing)
		}
		return nil, fmt.Errorf("sound %s: %w", key, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sound %s: %w", key, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != c.rate {
		s = beep.Resample(4, format.SampleRate, c.rate, s)
	}
	format.SampleRate = c.rate
	b := beep.NewBuffer(format)
	b.Append(s)
	c.buffers[key] = b
	return b, nil
}

func (c *SoundCenter) Play(key string, mode Mode) *Voice {
	c.nextID++
	v := &Voice{Key: key, Mode: mode, id: c.nextID}

	b, err := c.buffer(key)
	if err != nil {
		c.logger.Warn("cannot play sound", "key", key, "err", err)
		return v
	}

	var s beep.Streamer
	if mode == Loop {
		s = beep.Loop(-1, b.Streamer(0, b.Len()))
	} else {
		id := v.id
		s = beep.Seq(b.Streamer(0, b.Len()), beep.Callback(func() {
			select {
			case c.done <- id:
			default:
				c.logger.Warn("sound completion dropped", "key", key)
			}
		}))
	}
	ctrl := &beepCtrl{Ctrl: beep.Ctrl{Streamer: withVolume(s, c.volume)}}
	v.ctrl = ctrl
	v.playing = true
	c.voices[v.id] = v

	speaker.Lock()
	c.mixer.Add(&ctrl.Ctrl)
	speaker.Unlock()
	c.logger.Debug("sound started", "key", key, "mode", mode)
	return v
}

func (c *SoundCenter) IsPlaying(v *Voice) bool {
	return v != nil && v.playing
}

func (c *SoundCenter) TogglePlaying(v *Voice) {
	if v == nil || !v.playing || v.ctrl == nil {
		return
	}
	v.paused = !v.paused
	v.ctrl.setPaused(v.paused)
}

// Update drains completion notifications.
func (c *SoundCenter) Update() {
	for {
		select {
		case id := <-c.done:
			if v, ok := c.voices[id]; ok {
				v.playing = false
				delete(c.voices, id)
				c.logger.Debug("sound finished", "key", v.Key)
			}
		default:
			return
		}
	}
}

// Close stops every voice and shuts the speaker down.
func (c *SoundCenter) Close() error {
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	for id, v := range c.voices {
		v.playing = false
		delete(c.voices, id)
	}
	if c.opened {
		speaker.Close()
		c.opened = false
	}
	return nil
}

// beepCtrl lets a Voice pause its stream under the speaker lock.
type beepCtrl struct {
	beep.Ctrl
}

func (b *beepCtrl) setPaused(p bool) {
	speaker.Lock()
	b.Paused = p
	speaker.Unlock()
}

// withVolume scales s by vol, clamped to 0..1. math.Log2(0) is -Inf, so zero
// is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	vol = core.Clamp(vol, 0, 1)
	if vol == 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
