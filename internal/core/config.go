package core

// RuntimeConfig contains configuration passed to the simulation at initialization.
// Games use this to adapt to window size and tick rate.
type RuntimeConfig struct {
	WindowW  int   // Window width in pixels
	WindowH  int   // Window height in pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means use current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		WindowW:  1200,
		WindowH:  650,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
