package config

import "github.com/vovakirdan/siege/internal/core"

// DifficultyManager scales round parameters by the configured difficulty level.
// The level is fixed for a round: spawn cadence must stay constant while the
// wave runs, so scaling is applied once when the round starts.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.Clamp(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the difficulty level (0.0 to 1.0), or 0 when scaling is off.
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return d.initialLevel
}

// SpawnRate returns the ticks between spawns.
func (d *DifficultyManager) SpawnRate(base int) int {
	reduction := int(d.Level() * float64(d.cfg.Scaling.SpawnRateReduction))
	// Floor at one second of the default tick rate, never above base
	return min(max(base-reduction, 60), base)
}

// Velocity returns a unit velocity scaled from base to base * (1 + speedMultiplier).
func (d *DifficultyManager) Velocity(base float64) float64 {
	return base * (1.0 + d.Level()*d.cfg.Scaling.SpeedMultiplier)
}

// PlayerHP returns the player's starting HP. Never below 1.
func (d *DifficultyManager) PlayerHP(base int) int {
	reduction := int(d.Level() * float64(d.cfg.Scaling.PlayerHPReduction))
	return max(base-reduction, 1)
}
