// Package config provides YAML-based game configuration loading and
// difficulty management for siege.
package config

import (
	"errors"
	"fmt"
)

// SiegeConfig contains all tunable settings of the simulation.
type SiegeConfig struct {
	Window     WindowConfig     `yaml:"window"`
	Level      LevelConfig      `yaml:"level"`
	Units      UnitsConfig      `yaml:"units"`
	Defenders  DefenderConfig   `yaml:"defenders"`
	Player     PlayerConfig     `yaml:"player"`
	Menu       MenuConfig       `yaml:"menu"`
	Assets     AssetsConfig     `yaml:"assets"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WindowConfig defines the pixel space the simulation runs in.
type WindowConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	FPS         int `yaml:"fps"`
	FieldLength int `yaml:"field_length"` // Grid width is field_length / cell size
}

// LevelConfig defines the level table and the spawn gate.
type LevelConfig struct {
	Start         int     `yaml:"start"`          // Level loaded on round start
	PathFormat    string  `yaml:"path_format"`    // Relative to assets root, takes the level index
	CellSizes     []int   `yaml:"cell_sizes"`     // Cell size in pixels per level index
	RowOffset     float64 `yaml:"row_offset"`     // Vertical offset of row 0 in pixels
	GridHeight    int     `yaml:"grid_height"`    // Rows used to decode road cells
	Lanes         int     `yaml:"lanes"`          // Rows a spawned unit may walk
	SpawnRate     int     `yaml:"spawn_rate"`     // Ticks between spawns
	SpawnRecovery int     `yaml:"spawn_recovery"` // Counter value after a clamp
	SpawnCeiling  int     `yaml:"spawn_ceiling"`  // Counter values above this are clamped
}

// UnitStats defines one hostile unit type.
type UnitStats struct {
	Velocity   float64 `yaml:"velocity"`    // Pixels per second
	HP         int     `yaml:"hp"`          // Hit points
	Armor      int     `yaml:"armor"`       // Damage absorbed per hit
	SwitchFreq int     `yaml:"switch_freq"` // Ticks between sprite-set frames
	SpriteSets []int   `yaml:"sprite_sets"` // Sprite count per facing: up, down, left, right
	HitSize    float64 `yaml:"hit_size"`    // Half-size of the collision box in pixels
}

// UnitsConfig defines all unit types and shared unit behaviour.
type UnitsConfig struct {
	Normal          UnitStats `yaml:"normal"`
	Bucket          UnitStats `yaml:"bucket"`
	Newspaper       UnitStats `yaml:"newspaper"`
	Flag            UnitStats `yaml:"flag"`
	FlashSeconds    float64   `yaml:"flash_seconds"`
	FlashBrightness float64   `yaml:"flash_brightness"`
	DeathSeconds    float64   `yaml:"death_seconds"`
}

// ByIndex returns unit stats in type enumeration order.
func (u UnitsConfig) ByIndex() []UnitStats {
	return []UnitStats{u.Normal, u.Bucket, u.Newspaper, u.Flag}
}

// DefenderConfig defines the player's lane defenders and their projectiles.
type DefenderConfig struct {
	Count            int     `yaml:"count"`
	Column           int     `yaml:"column"`
	HP               int     `yaml:"hp"`
	Size             float64 `yaml:"size"`
	Bite             int     `yaml:"bite"`       // HP lost per tick while eaten
	FireTicks        int     `yaml:"fire_ticks"` // Ticks between shots
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileDamage int     `yaml:"projectile_damage"`
	ProjectileRange  float64 `yaml:"projectile_range"` // 0 means field length
	ProjectileSize   float64 `yaml:"projectile_size"`
}

// PlayerConfig defines the player's base.
type PlayerConfig struct {
	HP int `yaml:"hp"`
}

// Hotspot is a clickable pixel-space area.
type Hotspot struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// MenuConfig defines menu hotspots and the end-of-wave countdown.
type MenuConfig struct {
	Start      Hotspot `yaml:"start"`
	Quit       Hotspot `yaml:"quit"`
	About      Hotspot `yaml:"about"`
	EndSeconds int     `yaml:"end_seconds"`
}

// AssetsConfig defines where external resources live.
type AssetsConfig struct {
	Root            string   `yaml:"root"`
	AnimationRoots  []string `yaml:"animation_roots"` // One directory per unit type, relative to root
	IntroSound      string   `yaml:"intro_sound"`
	BackgroundMusic string   `yaml:"background_music"`
}

// AudioConfig defines audio output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// Validate reports settings the simulation cannot run with.
func (c SiegeConfig) Validate() error {
	var errs []error
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("window.fps must be positive, got %d", c.Window.FPS))
	}
	if c.Window.FieldLength <= 0 {
		errs = append(errs, fmt.Errorf("window.field_length must be positive, got %d", c.Window.FieldLength))
	}
	if len(c.Level.CellSizes) == 0 {
		errs = append(errs, errors.New("level.cell_sizes must not be empty"))
	}
	for i, size := range c.Level.CellSizes {
		if size <= 0 {
			errs = append(errs, fmt.Errorf("level.cell_sizes[%d] must be positive, got %d", i, size))
		}
	}
	if c.Level.GridHeight <= 0 {
		errs = append(errs, fmt.Errorf("level.grid_height must be positive, got %d", c.Level.GridHeight))
	}
	if c.Level.Lanes <= 0 {
		errs = append(errs, fmt.Errorf("level.lanes must be positive, got %d", c.Level.Lanes))
	}
	if c.Level.SpawnRate < 0 || c.Level.SpawnRate > c.Level.SpawnCeiling {
		errs = append(errs, fmt.Errorf("level.spawn_rate must be within [0, %d], got %d", c.Level.SpawnCeiling, c.Level.SpawnRate))
	}
	for i, u := range c.Units.ByIndex() {
		if len(u.SpriteSets) != 4 {
			errs = append(errs, fmt.Errorf("units[%d].sprite_sets needs 4 entries, got %d", i, len(u.SpriteSets)))
		}
	}
	if c.Defenders.Count > c.Level.Lanes {
		errs = append(errs, fmt.Errorf("defenders.count %d exceeds lanes %d", c.Defenders.Count, c.Level.Lanes))
	}
	return errors.Join(errs...)
}

// DifficultyConfig defines how a preset scales the round.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpawnRateReduction int     `yaml:"spawn_rate_reduction"` // Ticks removed from spawn_rate
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`     // Added to unit velocity factor
	PlayerHPReduction  int     `yaml:"player_hp_reduction"`  // HP removed from the base
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
