package config

import (
	_ "embed"
)

//go:embed defaults/siege.yaml
var defaultSiegeYAML []byte

// DefaultSiegeConfig returns the default siege configuration.
func DefaultSiegeConfig() SiegeConfig {
	unit := func(velocity float64, hp, armor, switchFreq int) UnitStats {
		return UnitStats{
			Velocity:   velocity,
			HP:         hp,
			Armor:      armor,
			SwitchFreq: switchFreq,
			SpriteSets: []int{2, 2, 4, 2},
			HitSize:    30,
		}
	}
	return SiegeConfig{
		Window: WindowConfig{
			Width:       1200,
			Height:      650,
			FPS:         60,
			FieldLength: 1200,
		},
		Level: LevelConfig{
			Start:         1,
			PathFormat:    "level/LEVEL%d.txt",
			CellSizes:     []int{100, 100, 100, 100},
			RowOffset:     25,
			GridHeight:    6,
			Lanes:         5,
			SpawnRate:     800,
			SpawnRecovery: 180,
			SpawnCeiling:  2000,
		},
		Units: UnitsConfig{
			Normal:          unit(30, 20, 0, 20),
			Bucket:          unit(25, 40, 2, 20),
			Newspaper:       unit(30, 30, 1, 16),
			Flag:            unit(40, 16, 0, 12),
			FlashSeconds:    0.2,
			FlashBrightness: 1.6,
			DeathSeconds:    1.0,
		},
		Defenders: DefenderConfig{
			Count:            5,
			Column:           1,
			HP:               100,
			Size:             60,
			Bite:             1,
			FireTicks:        90,
			ProjectileSpeed:  480,
			ProjectileDamage: 4,
			ProjectileSize:   10,
		},
		Player: PlayerConfig{
			HP: 10,
		},
		Menu: MenuConfig{
			Start:      Hotspot{X1: 750, Y1: 100, X2: 1000, Y2: 250},
			Quit:       Hotspot{X1: 750, Y1: 300, X2: 1000, Y2: 500},
			About:      Hotspot{X1: 100, Y1: 40, X2: 220, Y2: 85},
			EndSeconds: 8,
		},
		Assets: AssetsConfig{
			Root: "assets",
			AnimationRoots: []string{
				"gif/zombie/normal",
				"gif/zombie/bucket",
				"gif/zombie/newspaper",
				"gif/zombie/flag",
			},
			IntroSound:      "sound/intro.wav",
			BackgroundMusic: "sound/bgm.wav",
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.8,
			SampleRate: 44100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				SpawnRateReduction: 400,
				SpeedMultiplier:    0.5,
				PlayerHPReduction:  5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSiegeYAML
}
