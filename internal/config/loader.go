package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSiege loads the siege configuration.
// Search order: customPath -> ~/.siege/configs/siege.yaml -> ./configs/siege.yaml -> embedded default
//
// Files are decoded on top of DefaultSiegeConfig, so a partial file only
// overrides the keys it names.
func LoadSiege(customPath string) (SiegeConfig, error) {
	cfg := DefaultSiegeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("siege.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "siege.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg = DefaultSiegeConfig()
	if err := yaml.Unmarshal(defaultSiegeYAML, &cfg); err != nil {
		return DefaultSiegeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (SiegeConfig, bool) {
	cfg := DefaultSiegeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".siege", "configs", filename)
}

// ParsePreset converts a flag value into a difficulty preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplySiegePreset modifies the config based on a difficulty preset.
func ApplySiegePreset(cfg *SiegeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust defenders based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Defenders.FireTicks = 60
		cfg.Defenders.ProjectileDamage = 6
	case DifficultyHard:
		cfg.Defenders.FireTicks = 120
		cfg.Defenders.HP = 60
	}
}
