package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege/internal/anim"
	"github.com/vovakirdan/siege/internal/audio"
	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/monster"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

// addConfigFlags registers the flags shared by every command that builds a game.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom siege config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().IntVar(&flagLevel, "level", -1, "Level index to play (-1 = config level.start)")
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func newLogger(w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "siege",
		Level:           lvl,
	}), nil
}

// openLogFile opens the --log file for appending, creating parent directories.
func openLogFile() (*os.File, error) {
	path, err := expandHome(flagLogPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return f, nil
}

// loadConfig loads the siege config and applies the command-line overrides.
func loadConfig() (config.SiegeConfig, error) {
	cfg, err := config.LoadSiege(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplySiegePreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Window.FPS = flagFPS
	}
	if flagLevel >= 0 {
		cfg.Level.Start = flagLevel
	}
	if flagAssets != "" {
		cfg.Assets.Root = flagAssets
	}
	return cfg, cfg.Validate()
}

func runtimeConfig(cfg config.SiegeConfig) core.RuntimeConfig {
	return core.RuntimeConfig{
		WindowW:  cfg.Window.Width,
		WindowH:  cfg.Window.Height,
		TickRate: cfg.Window.FPS,
		Seed:     flagSeed,
	}
}

func assetsFS(cfg config.SiegeConfig) fs.FS {
	return os.DirFS(cfg.Assets.Root)
}

// newAnimations creates the animation cache and warms it with every unit
// animation. Missing files are not fatal; units fall back to placeholders.
func newAnimations(fsys fs.FS, cfg config.SiegeConfig, logger *log.Logger) *anim.Cache {
	cache := anim.NewCache(fsys, logger.WithPrefix("anim"))

	env := monster.Env{}
	copy(env.Roots[:], cfg.Assets.AnimationRoots)
	var keys []string
	for t := range monster.TypeCount {
		for d := monster.Up; d <= monster.Right; d++ {
			keys = append(keys, env.AnimationKey(t, d))
		}
	}
	if err := cache.Preload(keys...); err != nil {
		logger.Warn("animations incomplete, drawing placeholders", "err", err)
	}
	return cache
}

// newAudio opens the speaker, or returns a silent player when audio is
// disabled or the device cannot be opened.
func newAudio(fsys fs.FS, cfg config.SiegeConfig, logger *log.Logger) audio.Player {
	if !cfg.Audio.Enabled {
		return audio.NewNull()
	}
	sc := audio.NewSoundCenter(fsys, cfg.Audio.SampleRate, cfg.Audio.Volume, logger.WithPrefix("audio"))
	if err := sc.Open(); err != nil {
		logger.Warn("audio unavailable, running silent", "err", err)
		return audio.NewNull()
	}
	if err := sc.Preload(cfg.Assets.IntroSound, cfg.Assets.BackgroundMusic); err != nil {
		logger.Warn("sounds incomplete", "err", err)
	}
	return sc
}
