package anim

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/core"
)

// Cache is a Library that decodes GIF files from a filesystem on first use.
// Misses are not cached, so a file that appears later is picked up on the
// next lookup.
type Cache struct {
	fsys    fs.FS
	logger  *log.Logger
	entries map[string]*Animation
	misses  int
}

// NewCache creates a cache reading from fsys.
func NewCache(fsys fs.FS, logger *log.Logger) *Cache {
	return &Cache{
		fsys:    fsys,
		logger:  logger,
		entries: make(map[string]*Animation),
	}
}

// Get returns the animation for key, decoding it if needed.
func (c *Cache) Get(key string) (*Animation, bool) {
	if a, ok := c.entries[key]; ok {
		return a, true
	}
	a, err := c.Load(key)
	if err != nil {
		c.misses++
		return nil, false
	}
	return a, true
}

// Load decodes key and stores it, replacing any cached entry.
func (c *Cache) Load(key string) (*Animation, error) {
	f, err := c.fsys.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("animation %s: %w", key, core.ErrAssetMissing)
		}
		return nil, fmt.Errorf("animation %s: %w", key, err)
	}
	defer f.Close()

	a, err := DecodeGIF(f)
	if err != nil {
		c.logger.Warn("bad animation file", "key", key, "err", err)
		return nil, fmt.Errorf("animation %s: %w", key, err)
	}
	c.entries[key] = a
	c.logger.Debug("animation loaded", "key", key, "frames", a.FrameCount())
	return a, nil
}

// Preload decodes every key, returning the first failure.
func (c *Cache) Preload(keys ...string) error {
	for _, k := range keys {
		if _, ok := c.entries[k]; ok {
			continue
		}
		if _, err := c.Load(k); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of cached animations.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Misses returns how many lookups failed.
func (c *Cache) Misses() int {
	return c.misses
}
