package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/multicursor/internal/config/loader"
	"github.com/dshills/multicursor/internal/log"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "MULTICURSOR_"

// Config holds the merged configuration and its decoded Settings.
// It is safe for concurrent use; Load may run on a watcher goroutine while
// readers call Settings.
type Config struct {
	mu sync.RWMutex

	path      string
	fs        loader.FileSystem
	envPrefix string

	data     map[string]any
	settings Settings
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the settings file. Without a path only defaults and the
// environment are used.
func WithPath(path string) Option {
	return func(c *Config) { c.path = path }
}

// WithFileSystem sets the file system used to read the settings file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) { c.fs = fs }
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment source.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) { c.envPrefix = prefix }
}

// New creates a Config holding the defaults. Call Load to read the sources.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: DefaultEnvPrefix,
		data:      defaultMap(),
		settings:  Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the settings file path.
func (c *Config) Path() string {
	return c.path
}

// Load reads every source and replaces the current settings. On error the
// previous settings are kept.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	merged := defaultMap()

	if c.path != "" {
		fileData, err := loader.ForFile(c.fs, c.path).Load()
		if err != nil {
			log.ErrorErr(log.CatConfig, "loading settings file failed", err, "path", c.path)
			return err
		}
		merged = loader.DeepMerge(merged, fileData)
	}

	if c.envPrefix != "" {
		envData, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envData)
	}

	settings, err := decode(merged)
	if err != nil {
		log.ErrorErr(log.CatConfig, "invalid settings", err, "path", c.path)
		return err
	}

	c.mu.Lock()
	c.data = merged
	c.settings = settings
	c.mu.Unlock()

	log.Debug(log.CatConfig, "settings loaded", "path", c.path, "commands", len(settings.Commands))
	return nil
}

// Settings returns the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.settings
	s.Commands = make(map[string]string, len(c.settings.Commands))
	for k, v := range c.settings.Commands {
		s.Commands[k] = v
	}
	return s
}

// Get returns the raw merged value at a dot-separated path.
func (c *Config) Get(path string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lookup(c.data, path)
}
