// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the server configuration from a TOML file and applies
// command line overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.lichtenstein.dev/lichtenstein/render"
	"go.lichtenstein.dev/lichtenstein/store"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidConfig is returned for configuration values that are out of range
var ErrInvalidConfig = errors.New("ErrInvalidConfig")

// DefaultListen is the command API address used when none is configured.
const DefaultListen = "127.0.0.1:7420"

// Pipeline is the [render.pipeline] section.
type Pipeline struct {
	FPS     float64 `toml:"fps"`
	Threads int     `toml:"threads"`
}

// Framebuffer is the [render.framebuffer] section. A zero size means the
// framebuffer is sized to cover every configured group.
type Framebuffer struct {
	Size int `toml:"size"`
}

type Render struct {
	Pipeline    Pipeline    `toml:"pipeline"`
	Framebuffer Framebuffer `toml:"framebuffer"`
}

// Command is the [command] section.
type Command struct {
	Listen string `toml:"listen"`
}

// Config is the parsed configuration file.
type Config struct {
	Render  Render
	Command Command
	Groups  []store.Group
}

// groupEntry lets groups omit "enabled", which then defaults to true.
type groupEntry struct {
	ID      int    `toml:"id"`
	Name    string `toml:"name"`
	Enabled *bool  `toml:"enabled"`
	Start   int    `toml:"start"`
	End     int    `toml:"end"`
}

type file struct {
	Render  Render       `toml:"render"`
	Command Command      `toml:"command"`
	Groups  []groupEntry `toml:"groups"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Render: Render{
			Pipeline: Pipeline{
				FPS:     render.DefaultFPS,
				Threads: render.DefaultThreads,
			},
		},
		Command: Command{Listen: DefaultListen},
	}
}

// Parse decodes TOML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	f := file{Render: cfg.Render, Command: cfg.Command}

	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.WithField("key", key.String()).Warn("Ignoring unknown config key")
	}

	cfg.Render = f.Render
	cfg.Command = f.Command
	for _, g := range f.Groups {
		enabled := true
		if g.Enabled != nil {
			enabled = *g.Enabled
		}
		cfg.Groups = append(cfg.Groups, store.Group{
			ID:      g.ID,
			Name:    g.Name,
			Enabled: enabled,
			Start:   g.Start,
			End:     g.End,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithField("path", path).WithField("groups", len(cfg.Groups)).Info("Loaded configuration")
	return cfg, nil
}

// Overrides are command line values. Zero values leave the file value alone.
type Overrides struct {
	FPS             float64
	Threads         int
	Listen          string
	FramebufferSize int
}

// Apply copies the non-zero overrides into c and revalidates it.
func (c *Config) Apply(o Overrides) error {
	if o.FPS != 0 {
		c.Render.Pipeline.FPS = o.FPS
	}
	if o.Threads != 0 {
		c.Render.Pipeline.Threads = o.Threads
	}
	if o.Listen != "" {
		c.Command.Listen = o.Listen
	}
	if o.FramebufferSize != 0 {
		c.Render.Framebuffer.Size = o.FramebufferSize
	}
	return c.Validate()
}

// Validate checks value ranges. Group consistency is checked by the store.
func (c *Config) Validate() error {
	if c.Render.Pipeline.FPS <= 0 {
		return fmt.Errorf("%w: render.pipeline.fps must be positive, got %v", ErrInvalidConfig, c.Render.Pipeline.FPS)
	}
	if c.Render.Pipeline.Threads <= 0 {
		return fmt.Errorf("%w: render.pipeline.threads must be positive, got %d", ErrInvalidConfig, c.Render.Pipeline.Threads)
	}
	if c.Render.Framebuffer.Size < 0 {
		return fmt.Errorf("%w: render.framebuffer.size must not be negative", ErrInvalidConfig)
	}
	if c.Command.Listen == "" {
		return fmt.Errorf("%w: command.listen is empty", ErrInvalidConfig)
	}
	return nil
}

// PipelineConfig returns the render loop settings.
func (c *Config) PipelineConfig() render.Config {
	return render.Config{
		FPS:     c.Render.Pipeline.FPS,
		Threads: c.Render.Pipeline.Threads,
	}
}

// FramebufferSize returns the configured size, or the extent of the groups
// in st when unset. An explicit size smaller than the extent is an error.
func (c *Config) FramebufferSize(st *store.Store) (int, error) {
	extent := st.PixelExtent()
	size := c.Render.Framebuffer.Size
	if size == 0 {
		return extent, nil
	}
	if size < extent {
		return 0, fmt.Errorf("%w: render.framebuffer.size %d does not cover groups ending at %d", ErrInvalidConfig, size, extent)
	}
	return size, nil
}
