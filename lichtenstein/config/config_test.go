// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lichtenstein.dev/lichtenstein/store"
)

const sample = `
[render.pipeline]
fps = 60
threads = 4

[command]
listen = "0.0.0.0:9000"

[[groups]]
id = 1
name = "bar"
start = 0
end = 49

[[groups]]
id = 2
name = "stage"
enabled = false
start = 50
end = 149
`

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 42.0, cfg.Render.Pipeline.FPS)
	assert.Equal(t, 2, cfg.Render.Pipeline.Threads)
	assert.Equal(t, DefaultListen, cfg.Command.Listen)
	assert.Empty(t, cfg.Groups)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 60.0, cfg.Render.Pipeline.FPS)
	assert.Equal(t, 4, cfg.Render.Pipeline.Threads)
	assert.Equal(t, "0.0.0.0:9000", cfg.Command.Listen)
	assert.Equal(t, []store.Group{
		{ID: 1, Name: "bar", Enabled: true, Start: 0, End: 49},
		{ID: 2, Name: "stage", Enabled: false, Start: 50, End: 149},
	}, cfg.Groups)

	pc := cfg.PipelineConfig()
	assert.Equal(t, 60.0, pc.FPS)
	assert.Equal(t, 4, pc.Threads)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("[render.pipeline]\nthreads = 8\n"))
	require.NoError(t, err)

	assert.Equal(t, 42.0, cfg.Render.Pipeline.FPS)
	assert.Equal(t, 8, cfg.Render.Pipeline.Threads)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("[render.pipeline\nfps = 1"))
	assert.Error(t, err)

	_, err = Parse([]byte("[render.pipeline]\nfps = 0"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = Parse([]byte("[render.pipeline]\nthreads = -1"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lichtenstein.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Groups, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.NoError(t, cfg.Apply(Overrides{FPS: 30, Listen: ":7000"}))
	assert.Equal(t, 30.0, cfg.Render.Pipeline.FPS)
	assert.Equal(t, 4, cfg.Render.Pipeline.Threads)
	assert.Equal(t, ":7000", cfg.Command.Listen)

	assert.True(t, errors.Is(cfg.Apply(Overrides{Threads: -3}), ErrInvalidConfig))
}

func TestFramebufferSize(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	st, err := store.NewStore(cfg.Groups)
	require.NoError(t, err)

	size, err := cfg.FramebufferSize(st)
	require.NoError(t, err)
	assert.Equal(t, 150, size)

	cfg.Render.Framebuffer.Size = 200
	size, err = cfg.FramebufferSize(st)
	require.NoError(t, err)
	assert.Equal(t, 200, size)

	cfg.Render.Framebuffer.Size = 100
	_, err = cfg.FramebufferSize(st)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
