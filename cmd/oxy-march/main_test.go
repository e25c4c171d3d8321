package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-march/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 800\n  height: 600\nlog_level: warn\nfps_limit: 30\n"), 0o644))

	cfg, err := loadConfig([]string{
		"-config", path,
		"-width", "1024",
		"-vsync=false",
		"-watch",
		"-shader", "scene.wgsl",
		"-profile",
	})
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset flags keep the file value")
	assert.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	assert.True(t, cfg.Shader.Watch)
	assert.Equal(t, "scene.wgsl", cfg.Shader.Path)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 30.0, cfg.FPSLimit)
}

func TestLoadConfig_InvalidFlagValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	_, err := loadConfig([]string{"-config", path, "-log-level", "loud"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = loadConfig([]string{"-config", path, "-height", "0"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	_, err := loadConfig([]string{"-bogus"})
	assert.Error(t, err)
}
