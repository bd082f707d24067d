package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and ORBIT_CONFIG into a temp dir and returns the config path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "orbit", "config.toml")
	t.Setenv("ORBIT_CONFIG", path)
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, float32(1), c.Controller.Speed)
	assert.Equal(t, float32(1), c.Controller.Sensitivity)
	assert.Equal(t, float32(45), c.Camera.FovY)
	assert.False(t, c.Camera.FixedUp)
	assert.Equal(t, "oxy-orbit", c.Window.Title)
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.Equal(t, 320, c.Window.MinWidth)
	assert.Equal(t, 240, c.Window.MinHeight)
	assert.Zero(t, c.Window.MaxWidth)
	assert.Zero(t, c.Window.MaxHeight)
	assert.Equal(t, 60.0, c.Engine.TickRate)
	assert.True(t, c.Engine.VSync)
	assert.Empty(t, c.Scene.Models)
	assert.Equal(t, time.Second, c.Animation.Duration)
	assert.Equal(t, 3*time.Second, c.Animation.TourLeg)
	assert.Equal(t, "smoothstep", c.Animation.Easing)
	assert.Equal(t, "glide", c.Animation.TourStyle)
}

func TestLoad_File(t *testing.T) {
	path := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
[controller]
speed = 2.5

[camera]
fov_y = 60
fixed_up = true

[scene]
models = ["a.glb", "b.gltf"]

[animation]
duration = "250ms"
easing = "ease-in-out"
`), 0o644))

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, float32(2.5), c.Controller.Speed)
	assert.Equal(t, float32(1), c.Controller.Sensitivity)
	assert.Equal(t, float32(60), c.Camera.FovY)
	assert.True(t, c.Camera.FixedUp)
	assert.Equal(t, []string{"a.glb", "b.gltf"}, c.Scene.Models)
	assert.Equal(t, 250*time.Millisecond, c.Animation.Duration)
	assert.Equal(t, "ease-in-out", c.Animation.Easing)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ORBIT_CONTROLLER_SENSITIVITY", "0.5")
	t.Setenv("ORBIT_ENGINE_TICK_RATE", "120")
	t.Setenv("ORBIT_WINDOW_TITLE", "from env")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, float32(0.5), c.Controller.Sensitivity)
	assert.Equal(t, 120.0, c.Engine.TickRate)
	assert.Equal(t, "from env", c.Window.Title)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[controller\nspeed = "), 0o644))

	_, err := Load()
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("ORBIT_ANIMATION_EASING", "bounce")

	_, err := Load()
	assert.ErrorContains(t, err, "animation.easing")
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero tick rate", func(c *Config) { c.Engine.TickRate = 0 }},
		{"negative frame limit", func(c *Config) { c.Engine.FrameLimit = -1 }},
		{"fov too wide", func(c *Config) { c.Camera.FovY = 180 }},
		{"far before near", func(c *Config) { c.Camera.ZFar = c.Camera.ZNear }},
		{"negative duration", func(c *Config) { c.Animation.Duration = -time.Second }},
		{"unknown tour style", func(c *Config) { c.Animation.TourStyle = "warp" }},
		{"negative size limit", func(c *Config) { c.Window.MaxWidth = -1 }},
		{"below min size", func(c *Config) { c.Window.MinWidth = c.Window.Width + 1 }},
		{"above max size", func(c *Config) { c.Window.MaxHeight = c.Window.Height - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, base.Validate())

	// Without a max limit, a large window is accepted rather than clamped.
	wide := base
	wide.Window.Width, wide.Window.Height = 3840, 2160
	assert.NoError(t, wide.Validate())
	wide.Window.MaxWidth = 1920
	assert.ErrorContains(t, wide.Validate(), "exceeds window.max_width")
}

func TestSave_RoundTrip(t *testing.T) {
	path := isolate(t)
	c, err := Load()
	require.NoError(t, err)

	c.Controller.Speed = 3
	c.Scene.Models = []string{"scene.glb"}
	c.Animation.Duration = 1500 * time.Millisecond
	require.NoError(t, Save(c))
	assert.FileExists(t, path)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}
