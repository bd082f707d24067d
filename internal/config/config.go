package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/spf13/viper"
)

// Config holds viewer configuration.
type Config struct {
	Controller ControllerConfig
	Camera     CameraConfig
	Window     WindowConfig
	Engine     EngineConfig
	Scene      SceneConfig
	Animation  AnimationConfig
}

// ControllerConfig holds orbit controller tuning.
type ControllerConfig struct {
	Speed       float32
	Sensitivity float32
}

// CameraConfig holds the initial projection and up-axis policy.
type CameraConfig struct {
	// FovY is the vertical field of view in degrees.
	FovY  float32 `mapstructure:"fov_y"`
	ZNear float32 `mapstructure:"z_near"`
	ZFar  float32 `mapstructure:"z_far"`
	// FixedUp pins the horizon to world +Y instead of following the camera.
	FixedUp bool `mapstructure:"fixed_up"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Resize limits; 0 leaves a dimension unbounded.
	MinWidth  int `mapstructure:"min_width"`
	MinHeight int `mapstructure:"min_height"`
	MaxWidth  int `mapstructure:"max_width"`
	MaxHeight int `mapstructure:"max_height"`
}

// EngineConfig holds loop settings.
type EngineConfig struct {
	TickRate   float64 `mapstructure:"tick_rate"`
	FrameLimit float64 `mapstructure:"frame_limit"`
	Profiling  bool
	VSync      bool
}

// SceneConfig lists what to load.
type SceneConfig struct {
	Models    []string
	Bookmarks string
}

// AnimationConfig holds camera flight settings.
type AnimationConfig struct {
	Duration time.Duration
	Easing   string
	TourLeg  time.Duration `mapstructure:"tour_leg"`
	// TourStyle is "glide" or "hop".
	TourStyle string `mapstructure:"tour_style"`
}

// Path returns the config file location: ORBIT_CONFIG if set, else ~/.config/oxy-orbit/config.toml.
func Path() string {
	if p := os.Getenv("ORBIT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "oxy-orbit", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix ORBIT_, with dots
// replaced by underscores (ORBIT_CONTROLLER_SPEED). A missing file yields the defaults.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("ORBIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Printf("[Config] loaded %s", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first setting the viewer cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.MinWidth < 0 || c.Window.MinHeight < 0 || c.Window.MaxWidth < 0 || c.Window.MaxHeight < 0:
		return errors.New("window size limits must not be negative")
	case c.Window.Width < c.Window.MinWidth || c.Window.Height < c.Window.MinHeight:
		return fmt.Errorf("window size %dx%d is below window.min_width/min_height %dx%d",
			c.Window.Width, c.Window.Height, c.Window.MinWidth, c.Window.MinHeight)
	case (c.Window.MaxWidth > 0 && c.Window.Width > c.Window.MaxWidth) || (c.Window.MaxHeight > 0 && c.Window.Height > c.Window.MaxHeight):
		return fmt.Errorf("window size %dx%d exceeds window.max_width/max_height %dx%d",
			c.Window.Width, c.Window.Height, c.Window.MaxWidth, c.Window.MaxHeight)
	case c.Engine.TickRate <= 0:
		return fmt.Errorf("engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	case c.Engine.FrameLimit < 0:
		return fmt.Errorf("engine.frame_limit must not be negative, got %v", c.Engine.FrameLimit)
	case c.Camera.FovY <= 0 || c.Camera.FovY >= 180:
		return fmt.Errorf("camera.fov_y must be in (0, 180), got %v", c.Camera.FovY)
	case c.Camera.ZNear <= 0 || c.Camera.ZFar <= c.Camera.ZNear:
		return fmt.Errorf("camera clip planes must satisfy 0 < z_near < z_far, got %v/%v", c.Camera.ZNear, c.Camera.ZFar)
	case c.Animation.Duration < 0 || c.Animation.TourLeg < 0:
		return errors.New("animation durations must not be negative")
	}
	if _, err := animation.EasingByName(c.Animation.Easing); err != nil {
		return fmt.Errorf("animation.easing: %w", err)
	}
	if _, err := animation.TourStyleByName(c.Animation.TourStyle); err != nil {
		return fmt.Errorf("animation.tour_style: %w", err)
	}
	return nil
}

// Save writes the provided config to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("controller.speed", cfg.Controller.Speed)
	v.Set("controller.sensitivity", cfg.Controller.Sensitivity)
	v.Set("camera.fov_y", cfg.Camera.FovY)
	v.Set("camera.z_near", cfg.Camera.ZNear)
	v.Set("camera.z_far", cfg.Camera.ZFar)
	v.Set("camera.fixed_up", cfg.Camera.FixedUp)
	v.Set("window.title", cfg.Window.Title)
	v.Set("window.width", cfg.Window.Width)
	v.Set("window.height", cfg.Window.Height)
	v.Set("window.min_width", cfg.Window.MinWidth)
	v.Set("window.min_height", cfg.Window.MinHeight)
	v.Set("window.max_width", cfg.Window.MaxWidth)
	v.Set("window.max_height", cfg.Window.MaxHeight)
	v.Set("engine.tick_rate", cfg.Engine.TickRate)
	v.Set("engine.frame_limit", cfg.Engine.FrameLimit)
	v.Set("engine.profiling", cfg.Engine.Profiling)
	v.Set("engine.vsync", cfg.Engine.VSync)
	v.Set("scene.models", cfg.Scene.Models)
	v.Set("scene.bookmarks", cfg.Scene.Bookmarks)
	v.Set("animation.duration", cfg.Animation.Duration.String())
	v.Set("animation.easing", cfg.Animation.Easing)
	v.Set("animation.tour_leg", cfg.Animation.TourLeg.String())
	v.Set("animation.tour_style", cfg.Animation.TourStyle)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("controller.speed", 1.0)
	v.SetDefault("controller.sensitivity", 1.0)
	v.SetDefault("camera.fov_y", 45.0)
	v.SetDefault("camera.z_near", 0.1)
	v.SetDefault("camera.z_far", 1000.0)
	v.SetDefault("camera.fixed_up", false)
	v.SetDefault("window.title", "oxy-orbit")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.min_width", 320)
	v.SetDefault("window.min_height", 240)
	v.SetDefault("window.max_width", 0)
	v.SetDefault("window.max_height", 0)
	v.SetDefault("engine.tick_rate", 60.0)
	v.SetDefault("engine.frame_limit", 0.0)
	v.SetDefault("engine.profiling", false)
	v.SetDefault("engine.vsync", true)
	v.SetDefault("scene.models", []string{})
	v.SetDefault("scene.bookmarks", filepath.Join(os.Getenv("HOME"), ".config", "oxy-orbit", "bookmarks.yaml"))
	v.SetDefault("animation.duration", "1s")
	v.SetDefault("animation.easing", "smoothstep")
	v.SetDefault("animation.tour_leg", "3s")
	v.SetDefault("animation.tour_style", "glide")
}
