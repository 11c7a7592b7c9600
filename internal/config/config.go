// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenekit/internal/engine/camera"
	"github.com/Faultbox/scenekit/internal/engine/viewport"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Minimum window size in pixels.
const (
	MinWidth  = 250
	MinHeight = 250
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window       WindowConfig       `yaml:"window"`
	Camera       CameraConfig       `yaml:"camera"`
	Tessellation TessellationConfig `yaml:"tessellation"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera and its input tuning.
type CameraConfig struct {
	FOV    float32    `yaml:"fov"`
	ZNear  float32    `yaml:"znear"`
	ZFar   float32    `yaml:"zfar"`
	Eye    [3]float32 `yaml:"eye,flow"`
	Target [3]float32 `yaml:"target,flow"`

	MoveSpeed   float32 `yaml:"move_speed"`  // units per second
	Sensitivity float32 `yaml:"sensitivity"` // degrees per pixel of mouse motion
	InvertY     bool    `yaml:"invert_y"`
}

// TessellationConfig holds the detail level for round shapes.
type TessellationConfig struct {
	Subdivisions int `yaml:"subdivisions"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cam := camera.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:  "scenekit",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOV:         cam.FOV,
			ZNear:       cam.ZNear,
			ZFar:        cam.ZFar,
			Eye:         cam.Eye.Array(),
			Target:      cam.Target.Array(),
			MoveSpeed:   4,
			Sensitivity: 0.15,
		},
		Tessellation: TessellationConfig{
			Subdivisions: 16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Viewport returns the configured window size.
func (c *Config) Viewport() viewport.Viewport {
	return viewport.New(c.Window.Width, c.Window.Height)
}

// Validate checks the values the viewer cannot recover from.
func (c *Config) Validate() error {
	if c.Window.Width < MinWidth || c.Window.Height < MinHeight {
		return fmt.Errorf("%w: window %dx%d is below the %dx%d minimum",
			ErrInvalid, c.Window.Width, c.Window.Height, MinWidth, MinHeight)
	}
	if c.Tessellation.Subdivisions < 1 {
		return fmt.Errorf("%w: subdivisions must be positive, got %d", ErrInvalid, c.Tessellation.Subdivisions)
	}
	if _, err := c.CameraConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// CameraConfig converts the camera section into a validated camera.Config
// whose aspect ratio follows the window.
func (c *Config) CameraConfig() (camera.Config, error) {
	cfg := camera.DefaultConfig()
	cfg.FOV = c.Camera.FOV
	cfg.ZNear = c.Camera.ZNear
	cfg.ZFar = c.Camera.ZFar
	cfg.Eye = math.V3(c.Camera.Eye[0], c.Camera.Eye[1], c.Camera.Eye[2])
	cfg.Target = math.V3(c.Camera.Target[0], c.Camera.Target[1], c.Camera.Target[2])

	aspect, err := c.Viewport().AspectRatio()
	if err != nil {
		return cfg, err
	}
	cfg.Aspect = aspect
	return cfg, cfg.Validate()
}
