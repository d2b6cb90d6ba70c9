// Package config loads render settings from TOML files.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/rmorris/go-pathtracer/pkg/core"
	"github.com/rmorris/go-pathtracer/pkg/renderer"
)

// Config describes a full render: image size, sampling, parallelism and
// optional camera overrides. Zero-valued camera fields keep the scene's
// own camera settings.
type Config struct {
	Image    ImageConfig    `toml:"image"`
	Sampling SamplingConfig `toml:"sampling"`
	Render   RenderConfig   `toml:"render"`
	Camera   CameraConfig   `toml:"camera"`
}

type ImageConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type SamplingConfig struct {
	SamplesPerPixel int `toml:"samples_per_pixel"`
	MaxDepth        int `toml:"max_depth"`
}

type RenderConfig struct {
	TileSize int   `toml:"tile_size"`
	Workers  int   `toml:"workers"`
	Seed     int64 `toml:"seed"`
}

type CameraConfig struct {
	LookFrom      []float64 `toml:"look_from"`
	LookAt        []float64 `toml:"look_at"`
	Up            []float64 `toml:"up"`
	VFov          float64   `toml:"vfov"`
	Aperture      float64   `toml:"aperture"`
	FocusDistance float64   `toml:"focus_distance"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Image: ImageConfig{Width: 800, Height: 450},
		Sampling: SamplingConfig{
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
		Render: RenderConfig{TileSize: 64, Workers: 0, Seed: 42},
	}
}

// Load reads a TOML config file, overlaying it on the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the renderer cannot accept
func (c Config) Validate() error {
	if c.Image.Width <= 1 || c.Image.Height <= 1 {
		return fmt.Errorf("image dimensions must be at least 2x2, got %dx%d", c.Image.Width, c.Image.Height)
	}
	if c.Sampling.SamplesPerPixel < 1 {
		return fmt.Errorf("samples_per_pixel must be at least 1, got %d", c.Sampling.SamplesPerPixel)
	}
	if c.Sampling.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.Sampling.MaxDepth)
	}
	if c.Render.TileSize < 1 {
		return fmt.Errorf("tile_size must be at least 1, got %d", c.Render.TileSize)
	}
	if c.Camera.Aperture < 0 {
		return fmt.Errorf("aperture must not be negative, got %f", c.Camera.Aperture)
	}
	for name, v := range map[string][]float64{
		"look_from": c.Camera.LookFrom,
		"look_at":   c.Camera.LookAt,
		"up":        c.Camera.Up,
	} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("camera %s must have exactly 3 components, got %d", name, len(v))
		}
	}
	return nil
}

// ToSamplingConfig converts to the renderer's sampling configuration
func (c Config) ToSamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: c.Sampling.SamplesPerPixel,
		MaxDepth:        c.Sampling.MaxDepth,
	}
}

// ToParallelConfig converts to the renderer's parallel configuration
func (c Config) ToParallelConfig() renderer.ParallelConfig {
	return renderer.ParallelConfig{
		TileSize:   c.Render.TileSize,
		NumWorkers: c.Render.Workers,
		Seed:       c.Render.Seed,
	}
}

// CameraOverrides converts the camera section into a CameraConfig overlay.
// The aspect ratio always follows the configured image dimensions.
func (c Config) CameraOverrides() renderer.CameraConfig {
	overrides := renderer.CameraConfig{
		VFov:          c.Camera.VFov,
		Aperture:      c.Camera.Aperture,
		FocusDistance: c.Camera.FocusDistance,
		AspectRatio:   float64(c.Image.Width) / float64(c.Image.Height),
	}
	if len(c.Camera.LookFrom) == 3 {
		overrides.LookFrom = core.NewVec3(c.Camera.LookFrom[0], c.Camera.LookFrom[1], c.Camera.LookFrom[2])
	}
	if len(c.Camera.LookAt) == 3 {
		overrides.LookAt = core.NewVec3(c.Camera.LookAt[0], c.Camera.LookAt[1], c.Camera.LookAt[2])
	}
	if len(c.Camera.Up) == 3 {
		overrides.Up = core.NewVec3(c.Camera.Up[0], c.Camera.Up[1], c.Camera.Up[2])
	}
	return overrides
}
