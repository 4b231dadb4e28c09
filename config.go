package frameloop

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/pipeline"
	"github.com/gogpu/frameloop/render"
	"github.com/gogpu/frameloop/shader"
	"github.com/gogpu/frameloop/surface"
	"github.com/gogpu/gputypes"
)

// ErrInvalidConfig is returned by LoadConfig for values it cannot parse.
var ErrInvalidConfig = errors.New("frameloop: invalid config")

// WindowConfig describes the window cmd/frameloop opens. An App itself
// presents to whatever window it is given.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// Config holds everything an App needs besides its window.
type Config struct {
	// Backend names a registered backend. Empty selects the default.
	Backend string

	PowerPreference gpucore.PowerPreference
	Features        gputypes.Features
	// Limits overrides the default device limits when non-nil.
	Limits *gputypes.Limits

	Surface  surface.Policy
	Pipeline pipeline.Config
	Shader   shader.Artifact

	ClearColor gputypes.Color
	Continuous bool
	MaxFrames  uint64

	Window WindowConfig
	Logger *slog.Logger

	backend backend.Backend
}

// DefaultConfig returns the default configuration: default backend,
// high-performance adapter, sRGB-preferring surface, the embedded triangle
// shader and continuous rendering.
func DefaultConfig() Config {
	return Config{
		PowerPreference: gpucore.PowerPreferenceHighPerformance,
		Surface:         surface.DefaultPolicy(),
		Pipeline:        pipeline.DefaultConfig(),
		Shader:          shader.Default(),
		ClearColor:      render.DefaultClearColor,
		Continuous:      true,
		Window: WindowConfig{
			Title:  "frameloop",
			Width:  800,
			Height: 600,
		},
	}
}

// fileConfig is the YAML layout read by LoadConfig. Pointers distinguish
// unset keys from zero values.
type fileConfig struct {
	Backend         string `yaml:"backend"`
	PowerPreference string `yaml:"power_preference"`
	Shader          string `yaml:"shader"`

	Surface struct {
		Formats     []string `yaml:"formats"`
		PreferSRGB  *bool    `yaml:"prefer_srgb"`
		PresentMode string   `yaml:"present_mode"`
		AlphaMode   string   `yaml:"alpha_mode"`
	} `yaml:"surface"`

	Render struct {
		ClearColor []float64 `yaml:"clear_color"`
		Continuous *bool     `yaml:"continuous"`
		MaxFrames  uint64    `yaml:"max_frames"`
	} `yaml:"render"`

	Pipeline struct {
		CullMode    string `yaml:"cull_mode"`
		SampleCount uint32 `yaml:"sample_count"`
	} `yaml:"pipeline"`

	Window struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"window"`
}

// LoadConfig reads a YAML configuration file on top of [DefaultConfig].
// Keys that are absent keep their defaults. A relative shader path is
// resolved against the directory of the config file.
//
// Example:
//
//	backend: native
//	power_preference: low-power
//	surface:
//	  formats: [bgra8unorm-srgb, rgba8unorm-srgb]
//	  present_mode: mailbox
//	render:
//	  clear_color: [0, 0, 0, 1]
//	  continuous: false
//	window:
//	  title: demo
//	  width: 1280
//	  height: 720
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("frameloop: read config: %w", err)
	}
	cfg, err := parseConfig(data, filepath.Dir(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML configuration data on top of [DefaultConfig].
// A relative shader path is resolved against the working directory.
func ParseConfig(data []byte) (Config, error) {
	return parseConfig(data, ".")
}

func parseConfig(data []byte, dir string) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	cfg.Backend = fc.Backend

	if fc.PowerPreference != "" {
		p, err := gpucore.ParsePowerPreference(fc.PowerPreference)
		if err != nil {
			return Config{}, fmt.Errorf("%w: power_preference: %w", ErrInvalidConfig, err)
		}
		cfg.PowerPreference = p
	}

	if fc.Shader != "" {
		path := fc.Shader
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		a, err := shader.Load(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: shader: %w", ErrInvalidConfig, err)
		}
		cfg.Shader = a
	}

	for _, name := range fc.Surface.Formats {
		f, err := gpucore.ParseTextureFormat(name)
		if err != nil {
			return Config{}, fmt.Errorf("%w: surface.formats: %w", ErrInvalidConfig, err)
		}
		cfg.Surface.Formats = append(cfg.Surface.Formats, f)
	}
	if fc.Surface.PreferSRGB != nil {
		cfg.Surface.PreferSRGB = *fc.Surface.PreferSRGB
	}
	if fc.Surface.PresentMode != "" {
		m, err := gpucore.ParsePresentMode(fc.Surface.PresentMode)
		if err != nil {
			return Config{}, fmt.Errorf("%w: surface.present_mode: %w", ErrInvalidConfig, err)
		}
		cfg.Surface.PresentMode = m
	}
	if fc.Surface.AlphaMode != "" {
		m, err := gpucore.ParseCompositeAlphaMode(fc.Surface.AlphaMode)
		if err != nil {
			return Config{}, fmt.Errorf("%w: surface.alpha_mode: %w", ErrInvalidConfig, err)
		}
		cfg.Surface.AlphaMode = m
	}

	if c := fc.Render.ClearColor; c != nil {
		if len(c) != 4 {
			return Config{}, fmt.Errorf("%w: render.clear_color needs 4 components, got %d",
				ErrInvalidConfig, len(c))
		}
		cfg.ClearColor = gputypes.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	if fc.Render.Continuous != nil {
		cfg.Continuous = *fc.Render.Continuous
	}
	cfg.MaxFrames = fc.Render.MaxFrames

	switch fc.Pipeline.CullMode {
	case "":
	case "back":
		cfg.Pipeline.CullMode = gputypes.CullModeBack
	case "none":
		cfg.Pipeline.CullMode = gputypes.CullModeNone
	default:
		return Config{}, fmt.Errorf("%w: pipeline.cull_mode %q", ErrInvalidConfig, fc.Pipeline.CullMode)
	}
	switch fc.Pipeline.SampleCount {
	case 0, 1:
	default:
		return Config{}, fmt.Errorf("%w: pipeline.sample_count %d: only 1 is supported", ErrInvalidConfig, fc.Pipeline.SampleCount)
	}

	if fc.Window.Title != "" {
		cfg.Window.Title = fc.Window.Title
	}
	if fc.Window.Width > 0 {
		cfg.Window.Width = fc.Window.Width
	}
	if fc.Window.Height > 0 {
		cfg.Window.Height = fc.Window.Height
	}
	return cfg, nil
}
