package frameloop

import (
	"log/slog"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/pipeline"
	"github.com/gogpu/frameloop/shader"
	"github.com/gogpu/frameloop/surface"
	"github.com/gogpu/gputypes"
)

// Option configures an App during creation.
//
// Example:
//
//	app, err := frameloop.New(win,
//	    frameloop.WithBackend("native"),
//	    frameloop.WithClearColor(gputypes.Color{A: 1}),
//	)
type Option func(*Config)

// WithConfig replaces the whole configuration, typically one returned by
// [LoadConfig]. Options after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithBackend selects a registered backend by name. An empty name selects
// the highest-priority registered backend.
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// WithBackendInstance uses b directly instead of looking it up in the
// registry.
func WithBackendInstance(b backend.Backend) Option {
	return func(c *Config) {
		c.backend = b
	}
}

// WithPowerPreference sets the adapter ranking preference.
func WithPowerPreference(p gpucore.PowerPreference) Option {
	return func(c *Config) {
		c.PowerPreference = p
	}
}

// WithFeatures sets the device features to request.
func WithFeatures(f gputypes.Features) Option {
	return func(c *Config) {
		c.Features = f
	}
}

// WithLimits sets the device limits to request instead of the defaults.
func WithLimits(l gputypes.Limits) Option {
	return func(c *Config) {
		c.Limits = &l
	}
}

// WithSurfacePolicy sets how the surface format and modes are chosen.
func WithSurfacePolicy(p surface.Policy) Option {
	return func(c *Config) {
		c.Surface = p
	}
}

// WithPipelineConfig overrides the fixed-function pipeline state.
func WithPipelineConfig(p pipeline.Config) Option {
	return func(c *Config) {
		c.Pipeline = p
	}
}

// WithShader sets the shader program. The default is the embedded triangle.
func WithShader(a shader.Artifact) Option {
	return func(c *Config) {
		c.Shader = a
	}
}

// WithClearColor sets the color each frame is cleared to.
func WithClearColor(col gputypes.Color) Option {
	return func(c *Config) {
		c.ClearColor = col
	}
}

// WithContinuousRender selects continuous rendering (a redraw after every
// event batch) or on-demand rendering (only on redraw requests).
func WithContinuousRender(on bool) Option {
	return func(c *Config) {
		c.Continuous = on
	}
}

// WithMaxFrames makes Run return after n rendered frames. Zero means no
// limit.
func WithMaxFrames(n uint64) Option {
	return func(c *Config) {
		c.MaxFrames = n
	}
}

// WithLogger sets the logger for this App instead of [Logger].
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
