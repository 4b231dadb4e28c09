// Package pipeline builds the single render pipeline drawn each frame.
//
// A [Pipeline] is immutable and remembers the color format it was built
// for. The frame renderer checks that format against the surface before
// every frame; when the surface format changes the pipeline is rebuilt,
// never patched.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/internal/logging"
	"github.com/gogpu/frameloop/shader"
	"github.com/gogpu/gputypes"
)

// Build errors. All are fatal at startup.
var (
	// ErrInvalidShader is returned when the shader artifact fails
	// validation or the device rejects the module.
	ErrInvalidShader = errors.New("pipeline: invalid shader")

	// ErrUndefinedFormat is returned when building for an undefined format.
	ErrUndefinedFormat = errors.New("pipeline: undefined output format")

	// ErrCreateFailed is returned when the device rejects the pipeline.
	ErrCreateFailed = errors.New("pipeline: creation failed")

	// ErrUnsupportedSampleCount is returned for a sample count other than
	// 1. The frame renderer draws straight into the single-sampled surface
	// texture and has no resolve target.
	ErrUnsupportedSampleCount = errors.New("pipeline: sample count must be 1")
)

// Config holds the fixed-function state.
type Config struct {
	Topology    gputypes.PrimitiveTopology
	FrontFace   gputypes.FrontFace
	CullMode    gputypes.CullMode
	PolygonMode gpucore.PolygonMode

	// SampleCount is the multisample count. Zero means 1; any other value
	// is rejected by Build.
	SampleCount uint32

	WriteMask gputypes.ColorWriteMask

	// Blend is the color blend state. Nil replaces the target color.
	Blend *gputypes.BlendState
}

// DefaultConfig returns a triangle list with counter-clockwise front faces,
// back-face culling, filled polygons, one sample, all channels written and
// no blending.
func DefaultConfig() Config {
	return Config{
		Topology:    gputypes.PrimitiveTopologyTriangleList,
		FrontFace:   gputypes.FrontFaceCCW,
		CullMode:    gputypes.CullModeBack,
		PolygonMode: gpucore.PolygonModeFill,
		SampleCount: 1,
		WriteMask:   gputypes.ColorWriteMaskAll,
		Blend:       nil,
	}
}

// Pipeline is a compiled render pipeline and the shader module it uses.
type Pipeline struct {
	label  string
	format gputypes.TextureFormat
	module gpucore.ShaderModule
	handle gpucore.RenderPipeline
}

// Format returns the color format the pipeline writes.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// Handle returns the backend pipeline for binding in a render pass.
func (p *Pipeline) Handle() gpucore.RenderPipeline { return p.handle }

// Label returns the pipeline label.
func (p *Pipeline) Label() string { return p.label }

// Release destroys the pipeline, then its shader module.
func (p *Pipeline) Release() {
	if p.handle != nil {
		p.handle.Release()
		p.handle = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}

// Builder creates pipelines on one device with a fixed Config.
type Builder struct {
	device gpucore.Device
	config Config
	log    *slog.Logger
}

// NewBuilder returns a Builder for dev. A nil logger disables logging.
func NewBuilder(dev gpucore.Device, cfg Config, log *slog.Logger) *Builder {
	if cfg.SampleCount == 0 {
		cfg.SampleCount = 1
	}
	return &Builder{device: dev, config: cfg, log: logging.OrNop(log)}
}

// Config returns the builder's fixed-function state.
func (b *Builder) Config() Config { return b.config }

// Build validates a and creates a pipeline whose single color target has
// the given format.
func (b *Builder) Build(a shader.Artifact, format gputypes.TextureFormat) (*Pipeline, error) {
	if format == gputypes.TextureFormatUndefined {
		return nil, ErrUndefinedFormat
	}
	if b.config.SampleCount != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedSampleCount, b.config.SampleCount)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	spirv, err := a.SPIRV()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}

	module, err := b.device.CreateShaderModule(gpucore.ShaderModuleDescriptor{
		Label: a.Label,
		WGSL:  a.Source,
		SPIRV: spirv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidShader, a.Label, err)
	}

	cfg := b.config
	handle, err := b.device.CreateRenderPipeline(gpucore.RenderPipelineDescriptor{
		Label:         a.Label + "_pipeline",
		Module:        module,
		VertexEntry:   a.VertexEntry,
		FragmentEntry: a.FragmentEntry,
		Target: gputypes.ColorTargetState{
			Format:    format,
			Blend:     cfg.Blend,
			WriteMask: cfg.WriteMask,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  cfg.Topology,
			FrontFace: cfg.FrontFace,
			CullMode:  cfg.CullMode,
		},
		PolygonMode: cfg.PolygonMode,
		Multisample: gputypes.MultisampleState{
			Count: cfg.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		module.Release()
		return nil, fmt.Errorf("%w: %q: %w", ErrCreateFailed, a.Label, err)
	}

	b.log.Debug("pipeline: built",
		"label", a.Label,
		"format", gpucore.FormatName(format),
		"polygon_mode", cfg.PolygonMode.String())
	return &Pipeline{label: a.Label, format: format, module: module, handle: handle}, nil
}
