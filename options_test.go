package frameloop

import (
	"log/slog"
	"testing"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/pipeline"
	"github.com/gogpu/frameloop/render"
	"github.com/gogpu/frameloop/shader"
	"github.com/gogpu/frameloop/surface"
	"github.com/gogpu/gputypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend != "" {
		t.Errorf("Backend = %q, want default", cfg.Backend)
	}
	if cfg.PowerPreference != gpucore.PowerPreferenceHighPerformance {
		t.Errorf("PowerPreference = %v", cfg.PowerPreference)
	}
	if !cfg.Surface.PreferSRGB {
		t.Error("Surface.PreferSRGB = false")
	}
	if cfg.ClearColor != render.DefaultClearColor {
		t.Errorf("ClearColor = %+v", cfg.ClearColor)
	}
	if !cfg.Continuous {
		t.Error("Continuous = false")
	}
	if cfg.Shader.Label != "triangle" {
		t.Errorf("Shader.Label = %q", cfg.Shader.Label)
	}
	if cfg.Pipeline != pipeline.DefaultConfig() {
		t.Errorf("Pipeline = %+v", cfg.Pipeline)
	}
}

func TestOptions(t *testing.T) {
	limits := gputypes.DefaultLimits()
	logger := slog.Default()
	pcfg := pipeline.DefaultConfig()
	pcfg.CullMode = gputypes.CullModeNone
	policy := surface.Policy{PresentMode: gpucore.PresentModeMailbox}
	art := shader.Artifact{Label: "custom"}
	color := gputypes.Color{R: 1, A: 1}

	cfg := DefaultConfig()
	for _, opt := range []Option{
		WithBackend("headless"),
		WithPowerPreference(gpucore.PowerPreferenceLowPower),
		WithFeatures(3),
		WithLimits(limits),
		WithSurfacePolicy(policy),
		WithPipelineConfig(pcfg),
		WithShader(art),
		WithClearColor(color),
		WithContinuousRender(false),
		WithMaxFrames(7),
		WithLogger(logger),
	} {
		opt(&cfg)
	}

	if cfg.Backend != "headless" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.PowerPreference != gpucore.PowerPreferenceLowPower {
		t.Errorf("PowerPreference = %v", cfg.PowerPreference)
	}
	if cfg.Features != 3 {
		t.Errorf("Features = %v", cfg.Features)
	}
	if cfg.Limits == nil {
		t.Error("Limits not set")
	}
	if cfg.Surface.PresentMode != gpucore.PresentModeMailbox || cfg.Surface.PreferSRGB {
		t.Errorf("Surface = %+v", cfg.Surface)
	}
	if cfg.Pipeline.CullMode != gputypes.CullModeNone {
		t.Errorf("Pipeline.CullMode = %v", cfg.Pipeline.CullMode)
	}
	if cfg.Shader.Label != "custom" {
		t.Errorf("Shader.Label = %q", cfg.Shader.Label)
	}
	if cfg.ClearColor != color {
		t.Errorf("ClearColor = %+v", cfg.ClearColor)
	}
	if cfg.Continuous {
		t.Error("Continuous = true")
	}
	if cfg.MaxFrames != 7 {
		t.Errorf("MaxFrames = %d", cfg.MaxFrames)
	}
	if cfg.Logger != logger {
		t.Error("Logger not set")
	}
}

func TestWithConfigThenOverride(t *testing.T) {
	base := DefaultConfig()
	base.Backend = "native"
	base.MaxFrames = 10

	cfg := DefaultConfig()
	WithConfig(base)(&cfg)
	WithMaxFrames(2)(&cfg)

	if cfg.Backend != "native" || cfg.MaxFrames != 2 {
		t.Errorf("cfg = backend %q, max frames %d", cfg.Backend, cfg.MaxFrames)
	}
}
