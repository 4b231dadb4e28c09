package frameloop

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/frameloop/backend/headless"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/window"
	"github.com/gogpu/gputypes"
)

const testWGSL = `
@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    let x = f32(i32(i) - 1);
    let y = f32(i32(i & 1u) * 2 - 1);
    return vec4<f32>(x, y, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.0, 1.0, 0.0, 1.0);
}
`

func TestParseConfigEmptyIsDefault(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) error = %v", err)
	}
	def := DefaultConfig()
	if cfg.Backend != def.Backend || cfg.Continuous != def.Continuous ||
		cfg.ClearColor != def.ClearColor || cfg.Window != def.Window {
		t.Errorf("ParseConfig(nil) = %+v, want defaults", cfg)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
backend: headless
power_preference: low-power
surface:
  formats: [rgba8unorm-srgb, bgra8unorm]
  prefer_srgb: false
  present_mode: mailbox
  alpha_mode: premultiplied
render:
  clear_color: [0, 0, 0, 1]
  continuous: false
  max_frames: 12
pipeline:
  cull_mode: none
window:
  title: demo
  width: 1280
  height: 720
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Backend != "headless" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.PowerPreference != gpucore.PowerPreferenceLowPower {
		t.Errorf("PowerPreference = %v", cfg.PowerPreference)
	}
	wantFormats := []gputypes.TextureFormat{gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8Unorm}
	if len(cfg.Surface.Formats) != 2 || cfg.Surface.Formats[0] != wantFormats[0] || cfg.Surface.Formats[1] != wantFormats[1] {
		t.Errorf("Surface.Formats = %v", cfg.Surface.Formats)
	}
	if cfg.Surface.PreferSRGB {
		t.Error("Surface.PreferSRGB = true")
	}
	if cfg.Surface.PresentMode != gpucore.PresentModeMailbox {
		t.Errorf("Surface.PresentMode = %v", cfg.Surface.PresentMode)
	}
	if cfg.Surface.AlphaMode != gpucore.CompositeAlphaModePreMultiplied {
		t.Errorf("Surface.AlphaMode = %v", cfg.Surface.AlphaMode)
	}
	if cfg.ClearColor != (gputypes.Color{A: 1}) {
		t.Errorf("ClearColor = %+v", cfg.ClearColor)
	}
	if cfg.Continuous || cfg.MaxFrames != 12 {
		t.Errorf("Continuous = %v, MaxFrames = %d", cfg.Continuous, cfg.MaxFrames)
	}
	if cfg.Pipeline.CullMode != gputypes.CullModeNone {
		t.Errorf("Pipeline.CullMode = %v", cfg.Pipeline.CullMode)
	}
	if cfg.Window != (WindowConfig{Title: "demo", Width: 1280, Height: 720}) {
		t.Errorf("Window = %+v", cfg.Window)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "backend: [unterminated"},
		{"power preference", "power_preference: turbo"},
		{"format", "surface:\n  formats: [rgb565]"},
		{"present mode", "surface:\n  present_mode: vsync-ish"},
		{"alpha mode", "surface:\n  alpha_mode: glass"},
		{"clear color", "render:\n  clear_color: [1, 0]"},
		{"cull mode", "pipeline:\n  cull_mode: front-and-back"},
		{"sample count", "pipeline:\n  sample_count: 4\n"},
		{"missing shader", "shader: does-not-exist.wgsl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfigResolvesShader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "green.wgsl"), []byte(testWGSL), 0o600); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "frameloop.yaml")
	if err := os.WriteFile(path, []byte("shader: green.wgsl\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Shader.Label != "green" || cfg.Shader.Source != testWGSL {
		t.Errorf("Shader = %q (%d bytes)", cfg.Shader.Label, len(cfg.Shader.Source))
	}

	b := headless.New(headless.DefaultConfig())
	app, err := New(window.NewScripted(64, 64), WithConfig(cfg), WithBackendInstance(b))
	if err != nil {
		t.Fatalf("New() with loaded shader error = %v", err)
	}
	defer app.Close()
	if err := app.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	if app.Pipeline().Label() != "green" {
		t.Errorf("Pipeline().Label() = %q", app.Pipeline().Label())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig() error = %v, want not exist", err)
	}
}
