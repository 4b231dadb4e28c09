package gpucore

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// PresentMode controls how presented frames are queued for display.
//
// The zero value [PresentModeUndefined] means "use the first mode the
// surface reports".
type PresentMode uint8

// Present modes.
const (
	// PresentModeUndefined selects the first mode reported by the surface.
	PresentModeUndefined PresentMode = iota

	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo

	// PresentModeFifoRelaxed is Fifo that tears when a frame is late.
	PresentModeFifoRelaxed

	// PresentModeImmediate presents without waiting. May tear.
	PresentModeImmediate

	// PresentModeMailbox replaces the queued frame without tearing.
	PresentModeMailbox
)

var presentModeNames = [...]string{
	PresentModeUndefined:   "",
	PresentModeFifo:        "fifo",
	PresentModeFifoRelaxed: "fifo-relaxed",
	PresentModeImmediate:   "immediate",
	PresentModeMailbox:     "mailbox",
}

// String returns the lowercase WebGPU name of the mode.
func (m PresentMode) String() string {
	if int(m) < len(presentModeNames) {
		if m == PresentModeUndefined {
			return "undefined"
		}
		return presentModeNames[m]
	}
	return fmt.Sprintf("PresentMode(%d)", m)
}

// ParsePresentMode parses a present mode name as produced by String.
// An empty string parses to [PresentModeUndefined].
func ParsePresentMode(s string) (PresentMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "undefined" || s == "first" {
		return PresentModeUndefined, nil
	}
	for i, name := range presentModeNames {
		if name != "" && name == s {
			return PresentMode(i), nil
		}
	}
	return PresentModeUndefined, fmt.Errorf("gpucore: unknown present mode %q", s)
}

// CompositeAlphaMode controls how the compositor blends the surface.
//
// The zero value [CompositeAlphaModeUndefined] means "use the first mode the
// surface reports".
type CompositeAlphaMode uint8

// Composite alpha modes.
const (
	// CompositeAlphaModeUndefined selects the first mode reported by the surface.
	CompositeAlphaModeUndefined CompositeAlphaMode = iota

	// CompositeAlphaModeAuto lets the backend choose.
	CompositeAlphaModeAuto

	// CompositeAlphaModeOpaque ignores the alpha channel.
	CompositeAlphaModeOpaque

	// CompositeAlphaModePreMultiplied expects premultiplied color.
	CompositeAlphaModePreMultiplied

	// CompositeAlphaModePostMultiplied expects straight color.
	CompositeAlphaModePostMultiplied

	// CompositeAlphaModeInherit uses the platform default.
	CompositeAlphaModeInherit
)

var alphaModeNames = [...]string{
	CompositeAlphaModeUndefined:      "",
	CompositeAlphaModeAuto:           "auto",
	CompositeAlphaModeOpaque:         "opaque",
	CompositeAlphaModePreMultiplied:  "premultiplied",
	CompositeAlphaModePostMultiplied: "postmultiplied",
	CompositeAlphaModeInherit:        "inherit",
}

// String returns the lowercase name of the mode.
func (m CompositeAlphaMode) String() string {
	if int(m) < len(alphaModeNames) {
		if m == CompositeAlphaModeUndefined {
			return "undefined"
		}
		return alphaModeNames[m]
	}
	return fmt.Sprintf("CompositeAlphaMode(%d)", m)
}

// ParseCompositeAlphaMode parses an alpha mode name as produced by String.
// An empty string parses to [CompositeAlphaModeUndefined].
func ParseCompositeAlphaMode(s string) (CompositeAlphaMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "undefined" || s == "first" {
		return CompositeAlphaModeUndefined, nil
	}
	for i, name := range alphaModeNames {
		if name != "" && name == s {
			return CompositeAlphaMode(i), nil
		}
	}
	return CompositeAlphaModeUndefined, fmt.Errorf("gpucore: unknown alpha mode %q", s)
}

// PolygonMode controls how triangles are rasterized.
type PolygonMode uint8

// Polygon modes.
const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

// String returns the lowercase name of the mode.
func (m PolygonMode) String() string {
	switch m {
	case PolygonModeFill:
		return "fill"
	case PolygonModeLine:
		return "line"
	case PolygonModePoint:
		return "point"
	default:
		return fmt.Sprintf("PolygonMode(%d)", m)
	}
}

// PowerPreference is the adapter selection hint.
// The zero value prefers a high-performance adapter.
type PowerPreference uint8

// Power preferences.
const (
	PowerPreferenceHighPerformance PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceNone
)

// String returns the lowercase name of the preference.
func (p PowerPreference) String() string {
	switch p {
	case PowerPreferenceHighPerformance:
		return "high-performance"
	case PowerPreferenceLowPower:
		return "low-power"
	case PowerPreferenceNone:
		return "none"
	default:
		return fmt.Sprintf("PowerPreference(%d)", p)
	}
}

// ParsePowerPreference parses a preference name as produced by String.
// An empty string parses to [PowerPreferenceHighPerformance].
func ParsePowerPreference(s string) (PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "high-performance", "high":
		return PowerPreferenceHighPerformance, nil
	case "low-power", "low":
		return PowerPreferenceLowPower, nil
	case "none":
		return PowerPreferenceNone, nil
	default:
		return PowerPreferenceHighPerformance, fmt.Errorf("gpucore: unknown power preference %q", s)
	}
}

// DeviceType is the kind of physical device behind an adapter.
type DeviceType uint8

// Device types.
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

// String returns a human-readable device type.
func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "IntegratedGPU"
	case DeviceTypeDiscreteGPU:
		return "DiscreteGPU"
	case DeviceTypeVirtualGPU:
		return "VirtualGPU"
	case DeviceTypeCPU:
		return "CPU"
	default:
		return "Other"
	}
}

// AdapterInfo describes one physical adapter.
type AdapterInfo struct {
	// Name is the device name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the vendor name or PCI id.
	Vendor string
	// DeviceType is the kind of device.
	DeviceType DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12, ...).
	Backend string
}

// String returns a human-readable description of the adapter.
func (i AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.DeviceType, i.Backend)
}

// SurfaceCapabilities is the snapshot of what a surface supports on a
// given adapter. Lists are in backend preference order.
type SurfaceCapabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []PresentMode
	AlphaModes   []CompositeAlphaMode
}

// Empty reports whether the adapter cannot present to the surface at all.
func (c SurfaceCapabilities) Empty() bool {
	return len(c.Formats) == 0
}

// SurfaceConfiguration is the parameter set applied to a surface.
// Width and Height are always greater than zero when applied.
type SurfaceConfiguration struct {
	Usage       gputypes.TextureUsage
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	AlphaMode   CompositeAlphaMode
}

// AdapterOptions is passed to [Instance.EnumerateAdapters].
type AdapterOptions struct {
	PowerPreference PowerPreference
	// ForceFallbackAdapter allows software adapters. Never set by frameloop
	// itself; exposed for tests and diagnostics.
	ForceFallbackAdapter bool
	// CompatibleSurface restricts the result to adapters that can present
	// to this surface, when the backend can tell.
	CompatibleSurface Surface
}

// DeviceDescriptor describes the logical device to open.
type DeviceDescriptor struct {
	Label            string
	RequiredFeatures gputypes.Features
	RequiredLimits   gputypes.Limits
}

// ShaderModuleDescriptor describes a shader module. WGSL is always set.
// SPIRV, when present, is the same program compiled ahead of time; backends
// that consume SPIR-V use it instead of compiling WGSL again.
type ShaderModuleDescriptor struct {
	Label string
	WGSL  string
	SPIRV []uint32
}

// RenderPipelineDescriptor describes a render pipeline with one vertex and
// one fragment stage from a single shader module and one color target.
type RenderPipelineDescriptor struct {
	Label         string
	Module        ShaderModule
	VertexEntry   string
	FragmentEntry string
	Target        gputypes.ColorTargetState
	Primitive     gputypes.PrimitiveState
	PolygonMode   PolygonMode
	Multisample   gputypes.MultisampleState
}

// RenderPassDescriptor describes a render pass with a single color
// attachment.
type RenderPassDescriptor struct {
	Label      string
	View       TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// IsSRGB reports whether format stores color in the sRGB transfer function.
func IsSRGB(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

var formatNames = map[string]gputypes.TextureFormat{
	"rgba8unorm":      gputypes.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb": gputypes.TextureFormatRGBA8UnormSrgb,
	"bgra8unorm":      gputypes.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb": gputypes.TextureFormatBGRA8UnormSrgb,
}

// ParseTextureFormat parses a WebGPU surface format name such as
// "bgra8unorm-srgb". Only color formats usable as surface formats are known.
func ParseTextureFormat(s string) (gputypes.TextureFormat, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("gpucore: unknown surface format %q", s)
}

// FormatName returns the WebGPU name of a surface format, or a numeric
// placeholder for formats outside the known set.
func FormatName(format gputypes.TextureFormat) string {
	for name, f := range formatNames {
		if f == format {
			return name
		}
	}
	if format == gputypes.TextureFormatUndefined {
		return "undefined"
	}
	return fmt.Sprintf("format(%d)", uint32(format))
}
