//go:build rust

package rust

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frameloop/gpucore"
)

var formats = []struct {
	core gputypes.TextureFormat
	wgpu wgpu.TextureFormat
}{
	{gputypes.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8Unorm},
	{gputypes.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb},
	{gputypes.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8Unorm},
	{gputypes.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb},
	{gputypes.TextureFormatRGBA16Float, wgpu.TextureFormatRGBA16Float},
}

func formatFromWGPU(f wgpu.TextureFormat) (gputypes.TextureFormat, bool) {
	for _, e := range formats {
		if e.wgpu == f {
			return e.core, true
		}
	}
	return gputypes.TextureFormatUndefined, false
}

func formatToWGPU(f gputypes.TextureFormat) (wgpu.TextureFormat, bool) {
	for _, e := range formats {
		if e.core == f {
			return e.wgpu, true
		}
	}
	return wgpu.TextureFormatUndefined, false
}

var presentModes = []struct {
	core gpucore.PresentMode
	wgpu wgpu.PresentMode
}{
	{gpucore.PresentModeFifo, wgpu.PresentModeFifo},
	{gpucore.PresentModeFifoRelaxed, wgpu.PresentModeFifoRelaxed},
	{gpucore.PresentModeImmediate, wgpu.PresentModeImmediate},
	{gpucore.PresentModeMailbox, wgpu.PresentModeMailbox},
}

func presentModeFromWGPU(m wgpu.PresentMode) gpucore.PresentMode {
	for _, p := range presentModes {
		if p.wgpu == m {
			return p.core
		}
	}
	return gpucore.PresentModeUndefined
}

func presentModeToWGPU(m gpucore.PresentMode) wgpu.PresentMode {
	for _, p := range presentModes {
		if p.core == m {
			return p.wgpu
		}
	}
	return wgpu.PresentModeFifo
}

var alphaModes = []struct {
	core gpucore.CompositeAlphaMode
	wgpu wgpu.CompositeAlphaMode
}{
	{gpucore.CompositeAlphaModeAuto, wgpu.CompositeAlphaModeAuto},
	{gpucore.CompositeAlphaModeOpaque, wgpu.CompositeAlphaModeOpaque},
	{gpucore.CompositeAlphaModePreMultiplied, wgpu.CompositeAlphaModePremultiplied},
	{gpucore.CompositeAlphaModePostMultiplied, wgpu.CompositeAlphaModeUnpremultiplied},
	{gpucore.CompositeAlphaModeInherit, wgpu.CompositeAlphaModeInherit},
}

func alphaModeFromWGPU(m wgpu.CompositeAlphaMode) gpucore.CompositeAlphaMode {
	for _, a := range alphaModes {
		if a.wgpu == m {
			return a.core
		}
	}
	return gpucore.CompositeAlphaModeUndefined
}

func alphaModeToWGPU(m gpucore.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	for _, a := range alphaModes {
		if a.core == m {
			return a.wgpu
		}
	}
	return wgpu.CompositeAlphaModeOpaque
}

func powerPreference(p gpucore.PowerPreference) wgpu.PowerPreference {
	switch p {
	case gpucore.PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	case gpucore.PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

func deviceType(t wgpu.AdapterType) gpucore.DeviceType {
	switch t {
	case wgpu.AdapterTypeDiscreteGPU:
		return gpucore.DeviceTypeDiscreteGPU
	case wgpu.AdapterTypeIntegratedGPU:
		return gpucore.DeviceTypeIntegratedGPU
	case wgpu.AdapterTypeCPU:
		return gpucore.DeviceTypeCPU
	default:
		return gpucore.DeviceTypeOther
	}
}

func topology(t gputypes.PrimitiveTopology) wgpu.PrimitiveTopology {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return wgpu.PrimitiveTopologyPointList
	case gputypes.PrimitiveTopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case gputypes.PrimitiveTopologyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case gputypes.PrimitiveTopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

func frontFace(f gputypes.FrontFace) wgpu.FrontFace {
	if f == gputypes.FrontFaceCW {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func cullMode(c gputypes.CullMode) wgpu.CullMode {
	switch c {
	case gputypes.CullModeFront:
		return wgpu.CullModeFront
	case gputypes.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func loadOp(op gputypes.LoadOp) wgpu.LoadOp {
	if op == gputypes.LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func storeOp(op gputypes.StoreOp) wgpu.StoreOp {
	if op == gputypes.StoreOpDiscard {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}

// surfaceError maps the status text of a surface error onto the gpucore
// sentinels.
func surfaceError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %w", gpucore.ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %w", gpucore.ErrSurfaceLost, err)
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", gpucore.ErrSurfaceTimeout, err)
	default:
		return err
	}
}

// errNoDescriptor is returned by surfaceDescriptor for platforms the
// current OS build cannot present to.
var errNoDescriptor = errors.New("rust: no surface descriptor for platform")
