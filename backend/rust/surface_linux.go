//go:build rust && linux

package rust

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/gpucore"
)

func surfaceDescriptor(w gpucore.NativeWindow) (*wgpu.SurfaceDescriptor, error) {
	switch w.Platform {
	case gpucore.PlatformX11:
		return &wgpu.SurfaceDescriptor{
			XlibWindow: &wgpu.SurfaceDescriptorFromXlibWindow{
				Display: unsafe.Pointer(w.Display),
				Window:  uint32(w.Window),
			},
		}, nil
	case gpucore.PlatformWayland:
		return &wgpu.SurfaceDescriptor{
			WaylandSurface: &wgpu.SurfaceDescriptorFromWaylandSurface{
				Display: unsafe.Pointer(w.Display),
				Surface: unsafe.Pointer(w.Window),
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %w: %s", errNoDescriptor, gpucore.ErrUnsupportedWindow, w.Platform)
	}
}
