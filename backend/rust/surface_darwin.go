//go:build rust && darwin

package rust

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/gpucore"
)

func surfaceDescriptor(w gpucore.NativeWindow) (*wgpu.SurfaceDescriptor, error) {
	if w.Platform != gpucore.PlatformCocoa {
		return nil, fmt.Errorf("%w: %w: %s", errNoDescriptor, gpucore.ErrUnsupportedWindow, w.Platform)
	}
	return &wgpu.SurfaceDescriptor{
		MetalLayer: &wgpu.SurfaceDescriptorFromMetalLayer{
			Layer: unsafe.Pointer(w.Window),
		},
	}, nil
}
