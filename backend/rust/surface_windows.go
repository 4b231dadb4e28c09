//go:build rust && windows

package rust

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/gpucore"
)

func surfaceDescriptor(w gpucore.NativeWindow) (*wgpu.SurfaceDescriptor, error) {
	if w.Platform != gpucore.PlatformWin32 {
		return nil, fmt.Errorf("%w: %w: %s", errNoDescriptor, gpucore.ErrUnsupportedWindow, w.Platform)
	}
	return &wgpu.SurfaceDescriptor{
		WindowsHWND: &wgpu.SurfaceDescriptorFromWindowsHWND{
			Hinstance: unsafe.Pointer(w.Display),
			Hwnd:      unsafe.Pointer(w.Window),
		},
	}, nil
}
