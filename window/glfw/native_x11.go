//go:build (linux && !wayland) || freebsd

package glfw

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/frameloop/gpucore"
)

func nativeWindow(win *glfw.Window) (gpucore.NativeWindow, error) {
	return gpucore.NativeWindow{
		Platform: gpucore.PlatformX11,
		Display:  uintptr(unsafe.Pointer(glfw.GetX11Display())),
		Window:   uintptr(win.GetX11Window()),
	}, nil
}
