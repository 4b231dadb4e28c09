//go:build windows

package glfw

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/sys/windows"

	"github.com/gogpu/frameloop/gpucore"
)

func nativeWindow(win *glfw.Window) (gpucore.NativeWindow, error) {
	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return gpucore.NativeWindow{}, fmt.Errorf("glfw: module handle: %w", err)
	}
	return gpucore.NativeWindow{
		Platform: gpucore.PlatformWin32,
		Display:  uintptr(module),
		Window:   uintptr(unsafe.Pointer(win.GetWin32Window())),
	}, nil
}
