//go:build !windows && !freebsd && (!linux || wayland)

package glfw

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/frameloop/gpucore"
)

func nativeWindow(*glfw.Window) (gpucore.NativeWindow, error) {
	return gpucore.NativeWindow{}, fmt.Errorf("%w: glfw on %s", gpucore.ErrUnsupportedWindow, runtime.GOOS)
}
