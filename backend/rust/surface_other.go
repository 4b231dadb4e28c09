//go:build rust && !linux && !windows && !darwin

package rust

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/gpucore"
)

func surfaceDescriptor(w gpucore.NativeWindow) (*wgpu.SurfaceDescriptor, error) {
	return nil, fmt.Errorf("%w: %w: %s", errNoDescriptor, gpucore.ErrUnsupportedWindow, w.Platform)
}
