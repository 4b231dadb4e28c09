//go:build rust

package rust

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
)

// init registers the rust backend on package import.
func init() {
	backend.Register(backend.BackendRust, func() backend.Backend {
		return New()
	})
}

// Backend creates wgpu-native instances.
type Backend struct{}

// New returns the rust backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendRust
}

// CreateInstance creates a wgpu-native instance.
func (b *Backend) CreateInstance() (gpucore.Instance, error) {
	return &instance{raw: wgpu.CreateInstance(nil)}, nil
}
