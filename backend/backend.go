package backend

import (
	"errors"

	"github.com/gogpu/frameloop/gpucore"
)

// Backend names.
const (
	BackendRust     = "rust"
	BackendNative   = "native"
	BackendHeadless = "headless"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend is the interface for GPU backends.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "native", "rust").
	Name() string

	// CreateInstance creates the backend's GPU instance. Each call returns
	// a new instance owned by the caller.
	CreateInstance() (gpucore.Instance, error)
}
