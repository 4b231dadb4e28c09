package gpucore

import "errors"

// Surface and window errors shared by all backends.
var (
	// ErrSurfaceOutdated is returned when the surface no longer matches the
	// window and must be reconfigured before the next acquire.
	ErrSurfaceOutdated = errors.New("gpucore: surface outdated")

	// ErrSurfaceLost is returned when the surface was lost and must be
	// reconfigured before the next acquire.
	ErrSurfaceLost = errors.New("gpucore: surface lost")

	// ErrSurfaceTimeout is returned when no texture became available in time.
	ErrSurfaceTimeout = errors.New("gpucore: surface acquire timeout")

	// ErrUnsupportedWindow is returned when a backend cannot create a
	// surface for the window's platform.
	ErrUnsupportedWindow = errors.New("gpucore: unsupported window platform")

	// ErrNoAdapter is returned by SelectAdapter when no candidate qualifies.
	ErrNoAdapter = errors.New("gpucore: no suitable adapter")
)

// IsSurfaceRecoverable reports whether err means the surface can be brought
// back by reconfiguring it.
func IsSurfaceRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceOutdated) || errors.Is(err, ErrSurfaceLost)
}
