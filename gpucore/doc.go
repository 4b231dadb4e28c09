// Package gpucore defines the GPU backend boundary used by frameloop.
//
// The interfaces in this package cover exactly the subset of WebGPU that a
// single-pipeline present loop needs: an [Instance] that creates a [Surface]
// for a native window, an [Adapter] that opens a [Device] and [Queue], and
// the command recording types used to clear the surface and draw once.
//
// # Architecture
//
// Every backend is a thin adapter from these interfaces to a concrete API:
//
//	               +-----------------+
//	               |     gpucore     |
//	               |  (interfaces)   |
//	               +--------+--------+
//	                        |
//	     +------------------+------------------+
//	     |                  |                  |
//	+----v-----+      +-----v-----+      +-----v------+
//	|  native  |      |   rust    |      |  headless  |
//	|  (hal)   |      | (wgpu-    |      | (recorder) |
//	|          |      |  native)  |      |            |
//	+----------+      +-----------+      +------------+
//
// Value types ([SurfaceConfiguration], [SurfaceCapabilities],
// [RenderPipelineDescriptor]) reuse github.com/gogpu/gputypes for WebGPU
// enums. Present modes, alpha modes, polygon modes, power preferences and
// device types are declared here because every backend spells them
// differently.
//
// # Surface errors
//
// [Surface.AcquireTexture] reports recoverable conditions with the sentinel
// errors [ErrSurfaceOutdated], [ErrSurfaceLost] and [ErrSurfaceTimeout].
// Backends wrap their native errors so callers can use errors.Is.
//
// # Adapter selection
//
// [SelectAdapter] implements the selection policy shared by all backends:
// software adapters are never picked unless explicitly forced, adapters
// without surface formats are skipped, and discrete GPUs win for
// [PowerPreferenceHighPerformance].
package gpucore
