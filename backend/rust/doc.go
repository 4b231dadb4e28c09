// Package rust provides the GPU backend built on wgpu-native through
// github.com/cogentcore/webgpu.
//
// The backend is compiled only with the "rust" build tag:
//
//	go build -tags rust ./...
//
// and registered under the name "rust" when imported:
//
//	import _ "github.com/gogpu/frameloop/backend/rust"
//
// Without the tag a stub is compiled whose factory returns nil, so
// [backend.Default] falls through to the native backend.
//
// wgpu-native picks a single adapter itself, so EnumerateAdapters returns
// at most one candidate. Surface errors are classified by their status
// text, since the bindings report them as plain errors.
//
// # Requirements
//
//   - cgo and a C toolchain
//   - a GPU that supports Vulkan, Metal or DX12
package rust
