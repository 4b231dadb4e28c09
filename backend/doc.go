// Package backend provides the pluggable GPU backend registry.
//
// A backend turns the [gpucore] interfaces into calls on a concrete GPU API.
// Backends register themselves from init() functions and are selected at
// runtime by name or by priority.
//
// # Backend Registration
//
// Import the backend packages you want available:
//
//	import (
//		_ "github.com/gogpu/frameloop/backend/headless"
//		_ "github.com/gogpu/frameloop/backend/native"
//		_ "github.com/gogpu/frameloop/backend/rust" // needs -tags rust
//	)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b := backend.Default()
//	instance, err := b.CreateInstance()
//
// # Available Backends
//
//   - "rust": wgpu-native through cogentcore/webgpu (requires -tags rust)
//   - "native": Pure Go gogpu/wgpu HAL (Vulkan)
//   - "headless": in-memory recorder with no GPU, used for tests and CI
//
// Priority order: rust > native > headless.
package backend
