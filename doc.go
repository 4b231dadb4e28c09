// Package frameloop opens a WebGPU device for a window and presents a frame
// every time the window asks for one.
//
// # Overview
//
// An [App] negotiates an adapter, device and queue for a window, keeps a
// presentable surface configured to the window size, builds one render
// pipeline for the surface format and, per frame, acquires the next surface
// texture, clears it, draws and presents. Resizes reconfigure the surface;
// an outdated or lost surface is reconfigured and the frame retried once.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/frameloop"
//	    _ "github.com/gogpu/frameloop/backend/native"
//	    "github.com/gogpu/frameloop/window/glfw"
//	)
//
//	runtime.LockOSThread()
//	win, err := glfw.Open(glfw.DefaultConfig())
//	...
//	app, err := frameloop.New(win)
//	...
//	defer app.Close()
//	err = app.Run(ctx, nil)
//
// # Architecture
//
//	window (glfw | scripted) ──events──> event.Dispatcher ──> App
//	                                                          │
//	          device.Context  surface.Manager  pipeline  render.FrameRenderer
//	                 │               │            │              │
//	                 └───────────────┴── gpucore interfaces ─────┘
//	                                          │
//	                      backend: native (gogpu/wgpu hal) | rust | headless
//
// # Backends
//
// Backends register themselves by name when their package is imported.
// The App uses the highest-priority one unless [WithBackend] names another.
// The headless backend renders nothing and records every frame; it backs
// the tests and the -backend=headless mode of cmd/frameloop.
//
// # Logging
//
// frameloop is silent by default. See [SetLogger] and [WithLogger].
package frameloop

// Version is the current version of the module.
const Version = "0.1.0"
