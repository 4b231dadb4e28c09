// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface keeps a window's presentable surface configured.
//
// A [Manager] chooses the surface format and present and alpha modes once,
// from the capability snapshot and a [Policy], and then tracks the window
// size:
//
//	m, err := surface.Configure(ctx.Device, ctx.Surface, w, h, ctx.Capabilities,
//		surface.Options{Policy: surface.DefaultPolicy()})
//	...
//	m.Reconfigure(newW, newH) // zero sizes are ignored
//
// The manager also owns the frame-in-flight flag: [Manager.Acquire] hands out
// one texture at a time and [Manager.Reconfigure] refuses to run until that
// texture is presented or discarded.
package surface
