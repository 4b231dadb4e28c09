// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render drives the per-frame state machine.
//
// Each call to [FrameRenderer.RenderFrame] runs one complete cycle:
//
//  1. Acquire: take the next surface texture. An outdated or lost surface is
//     reconfigured from its last size and acquisition retried once.
//  2. Record: one render pass on the texture's view. The pass clears to the
//     configured color, binds the pipeline and draws three vertices.
//  3. Submit: hand the command buffer to the queue.
//  4. Present: queue the texture for display.
//
// At most one frame is in flight. The surface cannot be reconfigured until
// the frame is presented or discarded.
//
// # Invariants
//
// The pipeline's output format must equal the surface format. RenderFrame
// checks this before recording and returns [ErrFormatMismatch] instead of
// drawing.
package render
