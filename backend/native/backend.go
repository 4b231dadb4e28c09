// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native provides the pure Go GPU backend built on gogpu/wgpu's
// hardware abstraction layer.
//
// The backend talks to Vulkan through github.com/gogpu/wgpu/hal with no cgo
// and no native library. It is registered under the name "native" when the
// package is imported:
//
//	import _ "github.com/gogpu/frameloop/backend/native"
//
// Shader modules carry SPIR-V compiled ahead of time by naga; WGSL is only
// handed to hal when no SPIR-V is attached. Submit waits until the queue
// reports the submission index completed, so a command buffer can be freed
// as soon as Submit returns.
package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
)

// Backend errors.
var (
	// ErrUnsupportedPolygonMode is returned for non-fill polygon modes.
	ErrUnsupportedPolygonMode = errors.New("native: only fill polygon mode is supported")

	// ErrForeignObject is returned when an object created by another
	// backend is passed in.
	ErrForeignObject = errors.New("native: object belongs to another backend")

	// ErrSubmitTimeout is returned when the GPU does not complete a
	// submission in time.
	ErrSubmitTimeout = errors.New("native: GPU did not finish in time")
)

// init registers the native backend on package import.
func init() {
	backend.Register(backend.BackendNative, func() backend.Backend {
		return New()
	})
}

// Backend creates hal instances for one graphics API.
type Backend struct {
	api gputypes.Backend
}

// New returns a backend using Vulkan.
func New() *Backend {
	return &Backend{api: gputypes.BackendVulkan}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendNative
}

// CreateInstance creates a hal instance. It fails with
// [backend.ErrBackendNotAvailable] when the graphics API was not compiled
// in.
func (b *Backend) CreateInstance() (gpucore.Instance, error) {
	hb, ok := hal.GetBackend(b.api)
	if !ok {
		return nil, fmt.Errorf("%w: hal backend %v", backend.ErrBackendNotAvailable, b.api)
	}
	inst, err := hb.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	return &instance{raw: inst, api: b.api}, nil
}
