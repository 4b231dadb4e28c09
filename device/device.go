// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device acquires the GPU objects a window needs to present:
// instance, surface, adapter, device and queue.
//
// [Initialize] runs the whole sequence or nothing. On failure every object
// created so far is released in reverse order and no [Context] is returned.
package device

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/internal/logging"
	"github.com/gogpu/gputypes"
)

// Startup errors.
var (
	// ErrNoAdapter is returned when no hardware adapter can present to the
	// window's surface.
	ErrNoAdapter = errors.New("device: no compatible GPU adapter")

	// ErrDeviceRefused is returned when the adapter refuses the requested
	// features or limits.
	ErrDeviceRefused = errors.New("device: device request refused")

	// ErrNilBackend is returned when Initialize is called without a backend.
	ErrNilBackend = errors.New("device: nil backend")
)

// Options configures device acquisition.
type Options struct {
	// Label names the logical device in backend diagnostics.
	Label string

	// PowerPreference selects between discrete and integrated GPUs.
	// The zero value prefers high performance.
	PowerPreference gpucore.PowerPreference

	// Features are required device features. Empty by default.
	Features gputypes.Features

	// Limits are required device limits. Zero means gputypes.DefaultLimits().
	Limits *gputypes.Limits

	Logger *slog.Logger
}

// Context owns the GPU objects for one window.
type Context struct {
	Instance gpucore.Instance
	Surface  gpucore.Surface
	Adapter  gpucore.Adapter
	Device   gpucore.Device
	Queue    gpucore.Queue

	// Capabilities is the surface capability snapshot taken at startup.
	Capabilities gpucore.SurfaceCapabilities

	info gpucore.AdapterInfo
}

// Initialize creates the instance, surface, adapter, device and queue for
// win. It blocks until the device is ready.
//
// A software adapter is never selected. Errors wrap [ErrNoAdapter],
// [ErrDeviceRefused] or [gpucore.ErrUnsupportedWindow].
func Initialize(b backend.Backend, win gpucore.WindowHandle, opts Options) (*Context, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	log := logging.OrNop(opts.Logger)

	nw, err := win.NativeWindow()
	if err != nil {
		return nil, fmt.Errorf("device: native window: %w", err)
	}

	c := &Context{}
	ok := false
	defer func() {
		if !ok {
			c.Release()
		}
	}()

	// Step 1: Instance
	c.Instance, err = b.CreateInstance()
	if err != nil {
		return nil, fmt.Errorf("device: create %s instance: %w", b.Name(), err)
	}

	// Step 2: Surface
	c.Surface, err = c.Instance.CreateSurface(nw)
	if err != nil {
		return nil, fmt.Errorf("device: create surface: %w", err)
	}

	// Step 3: Adapter
	adapterOpts := gpucore.AdapterOptions{
		PowerPreference:   opts.PowerPreference,
		CompatibleSurface: c.Surface,
	}
	adapters, err := c.Instance.EnumerateAdapters(adapterOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	selected, caps, err := gpucore.SelectAdapter(adapters, c.Surface, adapterOpts)
	for _, a := range adapters {
		if a != selected {
			a.Release()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %d candidates on %s", ErrNoAdapter, len(adapters), b.Name())
	}
	c.Adapter = selected
	c.Capabilities = caps
	c.info = selected.Info()
	log.Info("device: adapter selected",
		"name", c.info.Name,
		"type", c.info.DeviceType.String(),
		"backend", c.info.Backend)

	// Step 4: Device and queue
	limits := gputypes.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	c.Device, c.Queue, err = selected.RequestDevice(gpucore.DeviceDescriptor{
		Label:            opts.Label,
		RequiredFeatures: opts.Features,
		RequiredLimits:   limits,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceRefused, err)
	}
	log.Debug("device: device ready",
		"formats", len(caps.Formats),
		"present_modes", len(caps.PresentModes),
		"alpha_modes", len(caps.AlphaModes))

	ok = true
	return c, nil
}

// AdapterInfo returns the selected adapter's description.
func (c *Context) AdapterInfo() gpucore.AdapterInfo {
	return c.info
}

// Release releases resources in reverse order of creation. Safe to call on
// a partially initialized or already released Context.
func (c *Context) Release() {
	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
		c.Queue = nil
	}
	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}
	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
	if c.Instance != nil {
		c.Instance.Release()
		c.Instance = nil
	}
}
