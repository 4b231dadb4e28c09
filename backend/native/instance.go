// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frameloop/gpucore"
)

type instance struct {
	raw hal.Instance
	api gputypes.Backend
}

func (i *instance) CreateSurface(w gpucore.NativeWindow) (gpucore.Surface, error) {
	switch w.Platform {
	case gpucore.PlatformX11, gpucore.PlatformWayland, gpucore.PlatformWin32, gpucore.PlatformCocoa:
	default:
		return nil, fmt.Errorf("native: %w: %s", gpucore.ErrUnsupportedWindow, w.Platform)
	}
	if w.Window == 0 {
		return nil, fmt.Errorf("native: %w: null window handle", gpucore.ErrUnsupportedWindow)
	}
	raw, err := i.raw.CreateSurface(w.Display, w.Window)
	if err != nil {
		return nil, fmt.Errorf("native: create surface: %w", err)
	}
	return &surface{raw: raw}, nil
}

func (i *instance) EnumerateAdapters(opts gpucore.AdapterOptions) ([]gpucore.Adapter, error) {
	var hint hal.Surface
	if s, ok := opts.CompatibleSurface.(*surface); ok {
		hint = s.raw
	}
	exposed := i.raw.EnumerateAdapters(hint)
	out := make([]gpucore.Adapter, 0, len(exposed))
	for _, e := range exposed {
		out = append(out, &adapter{
			raw: e.Adapter,
			info: gpucore.AdapterInfo{
				Name:       e.Info.Name,
				DeviceType: deviceType(e.Info.DeviceType),
				Backend:    fmt.Sprint(i.api),
			},
		})
	}
	return out, nil
}

func (i *instance) Release() {
	if i.raw != nil {
		i.raw.Destroy()
		i.raw = nil
	}
}

// adapter handles are owned by the instance and need no release of their
// own.
type adapter struct {
	raw  hal.Adapter
	info gpucore.AdapterInfo
}

func (a *adapter) Info() gpucore.AdapterInfo { return a.info }

func (a *adapter) SurfaceCapabilities(s gpucore.Surface) gpucore.SurfaceCapabilities {
	ss, ok := s.(*surface)
	if !ok {
		return gpucore.SurfaceCapabilities{}
	}
	caps := a.raw.SurfaceCapabilities(ss.raw)
	if caps == nil {
		return gpucore.SurfaceCapabilities{}
	}
	out := gpucore.SurfaceCapabilities{
		Formats: append([]gputypes.TextureFormat(nil), caps.Formats...),
	}
	for _, m := range caps.PresentModes {
		if pm := presentModeFromHAL(m); pm != gpucore.PresentModeUndefined {
			out.PresentModes = append(out.PresentModes, pm)
		}
	}
	for _, m := range caps.AlphaModes {
		if am := alphaModeFromHAL(m); am != gpucore.CompositeAlphaModeUndefined {
			out.AlphaModes = append(out.AlphaModes, am)
		}
	}
	return out
}

func (a *adapter) RequestDevice(desc gpucore.DeviceDescriptor) (gpucore.Device, gpucore.Queue, error) {
	open, err := a.raw.Open(desc.RequiredFeatures, desc.RequiredLimits)
	if err != nil {
		return nil, nil, fmt.Errorf("native: open device %q: %w", desc.Label, err)
	}
	d := &device{raw: open.Device}
	return d, &queue{raw: open.Queue, device: d}, nil
}

func (a *adapter) Release() {}

type surface struct {
	raw hal.Surface

	device *device
	format gputypes.TextureFormat
}

func (s *surface) Configure(dev gpucore.Device, cfg gpucore.SurfaceConfiguration) error {
	d, ok := dev.(*device)
	if !ok {
		return ErrForeignObject
	}
	err := s.raw.Configure(d.raw, &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: presentModeToHAL(cfg.PresentMode),
		AlphaMode:   alphaModeToHAL(cfg.AlphaMode),
	})
	if err != nil {
		return fmt.Errorf("native: configure surface: %w", surfaceError(err))
	}
	s.device = d
	s.format = cfg.Format
	return nil
}

func (s *surface) Unconfigure(dev gpucore.Device) {
	if d, ok := dev.(*device); ok {
		s.raw.Unconfigure(d.raw)
		s.device = nil
	}
}

func (s *surface) AcquireTexture() (gpucore.SurfaceTexture, error) {
	acquired, err := s.raw.AcquireTexture(nil)
	if err != nil {
		return nil, fmt.Errorf("native: acquire: %w", surfaceError(err))
	}
	return &surfaceTexture{raw: acquired.Texture, format: s.format, device: s.device}, nil
}

func (s *surface) DiscardTexture(tex gpucore.SurfaceTexture) {
	if t, ok := tex.(*surfaceTexture); ok && t.raw != nil {
		s.raw.DiscardTexture(t.raw)
		t.raw = nil
	}
}

func (s *surface) Release() {
	if s.raw != nil {
		s.raw.Destroy()
		s.raw = nil
	}
}

type surfaceTexture struct {
	raw    hal.SurfaceTexture
	format gputypes.TextureFormat
	device *device
}

func (t *surfaceTexture) CreateView() (gpucore.TextureView, error) {
	if t.device == nil {
		return nil, fmt.Errorf("native: %w: texture not bound to a device", ErrForeignObject)
	}
	raw, err := t.device.raw.CreateTextureView(t.raw, &hal.TextureViewDescriptor{
		Label:         "surface_view",
		Format:        t.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create surface view: %w", err)
	}
	return &textureView{raw: raw, device: t.device}, nil
}

type textureView struct {
	raw    hal.TextureView
	device *device
}

func (v *textureView) Release() {
	if v.raw != nil {
		v.device.raw.DestroyTextureView(v.raw)
		v.raw = nil
	}
}

// surfaceError maps hal surface errors onto the gpucore sentinels.
func surfaceError(err error) error {
	switch {
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return fmt.Errorf("%w: %w", gpucore.ErrSurfaceOutdated, err)
	case errors.Is(err, hal.ErrSurfaceLost):
		return fmt.Errorf("%w: %w", gpucore.ErrSurfaceLost, err)
	case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady):
		return fmt.Errorf("%w: %w", gpucore.ErrSurfaceTimeout, err)
	default:
		return err
	}
}
