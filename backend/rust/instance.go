//go:build rust

package rust

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/gpucore"
)

type instance struct {
	raw *wgpu.Instance
}

func (i *instance) CreateSurface(w gpucore.NativeWindow) (gpucore.Surface, error) {
	if w.Window == 0 {
		return nil, fmt.Errorf("rust: %w: null window handle", gpucore.ErrUnsupportedWindow)
	}
	desc, err := surfaceDescriptor(w)
	if err != nil {
		return nil, err
	}
	raw := i.raw.CreateSurface(desc)
	if raw == nil {
		return nil, fmt.Errorf("rust: create surface for %s window failed", w.Platform)
	}
	return &surface{raw: raw}, nil
}

// EnumerateAdapters asks wgpu-native for its preferred adapter.
func (i *instance) EnumerateAdapters(opts gpucore.AdapterOptions) ([]gpucore.Adapter, error) {
	req := &wgpu.RequestAdapterOptions{
		PowerPreference:      powerPreference(opts.PowerPreference),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}
	if s, ok := opts.CompatibleSurface.(*surface); ok {
		req.CompatibleSurface = s.raw
	}
	raw, err := i.raw.RequestAdapter(req)
	if err != nil {
		return nil, fmt.Errorf("rust: request adapter: %w", err)
	}
	info := raw.GetInfo()
	return []gpucore.Adapter{&adapter{
		raw: raw,
		info: gpucore.AdapterInfo{
			Name:       info.Name,
			DeviceType: deviceType(info.AdapterType),
			Backend:    fmt.Sprint(info.BackendType),
		},
	}}, nil
}

func (i *instance) Release() {
	if i.raw != nil {
		i.raw.Release()
		i.raw = nil
	}
}

type adapter struct {
	raw  *wgpu.Adapter
	info gpucore.AdapterInfo
}

func (a *adapter) Info() gpucore.AdapterInfo { return a.info }

func (a *adapter) SurfaceCapabilities(s gpucore.Surface) gpucore.SurfaceCapabilities {
	ss, ok := s.(*surface)
	if !ok {
		return gpucore.SurfaceCapabilities{}
	}
	caps := ss.raw.GetCapabilities(a.raw)
	var out gpucore.SurfaceCapabilities
	for _, f := range caps.Formats {
		if tf, ok := formatFromWGPU(f); ok {
			out.Formats = append(out.Formats, tf)
		}
	}
	for _, m := range caps.PresentModes {
		if pm := presentModeFromWGPU(m); pm != gpucore.PresentModeUndefined {
			out.PresentModes = append(out.PresentModes, pm)
		}
	}
	for _, m := range caps.AlphaModes {
		if am := alphaModeFromWGPU(m); am != gpucore.CompositeAlphaModeUndefined {
			out.AlphaModes = append(out.AlphaModes, am)
		}
	}
	return out
}

// RequestDevice opens a device with the WebGPU default limits. Required
// features and limits beyond the defaults are not forwarded.
func (a *adapter) RequestDevice(desc gpucore.DeviceDescriptor) (gpucore.Device, gpucore.Queue, error) {
	limits := wgpu.DefaultLimits()
	raw, err := a.raw.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          desc.Label,
		RequiredLimits: &wgpu.RequiredLimits{Limits: limits},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rust: request device %q: %w", desc.Label, err)
	}
	d := &device{raw: raw, adapter: a.raw}
	return d, &queue{raw: raw.GetQueue()}, nil
}

func (a *adapter) Release() {
	if a.raw != nil {
		a.raw.Release()
		a.raw = nil
	}
}

type surface struct {
	raw *wgpu.Surface
}

func (s *surface) Configure(dev gpucore.Device, cfg gpucore.SurfaceConfiguration) error {
	d, ok := dev.(*device)
	if !ok {
		return ErrForeignObject
	}
	format, ok := formatToWGPU(cfg.Format)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, cfg.Format)
	}
	s.raw.Configure(d.adapter, d.raw, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: presentModeToWGPU(cfg.PresentMode),
		AlphaMode:   alphaModeToWGPU(cfg.AlphaMode),
	})
	return nil
}

// Unconfigure is a no-op. wgpu-native replaces the configuration on the
// next Configure and drops it on Release.
func (s *surface) Unconfigure(gpucore.Device) {}

func (s *surface) AcquireTexture() (gpucore.SurfaceTexture, error) {
	raw, err := s.raw.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("rust: acquire: %w", surfaceError(err))
	}
	return &surfaceTexture{raw: raw}, nil
}

func (s *surface) DiscardTexture(tex gpucore.SurfaceTexture) {
	if t, ok := tex.(*surfaceTexture); ok && t.raw != nil {
		t.raw.Release()
		t.raw = nil
	}
}

func (s *surface) Release() {
	if s.raw != nil {
		s.raw.Release()
		s.raw = nil
	}
}

type surfaceTexture struct {
	raw *wgpu.Texture
}

func (t *surfaceTexture) CreateView() (gpucore.TextureView, error) {
	raw, err := t.raw.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("rust: create surface view: %w", err)
	}
	return &textureView{raw: raw}, nil
}

type textureView struct {
	raw *wgpu.TextureView
}

func (v *textureView) Release() {
	if v.raw != nil {
		v.raw.Release()
		v.raw = nil
	}
}
