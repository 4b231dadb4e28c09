package headless

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

// Headless backend errors.
var (
	// ErrNotConfigured is returned when acquiring from an unconfigured surface.
	ErrNotConfigured = errors.New("headless: surface not configured")

	// ErrInvalidConfiguration is returned for zero sizes or unsupported
	// formats and modes.
	ErrInvalidConfiguration = errors.New("headless: invalid surface configuration")

	// ErrTextureAcquired is returned when acquiring or configuring while a
	// texture is still acquired.
	ErrTextureAcquired = errors.New("headless: surface texture already acquired")

	// ErrStaleTexture is returned when presenting a texture that does not
	// belong to the current configuration.
	ErrStaleTexture = errors.New("headless: stale surface texture")

	// ErrDeviceRefused is returned by RequestDevice on a refusing adapter.
	ErrDeviceRefused = errors.New("headless: device request refused")

	// ErrFormatMismatch is returned when a pipeline's target format differs
	// from the render pass attachment format.
	ErrFormatMismatch = errors.New("headless: pipeline format does not match attachment")

	// ErrDimensionMismatch is returned when an attachment's size differs
	// from the surface configuration at submit time.
	ErrDimensionMismatch = errors.New("headless: attachment size does not match surface")
)

type instance struct {
	cfg Config
	rec *Recorder
}

func (i *instance) CreateSurface(w gpucore.NativeWindow) (gpucore.Surface, error) {
	if len(i.cfg.Platforms) > 0 && !slices.Contains(i.cfg.Platforms, w.Platform) {
		return nil, fmt.Errorf("headless: %w: %s", gpucore.ErrUnsupportedWindow, w.Platform)
	}
	i.rec.track(kindSurface, +1)
	return &surface{rec: i.rec}, nil
}

func (i *instance) EnumerateAdapters(opts gpucore.AdapterOptions) ([]gpucore.Adapter, error) {
	out := make([]gpucore.Adapter, 0, len(i.cfg.Adapters))
	for _, ac := range i.cfg.Adapters {
		if opts.CompatibleSurface != nil && ac.Capabilities.Empty() {
			continue
		}
		i.rec.track(kindAdapter, +1)
		out = append(out, &adapter{cfg: ac, rec: i.rec})
	}
	return out, nil
}

func (i *instance) Release() {
	i.rec.track(kindInstance, -1)
}

type adapter struct {
	cfg      AdapterConfig
	rec      *Recorder
	released bool
}

func (a *adapter) Info() gpucore.AdapterInfo { return a.cfg.Info }

func (a *adapter) SurfaceCapabilities(s gpucore.Surface) gpucore.SurfaceCapabilities {
	if _, ok := s.(*surface); !ok {
		return gpucore.SurfaceCapabilities{}
	}
	c := a.cfg.Capabilities
	return gpucore.SurfaceCapabilities{
		Formats:      slices.Clone(c.Formats),
		PresentModes: slices.Clone(c.PresentModes),
		AlphaModes:   slices.Clone(c.AlphaModes),
	}
}

func (a *adapter) RequestDevice(desc gpucore.DeviceDescriptor) (gpucore.Device, gpucore.Queue, error) {
	if a.cfg.RefuseDevice {
		return nil, nil, fmt.Errorf("%w: %s", ErrDeviceRefused, a.cfg.Info.Name)
	}
	if missing := desc.RequiredFeatures &^ a.cfg.Features; missing != 0 {
		return nil, nil, fmt.Errorf("%w: unsupported features %#x", ErrDeviceRefused, uint64(missing))
	}
	a.rec.track(kindDevice, +1)
	d := &device{rec: a.rec, caps: a.cfg.Capabilities, label: desc.Label}
	return d, &queue{dev: d}, nil
}

func (a *adapter) Release() {
	if a.released {
		return
	}
	a.released = true
	a.rec.track(kindAdapter, -1)
}

type surface struct {
	rec *Recorder

	config     gpucore.SurfaceConfiguration
	configured bool
	generation uint64
	acquired   *texture
}

func (s *surface) Configure(dev gpucore.Device, cfg gpucore.SurfaceConfiguration) error {
	d, ok := dev.(*device)
	if !ok {
		return fmt.Errorf("%w: foreign device", ErrInvalidConfiguration)
	}
	if s.acquired != nil {
		return ErrTextureAcquired
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfiguration, cfg.Width, cfg.Height)
	}
	if !slices.Contains(d.caps.Formats, cfg.Format) {
		return fmt.Errorf("%w: format %s", ErrInvalidConfiguration, gpucore.FormatName(cfg.Format))
	}
	if !slices.Contains(d.caps.PresentModes, cfg.PresentMode) {
		return fmt.Errorf("%w: present mode %s", ErrInvalidConfiguration, cfg.PresentMode)
	}
	if !slices.Contains(d.caps.AlphaModes, cfg.AlphaMode) {
		return fmt.Errorf("%w: alpha mode %s", ErrInvalidConfiguration, cfg.AlphaMode)
	}
	if cfg.Usage&gputypes.TextureUsageRenderAttachment == 0 {
		return fmt.Errorf("%w: usage lacks render attachment", ErrInvalidConfiguration)
	}
	s.config = cfg
	s.configured = true
	s.generation++
	s.rec.configured(cfg)
	return nil
}

func (s *surface) Unconfigure(gpucore.Device) {
	s.configured = false
	s.generation++
}

func (s *surface) AcquireTexture() (gpucore.SurfaceTexture, error) {
	if err := s.rec.nextAcquireError(); err != nil {
		return nil, err
	}
	if !s.configured {
		return nil, ErrNotConfigured
	}
	if s.acquired != nil {
		return nil, ErrTextureAcquired
	}
	t := &texture{
		id:         s.rec.id(),
		surface:    s,
		generation: s.generation,
		width:      s.config.Width,
		height:     s.config.Height,
		format:     s.config.Format,
	}
	s.acquired = t
	return t, nil
}

func (s *surface) DiscardTexture(tex gpucore.SurfaceTexture) {
	t, ok := tex.(*texture)
	if !ok || s.acquired != t {
		return
	}
	s.acquired = nil
	s.rec.discarded(t)
}

func (s *surface) Release() {
	s.rec.track(kindSurface, -1)
}

// texture is an acquired surface texture.
type texture struct {
	id         uint64
	surface    *surface
	generation uint64
	width      uint32
	height     uint32
	format     gputypes.TextureFormat
}

func (t *texture) CreateView() (gpucore.TextureView, error) {
	if t.surface.acquired != t {
		return nil, ErrStaleTexture
	}
	t.surface.rec.track(kindView, +1)
	return &view{tex: t}, nil
}

type view struct {
	tex      *texture
	released bool
}

func (v *view) Release() {
	if v.released {
		return
	}
	v.released = true
	v.tex.surface.rec.track(kindView, -1)
}
