package frameloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/device"
	"github.com/gogpu/frameloop/event"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/pipeline"
	"github.com/gogpu/frameloop/render"
	"github.com/gogpu/frameloop/surface"
	"github.com/gogpu/frameloop/window"
)

// App errors.
var (
	// ErrClosed is returned when a closed App is used.
	ErrClosed = errors.New("frameloop: app closed")

	// ErrNilWindow is returned by New when no window is given.
	ErrNilWindow = errors.New("frameloop: nil window")
)

// App owns every GPU object used to present to one window: the device
// context, the surface manager, the pipeline and the frame renderer.
//
// App is the handler the event loop dispatches to. It is not safe for
// concurrent use; all calls come from the thread that owns the window.
type App struct {
	cfg Config
	log *slog.Logger
	win window.Window

	gpu      *device.Context
	surfaces *surface.Manager
	builder  *pipeline.Builder
	pipe     *pipeline.Pipeline
	renderer *render.FrameRenderer

	closed bool
}

var (
	_ event.Handler      = (*App)(nil)
	_ event.FrameCounter = (*App)(nil)
)

// New runs the startup sequence for win: instance, surface, adapter,
// device and queue, surface capabilities, surface configuration at the
// window's current size and pipeline build.
//
// Any failure releases what was created so far and returns a nil App.
// Errors wrap [device.ErrNoAdapter], [device.ErrDeviceRefused],
// [gpucore.ErrUnsupportedWindow], [pipeline.ErrInvalidShader] or
// [backend.ErrBackendNotAvailable].
func New(win window.Window, opts ...Option) (*App, error) {
	if win == nil {
		return nil, ErrNilWindow
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	b := cfg.backend
	if b == nil {
		var err error
		if b, err = backend.Lookup(cfg.Backend); err != nil {
			return nil, fmt.Errorf("frameloop: %w", err)
		}
	}

	a := &App{cfg: cfg, log: log, win: win}
	ok := false
	defer func() {
		if !ok {
			a.release()
		}
	}()

	var err error
	a.gpu, err = device.Initialize(b, win, device.Options{
		Label:           "frameloop",
		PowerPreference: cfg.PowerPreference,
		Features:        cfg.Features,
		Limits:          cfg.Limits,
		Logger:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("frameloop: %w", err)
	}

	width, height := win.Size()
	a.surfaces, err = surface.Configure(a.gpu.Device, a.gpu.Surface, width, height,
		a.gpu.Capabilities, surface.Options{Policy: cfg.Surface, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("frameloop: %w", err)
	}

	a.builder = pipeline.NewBuilder(a.gpu.Device, cfg.Pipeline, log)
	a.pipe, err = a.builder.Build(cfg.Shader, a.surfaces.Config().Format)
	if err != nil {
		return nil, fmt.Errorf("frameloop: %w", err)
	}

	a.renderer = render.New(a.surfaces, a.gpu.Device, a.gpu.Queue, render.Options{
		ClearColor:    cfg.ClearColor,
		VertexCount:   3,
		InstanceCount: 1,
		Label:         "frame",
		Logger:        log,
	})

	ok = true
	log.Info("frameloop: app ready",
		"backend", b.Name(),
		"adapter", a.gpu.AdapterInfo().Name,
		"format", gpucore.FormatName(a.surfaces.Config().Format),
		"width", width, "height", height)
	return a, nil
}

// Resize applies a new window size to the surface. Zero or negative sizes
// keep the previous configuration.
func (a *App) Resize(width, height int) error {
	if a.closed {
		return ErrClosed
	}
	return a.surfaces.Reconfigure(width, height)
}

// RenderFrame renders and presents one frame. If the surface format no
// longer matches the pipeline's output format the pipeline is rebuilt
// first.
func (a *App) RenderFrame() error {
	if a.closed {
		return ErrClosed
	}
	if want := a.surfaces.Config().Format; a.pipe.Format() != want {
		if err := a.rebuildPipeline(); err != nil {
			return err
		}
	}
	return a.renderer.RenderFrame(a.pipe)
}

func (a *App) rebuildPipeline() error {
	format := a.surfaces.Config().Format
	p, err := a.builder.Build(a.cfg.Shader, format)
	if err != nil {
		return fmt.Errorf("frameloop: rebuild pipeline: %w", err)
	}
	a.log.Info("frameloop: pipeline rebuilt",
		"from", gpucore.FormatName(a.pipe.Format()),
		"to", gpucore.FormatName(format))
	a.pipe.Release()
	a.pipe = p
	return nil
}

// Run dispatches events from src until the window is closed, ctx is
// cancelled, the frame budget is reached or a frame fails. A nil src uses
// the App's window. Errors returned by Run are fatal.
func (a *App) Run(ctx context.Context, src event.Source) error {
	if a.closed {
		return ErrClosed
	}
	if src == nil {
		src = a.win
	}
	d := event.NewDispatcher(a, src, event.Options{
		Continuous: a.cfg.Continuous,
		MaxFrames:  a.cfg.MaxFrames,
		Logger:     a.log,
	})
	// The first frame is drawn without waiting for the window to ask.
	src.RequestRedraw()

	err := event.Run(ctx, src, d)
	a.log.Info("frameloop: event loop finished",
		"frames", d.Frames(),
		"skipped", a.renderer.Stats().Skipped,
		"recoveries", a.renderer.Stats().Recoveries)
	return err
}

// Close releases GPU objects in reverse order of creation: pipeline,
// surface configuration, then device, adapter, surface and instance.
// The window is not closed. Close is idempotent.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.release()
	a.log.Debug("frameloop: app closed")
	return nil
}

func (a *App) release() {
	if a.pipe != nil {
		a.pipe.Release()
		a.pipe = nil
	}
	if a.surfaces != nil {
		a.surfaces.Release()
		a.surfaces = nil
	}
	if a.gpu != nil {
		a.gpu.Release()
		a.gpu = nil
	}
}

// SurfaceConfig returns the surface configuration in effect.
func (a *App) SurfaceConfig() gpucore.SurfaceConfiguration {
	if a.surfaces == nil {
		return gpucore.SurfaceConfiguration{}
	}
	return a.surfaces.Config()
}

// Pipeline returns the current render pipeline, or nil after Close.
func (a *App) Pipeline() *pipeline.Pipeline { return a.pipe }

// Stats returns frame counters.
func (a *App) Stats() render.Stats {
	if a.renderer == nil {
		return render.Stats{}
	}
	return a.renderer.Stats()
}

// PresentedFrames returns the number of frames presented so far.
func (a *App) PresentedFrames() uint64 {
	return a.Stats().Frames
}

// AdapterInfo describes the adapter in use.
func (a *App) AdapterInfo() gpucore.AdapterInfo {
	if a.gpu == nil {
		return gpucore.AdapterInfo{}
	}
	return a.gpu.AdapterInfo()
}

// Config returns the configuration the App was created with.
func (a *App) Config() Config { return a.cfg }
