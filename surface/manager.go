// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/internal/logging"
	"github.com/gogpu/gputypes"
)

// Surface manager errors.
var (
	// ErrNoFormats is returned when the capabilities list no format.
	ErrNoFormats = errors.New("surface: no supported formats")

	// ErrFrameInFlight is returned when the surface is reconfigured or
	// acquired while a texture is still acquired.
	ErrFrameInFlight = errors.New("surface: frame in flight")

	// ErrNotConfigured is returned when acquiring before any non-zero size
	// was applied.
	ErrNotConfigured = errors.New("surface: not configured")

	// ErrForeignTexture is returned when presenting a texture that is not
	// the one currently acquired.
	ErrForeignTexture = errors.New("surface: texture not acquired by this manager")
)

// Options configures a Manager.
type Options struct {
	Policy Policy
	Logger *slog.Logger
}

// Manager keeps one surface configured to the window size and guards
// exclusive access to it.
//
// Manager is not safe for concurrent use. All calls come from the thread
// that owns the window.
type Manager struct {
	device  gpucore.Device
	surface gpucore.Surface
	log     *slog.Logger

	config     gpucore.SurfaceConfiguration
	configured bool
	inFlight   gpucore.SurfaceTexture
}

// Configure chooses format and modes from caps according to opts.Policy and
// applies them at width x height.
//
// A zero or negative size yields a Manager that is not yet configured; the
// format and modes are still chosen and Config reports them with a zero
// size. The first non-degenerate Reconfigure applies them.
func Configure(dev gpucore.Device, surf gpucore.Surface, width, height int,
	caps gpucore.SurfaceCapabilities, opts Options) (*Manager, error) {
	if caps.Empty() {
		return nil, ErrNoFormats
	}
	log := logging.OrNop(opts.Logger)
	choice := opts.Policy.Choose(caps)
	if len(choice.Fallbacks) > 0 {
		log.Warn("surface: requested settings not supported, using surface defaults",
			"settings", choice.Fallbacks)
	}

	m := &Manager{
		device:  dev,
		surface: surf,
		log:     log,
		config: gpucore.SurfaceConfiguration{
			Usage:       gputypes.TextureUsageRenderAttachment,
			Format:      choice.Format,
			PresentMode: choice.PresentMode,
			AlphaMode:   choice.AlphaMode,
		},
	}

	if !validSize(width, height) {
		log.Info("surface: window has no area, deferring configuration",
			"width", width, "height", height)
		return m, nil
	}
	if err := m.apply(uint32(width), uint32(height)); err != nil {
		return nil, err
	}
	return m, nil
}

// Config returns the current configuration. Width and Height are the last
// applied non-zero size, or zero if none was applied yet.
func (m *Manager) Config() gpucore.SurfaceConfiguration {
	return m.config
}

// Configured reports whether a non-zero size has been applied.
func (m *Manager) Configured() bool {
	return m.configured
}

// InFlight reports whether a texture is acquired and not yet presented.
func (m *Manager) InFlight() bool {
	return m.inFlight != nil
}

// Reconfigure applies a new window size.
//
// A zero or negative dimension is ignored and the configuration is left
// unchanged. The current size is a no-op. Returns [ErrFrameInFlight] if a
// texture is acquired.
func (m *Manager) Reconfigure(width, height int) error {
	if !validSize(width, height) {
		m.log.Debug("surface: ignoring degenerate size", "width", width, "height", height)
		return nil
	}
	if m.inFlight != nil {
		return ErrFrameInFlight
	}
	w, h := uint32(width), uint32(height)
	if m.configured && m.config.Width == w && m.config.Height == h {
		return nil
	}
	return m.apply(w, h)
}

// Recover re-applies the current configuration after the surface reported
// itself outdated or lost.
func (m *Manager) Recover() error {
	if m.inFlight != nil {
		return ErrFrameInFlight
	}
	if !m.configured {
		return ErrNotConfigured
	}
	m.log.Warn("surface: reconfiguring after surface loss",
		"width", m.config.Width, "height", m.config.Height)
	return m.apply(m.config.Width, m.config.Height)
}

func (m *Manager) apply(w, h uint32) error {
	cfg := m.config
	cfg.Width, cfg.Height = w, h
	if err := m.surface.Configure(m.device, cfg); err != nil {
		return fmt.Errorf("surface: configure %dx%d: %w", w, h, err)
	}
	m.config = cfg
	m.configured = true
	m.log.Debug("surface: configured",
		"width", w, "height", h,
		"format", gpucore.FormatName(cfg.Format),
		"present_mode", cfg.PresentMode.String(),
		"alpha_mode", cfg.AlphaMode.String())
	return nil
}

// Acquire takes the next texture. Only one texture may be acquired at a
// time.
func (m *Manager) Acquire() (gpucore.SurfaceTexture, error) {
	if !m.configured {
		return nil, ErrNotConfigured
	}
	if m.inFlight != nil {
		return nil, ErrFrameInFlight
	}
	tex, err := m.surface.AcquireTexture()
	if err != nil {
		return nil, err
	}
	m.inFlight = tex
	return tex, nil
}

// Present queues the acquired texture for display and ends the frame.
func (m *Manager) Present(q gpucore.Queue, tex gpucore.SurfaceTexture) error {
	if tex == nil || tex != m.inFlight {
		return ErrForeignTexture
	}
	m.inFlight = nil
	if err := q.Present(m.surface, tex); err != nil {
		return fmt.Errorf("surface: present: %w", err)
	}
	return nil
}

// Discard returns the acquired texture without presenting it and ends the
// frame.
func (m *Manager) Discard(tex gpucore.SurfaceTexture) {
	if tex == nil || tex != m.inFlight {
		return
	}
	m.inFlight = nil
	m.surface.DiscardTexture(tex)
}

// Release discards any acquired texture and unconfigures the surface. The
// surface itself is owned by the device context.
func (m *Manager) Release() {
	if m.inFlight != nil {
		m.Discard(m.inFlight)
	}
	if m.configured {
		m.surface.Unconfigure(m.device)
		m.configured = false
	}
}

func validSize(width, height int) bool {
	return width > 0 && height > 0
}
