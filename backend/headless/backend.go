// Package headless provides a GPU backend that renders nothing and records
// everything.
//
// The headless backend implements the full [gpucore] contract in memory: it
// enforces surface configuration rules (no zero sizes, no reconfigure while
// a texture is acquired, one texture at a time), checks that pipelines match
// the attachment format, and records every submitted pass and presented
// frame in a [Recorder]. Failures such as an outdated or lost surface can be
// injected with [Recorder.FailAcquire].
//
// It is registered under the name "headless" and is the lowest priority
// backend. It is used by tests and by cmd/frameloop -backend headless.
package headless

import (
	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

// init registers the headless backend on package import.
func init() {
	backend.Register(backend.BackendHeadless, func() backend.Backend {
		return New(DefaultConfig())
	})
}

// AdapterConfig describes one simulated adapter.
type AdapterConfig struct {
	Info gpucore.AdapterInfo

	// Capabilities is what the adapter reports for every headless surface.
	Capabilities gpucore.SurfaceCapabilities

	// Features is the set of features the adapter can enable.
	Features gputypes.Features

	// RefuseDevice makes RequestDevice fail.
	RefuseDevice bool
}

// Config configures the simulated environment.
type Config struct {
	Adapters []AdapterConfig

	// Platforms lists the window platforms CreateSurface accepts.
	// Empty accepts every platform.
	Platforms []gpucore.Platform
}

// DefaultConfig returns one discrete adapter that supports a linear and an
// sRGB BGRA format, Fifo/Mailbox/Immediate presentation and opaque alpha.
func DefaultConfig() Config {
	return Config{
		Adapters: []AdapterConfig{DefaultAdapter()},
	}
}

// DefaultAdapter returns the adapter used by DefaultConfig.
func DefaultAdapter() AdapterConfig {
	return AdapterConfig{
		Info: gpucore.AdapterInfo{
			Name:       "Headless GPU",
			Vendor:     "gogpu",
			DeviceType: gpucore.DeviceTypeDiscreteGPU,
			Backend:    "Headless",
		},
		Capabilities: gpucore.SurfaceCapabilities{
			Formats: []gputypes.TextureFormat{
				gputypes.TextureFormatBGRA8Unorm,
				gputypes.TextureFormatBGRA8UnormSrgb,
			},
			PresentModes: []gpucore.PresentMode{
				gpucore.PresentModeFifo,
				gpucore.PresentModeMailbox,
				gpucore.PresentModeImmediate,
			},
			AlphaModes: []gpucore.CompositeAlphaMode{
				gpucore.CompositeAlphaModeOpaque,
				gpucore.CompositeAlphaModePreMultiplied,
			},
		},
	}
}

// Backend is the headless backend. It implements [backend.Backend].
type Backend struct {
	cfg Config
	rec *Recorder
}

// New creates a headless backend. Every instance it creates shares one
// [Recorder].
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg, rec: newRecorder()}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendHeadless
}

// CreateInstance creates a new simulated instance.
func (b *Backend) CreateInstance() (gpucore.Instance, error) {
	b.rec.track(kindInstance, +1)
	return &instance{cfg: b.cfg, rec: b.rec}, nil
}

// Recorder returns the recorder shared by all instances of b.
func (b *Backend) Recorder() *Recorder {
	return b.rec
}
