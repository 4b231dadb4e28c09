// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"testing"

	"github.com/gogpu/frameloop/backend/headless"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

type testWindow struct {
	platform gpucore.Platform
	err      error
}

func (w testWindow) NativeWindow() (gpucore.NativeWindow, error) {
	if w.err != nil {
		return gpucore.NativeWindow{}, w.err
	}
	return gpucore.NativeWindow{Platform: w.platform}, nil
}

var headlessWindow = testWindow{platform: gpucore.PlatformHeadless}

func adapterOf(name string, kind gpucore.DeviceType) headless.AdapterConfig {
	ac := headless.DefaultAdapter()
	ac.Info.Name = name
	ac.Info.DeviceType = kind
	return ac
}

func TestInitialize(t *testing.T) {
	b := headless.New(headless.DefaultConfig())
	c, err := Initialize(b, headlessWindow, Options{Label: "test"})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if c.Instance == nil || c.Surface == nil || c.Adapter == nil || c.Device == nil || c.Queue == nil {
		t.Fatalf("Initialize() returned incomplete context: %+v", c)
	}
	if c.Capabilities.Empty() {
		t.Error("Capabilities empty")
	}
	if got := c.AdapterInfo().Name; got != "Headless GPU" {
		t.Errorf("AdapterInfo().Name = %q", got)
	}

	c.Release()
	c.Release()
	if leaks := b.Recorder().Leaks(); len(leaks) != 0 {
		t.Errorf("Leaks() after Release = %v", leaks)
	}
}

func TestInitializeSelectsHighPerformance(t *testing.T) {
	b := headless.New(headless.Config{Adapters: []headless.AdapterConfig{
		adapterOf("cpu", gpucore.DeviceTypeCPU),
		adapterOf("igpu", gpucore.DeviceTypeIntegratedGPU),
		adapterOf("dgpu", gpucore.DeviceTypeDiscreteGPU),
	}})
	c, err := Initialize(b, headlessWindow, Options{})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer c.Release()
	if got := c.AdapterInfo().Name; got != "dgpu" {
		t.Errorf("selected %q, want dgpu", got)
	}
}

func TestInitializeLowPower(t *testing.T) {
	b := headless.New(headless.Config{Adapters: []headless.AdapterConfig{
		adapterOf("dgpu", gpucore.DeviceTypeDiscreteGPU),
		adapterOf("igpu", gpucore.DeviceTypeIntegratedGPU),
	}})
	c, err := Initialize(b, headlessWindow, Options{PowerPreference: gpucore.PowerPreferenceLowPower})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer c.Release()
	if got := c.AdapterInfo().Name; got != "igpu" {
		t.Errorf("selected %q, want igpu", got)
	}
}

func TestInitializeFailures(t *testing.T) {
	noFormats := headless.DefaultAdapter()
	noFormats.Capabilities.Formats = nil
	refusing := headless.DefaultAdapter()
	refusing.RefuseDevice = true
	windowErr := errors.New("no window")

	tests := []struct {
		name string
		cfg  headless.Config
		win  gpucore.WindowHandle
		opts Options
		want error
	}{
		{
			name: "no adapters",
			cfg:  headless.Config{},
			win:  headlessWindow,
			want: ErrNoAdapter,
		},
		{
			name: "software adapter only",
			cfg:  headless.Config{Adapters: []headless.AdapterConfig{adapterOf("llvmpipe", gpucore.DeviceTypeCPU)}},
			win:  headlessWindow,
			want: ErrNoAdapter,
		},
		{
			name: "adapter cannot present",
			cfg:  headless.Config{Adapters: []headless.AdapterConfig{noFormats}},
			win:  headlessWindow,
			want: ErrNoAdapter,
		},
		{
			name: "device refused",
			cfg:  headless.Config{Adapters: []headless.AdapterConfig{refusing}},
			win:  headlessWindow,
			want: ErrDeviceRefused,
		},
		{
			name: "unsupported feature",
			cfg:  headless.DefaultConfig(),
			win:  headlessWindow,
			opts: Options{Features: gputypes.Features(1)},
			want: ErrDeviceRefused,
		},
		{
			name: "unsupported platform",
			cfg: headless.Config{
				Adapters:  []headless.AdapterConfig{headless.DefaultAdapter()},
				Platforms: []gpucore.Platform{gpucore.PlatformHeadless},
			},
			win:  testWindow{platform: gpucore.PlatformCocoa},
			want: gpucore.ErrUnsupportedWindow,
		},
		{
			name: "window error",
			cfg:  headless.DefaultConfig(),
			win:  testWindow{err: windowErr},
			want: windowErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := headless.New(tt.cfg)
			c, err := Initialize(b, tt.win, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Initialize() error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("Initialize() returned a context on failure")
			}
			if leaks := b.Recorder().Leaks(); len(leaks) != 0 {
				t.Errorf("partial startup leaked %v", leaks)
			}
		})
	}
}

func TestInitializeNilBackend(t *testing.T) {
	if _, err := Initialize(nil, headlessWindow, Options{}); !errors.Is(err, ErrNilBackend) {
		t.Errorf("Initialize(nil) error = %v, want ErrNilBackend", err)
	}
}
