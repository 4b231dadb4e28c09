// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/frameloop/backend/headless"
	"github.com/gogpu/frameloop/device"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

type testWindow struct{}

func (testWindow) NativeWindow() (gpucore.NativeWindow, error) {
	return gpucore.NativeWindow{Platform: gpucore.PlatformHeadless}, nil
}

func newContext(t *testing.T) (*device.Context, *headless.Backend) {
	t.Helper()
	b := headless.New(headless.DefaultConfig())
	c, err := device.Initialize(b, testWindow{}, device.Options{})
	if err != nil {
		t.Fatalf("device.Initialize() error = %v", err)
	}
	t.Cleanup(c.Release)
	return c, b
}

func newManager(t *testing.T, w, h int) (*Manager, *device.Context, *headless.Backend) {
	t.Helper()
	c, b := newContext(t)
	m, err := Configure(c.Device, c.Surface, w, h, c.Capabilities, Options{Policy: DefaultPolicy()})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	t.Cleanup(m.Release)
	return m, c, b
}

func TestConfigureDefaults(t *testing.T) {
	m, _, b := newManager(t, 800, 600)

	cfg := m.Config()
	want := gpucore.SurfaceConfiguration{
		Usage:       gputypes.TextureUsageRenderAttachment,
		Format:      gputypes.TextureFormatBGRA8UnormSrgb,
		Width:       800,
		Height:      600,
		PresentMode: gpucore.PresentModeFifo,
		AlphaMode:   gpucore.CompositeAlphaModeOpaque,
	}
	if cfg != want {
		t.Errorf("Config() = %+v, want %+v", cfg, want)
	}
	if !m.Configured() {
		t.Error("Configured() = false")
	}
	if got := b.Recorder().Configurations(); len(got) != 1 || got[0] != want {
		t.Errorf("applied configurations = %+v", got)
	}
}

func TestConfigureEmptyCapabilities(t *testing.T) {
	c, _ := newContext(t)
	_, err := Configure(c.Device, c.Surface, 10, 10, gpucore.SurfaceCapabilities{}, Options{})
	if !errors.Is(err, ErrNoFormats) {
		t.Errorf("Configure() error = %v, want ErrNoFormats", err)
	}
}

func TestResizeSequence(t *testing.T) {
	m, _, b := newManager(t, 800, 600)

	if err := m.Reconfigure(400, 300); err != nil {
		t.Fatalf("Reconfigure(400, 300) error = %v", err)
	}
	before := m.Config()
	if before.Width != 400 || before.Height != 300 {
		t.Fatalf("Config() size = %dx%d, want 400x300", before.Width, before.Height)
	}

	if err := m.Reconfigure(0, 10); err != nil {
		t.Fatalf("Reconfigure(0, 10) error = %v", err)
	}
	if after := m.Config(); after != before {
		t.Errorf("Reconfigure(0, 10) changed config: %+v -> %+v", before, after)
	}
	if n := len(b.Recorder().Configurations()); n != 2 {
		t.Errorf("applied %d configurations, want 2", n)
	}
}

func TestReconfigureDegenerateIsNoop(t *testing.T) {
	sizes := [][2]int{{0, 0}, {0, 10}, {10, 0}, {-1, 5}, {5, -1}}
	for _, sz := range sizes {
		m, _, b := newManager(t, 640, 480)
		before := m.Config()
		if err := m.Reconfigure(sz[0], sz[1]); err != nil {
			t.Errorf("Reconfigure(%d, %d) error = %v", sz[0], sz[1], err)
		}
		if after := m.Config(); after != before {
			t.Errorf("Reconfigure(%d, %d) changed config", sz[0], sz[1])
		}
		if n := len(b.Recorder().Configurations()); n != 1 {
			t.Errorf("Reconfigure(%d, %d) applied a configuration", sz[0], sz[1])
		}
	}
}

func TestReconfigureSameSize(t *testing.T) {
	m, _, b := newManager(t, 640, 480)
	if err := m.Reconfigure(640, 480); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if n := len(b.Recorder().Configurations()); n != 1 {
		t.Errorf("same-size Reconfigure applied %d configurations, want 1", n)
	}
}

func TestZeroSizeStartup(t *testing.T) {
	m, _, _ := newManager(t, 0, 0)
	if m.Configured() {
		t.Fatal("Configured() = true for zero-size window")
	}
	if cfg := m.Config(); cfg.Width != 0 || cfg.Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("Config() = %+v", cfg)
	}
	if _, err := m.Acquire(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Acquire() error = %v, want ErrNotConfigured", err)
	}
	if err := m.Recover(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Recover() error = %v, want ErrNotConfigured", err)
	}
	if err := m.Reconfigure(320, 200); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if !m.Configured() {
		t.Error("Configured() = false after first resize")
	}
}

func TestFrameInFlight(t *testing.T) {
	m, c, b := newManager(t, 100, 100)

	tex, err := m.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !m.InFlight() {
		t.Error("InFlight() = false after Acquire")
	}
	if err := m.Reconfigure(50, 50); !errors.Is(err, ErrFrameInFlight) {
		t.Errorf("Reconfigure() in flight error = %v, want ErrFrameInFlight", err)
	}
	if _, err := m.Acquire(); !errors.Is(err, ErrFrameInFlight) {
		t.Errorf("second Acquire() error = %v, want ErrFrameInFlight", err)
	}
	if err := m.Recover(); !errors.Is(err, ErrFrameInFlight) {
		t.Errorf("Recover() in flight error = %v, want ErrFrameInFlight", err)
	}

	if err := m.Present(c.Queue, tex); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if m.InFlight() {
		t.Error("InFlight() = true after Present")
	}
	if err := m.Reconfigure(50, 50); err != nil {
		t.Errorf("Reconfigure() after present error = %v", err)
	}
	if n := len(b.Recorder().Frames()); n != 1 {
		t.Errorf("presented %d frames, want 1", n)
	}
}

func TestDiscard(t *testing.T) {
	m, c, _ := newManager(t, 100, 100)
	tex, err := m.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	m.Discard(tex)
	if m.InFlight() {
		t.Error("InFlight() = true after Discard")
	}
	if err := m.Present(c.Queue, tex); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("Present() of discarded texture error = %v, want ErrForeignTexture", err)
	}
}

func TestRecover(t *testing.T) {
	m, _, b := newManager(t, 100, 80)
	if err := m.Recover(); err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	cfgs := b.Recorder().Configurations()
	if len(cfgs) != 2 || cfgs[1] != cfgs[0] {
		t.Errorf("Recover() applied %+v, want a copy of the first configuration", cfgs)
	}
}
