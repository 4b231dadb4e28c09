// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendNative) {
		t.Fatal("native backend not registered")
	}
	if got := New().Name(); got != backend.BackendNative {
		t.Errorf("Name() = %q", got)
	}
}

func TestPresentModeConversion(t *testing.T) {
	for _, p := range presentModes {
		if got := presentModeFromHAL(presentModeToHAL(p.core)); got != p.core {
			t.Errorf("round trip of %s = %s", p.core, got)
		}
	}
	if got := presentModeToHAL(gpucore.PresentModeUndefined); presentModeFromHAL(got) != gpucore.PresentModeFifo {
		t.Errorf("undefined present mode maps to %v, want fifo", got)
	}
}

func TestAlphaModeConversion(t *testing.T) {
	for _, a := range alphaModes {
		if got := alphaModeFromHAL(alphaModeToHAL(a.core)); got != a.core {
			t.Errorf("round trip of %s = %s", a.core, got)
		}
	}
	if got := alphaModeToHAL(gpucore.CompositeAlphaModeAuto); alphaModeFromHAL(got) != gpucore.CompositeAlphaModeOpaque {
		t.Errorf("auto alpha mode maps to %v, want opaque", got)
	}
}

func TestDeviceType(t *testing.T) {
	tests := []struct {
		in   gputypes.DeviceType
		want gpucore.DeviceType
	}{
		{gputypes.DeviceTypeDiscreteGPU, gpucore.DeviceTypeDiscreteGPU},
		{gputypes.DeviceTypeIntegratedGPU, gpucore.DeviceTypeIntegratedGPU},
		{gputypes.DeviceTypeCPU, gpucore.DeviceTypeCPU},
	}
	for _, tt := range tests {
		if got := deviceType(tt.in); got != tt.want {
			t.Errorf("deviceType(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCreateSurfaceRejectsHeadlessWindows(t *testing.T) {
	inst := &instance{}
	for _, w := range []gpucore.NativeWindow{
		{Platform: gpucore.PlatformHeadless},
		{Platform: gpucore.PlatformUnknown, Window: 1},
		{Platform: gpucore.PlatformX11},
	} {
		if _, err := inst.CreateSurface(w); !errors.Is(err, gpucore.ErrUnsupportedWindow) {
			t.Errorf("CreateSurface(%+v) error = %v, want ErrUnsupportedWindow", w, err)
		}
	}
}

func TestForeignObjects(t *testing.T) {
	q := &queue{}
	if err := q.Present(nil, nil); !errors.Is(err, ErrForeignObject) {
		t.Errorf("Present(nil, nil) error = %v", err)
	}
	s := &surface{}
	if err := s.Configure(nil, gpucore.SurfaceConfiguration{}); !errors.Is(err, ErrForeignObject) {
		t.Errorf("Configure(nil) error = %v", err)
	}
	d := &device{}
	if _, err := d.CreateRenderPipeline(gpucore.RenderPipelineDescriptor{PolygonMode: gpucore.PolygonModeLine}); !errors.Is(err, ErrUnsupportedPolygonMode) {
		t.Errorf("CreateRenderPipeline(line) error = %v", err)
	}
}

func TestSurfaceError(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{hal.ErrSurfaceOutdated, gpucore.ErrSurfaceOutdated},
		{hal.ErrSurfaceLost, gpucore.ErrSurfaceLost},
		{hal.ErrTimeout, gpucore.ErrSurfaceTimeout},
		{hal.ErrNotReady, gpucore.ErrSurfaceTimeout},
	}
	for _, tt := range tests {
		err := surfaceError(tt.err)
		if !errors.Is(err, tt.want) || !errors.Is(err, tt.err) {
			t.Errorf("surfaceError(%v) = %v, want %v", tt.err, err, tt.want)
		}
	}
	if err := surfaceError(hal.ErrTimeout); gpucore.IsSurfaceRecoverable(err) {
		t.Error("acquire timeout reported as recoverable")
	}
	plain := errors.New("out of memory")
	if err := surfaceError(plain); err != plain {
		t.Errorf("surfaceError(plain) = %v", err)
	}
}

func TestWaitCompleted(t *testing.T) {
	var completed atomic.Uint64
	poll := func() uint64 { return completed.Add(1) }
	if err := waitCompleted(poll, 3, time.Second); err != nil {
		t.Fatalf("waitCompleted: %v", err)
	}
	if got := completed.Load(); got != 3 {
		t.Errorf("polled until %d, want 3", got)
	}

	stuck := func() uint64 { return 1 }
	err := waitCompleted(stuck, 2, time.Millisecond)
	if !errors.Is(err, ErrSubmitTimeout) {
		t.Errorf("waitCompleted(stuck) = %v, want ErrSubmitTimeout", err)
	}
}

func TestShaderSource(t *testing.T) {
	words := []uint32{0x07230203, 0x00010000}
	src := shaderSource(gpucore.ShaderModuleDescriptor{WGSL: "fn main() {}", SPIRV: words})
	if src.WGSL != "" || len(src.SPIRV) != 2 {
		t.Errorf("shaderSource(SPIR-V) = %+v, want SPIR-V only", src)
	}
	src = shaderSource(gpucore.ShaderModuleDescriptor{WGSL: "fn main() {}"})
	if src.WGSL != "fn main() {}" || src.SPIRV != nil {
		t.Errorf("shaderSource(WGSL) = %+v, want WGSL", src)
	}
}
