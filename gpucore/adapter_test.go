package gpucore

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

type fakeAdapter struct {
	name string
	kind DeviceType
	caps SurfaceCapabilities
}

func (a *fakeAdapter) Info() AdapterInfo {
	return AdapterInfo{Name: a.name, DeviceType: a.kind, Backend: "fake"}
}

func (a *fakeAdapter) SurfaceCapabilities(Surface) SurfaceCapabilities { return a.caps }

func (a *fakeAdapter) RequestDevice(DeviceDescriptor) (Device, Queue, error) {
	return nil, nil, errors.New("fake: no device")
}

func (a *fakeAdapter) Release() {}

var presentable = SurfaceCapabilities{
	Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8UnormSrgb},
	PresentModes: []PresentMode{PresentModeFifo},
	AlphaModes:   []CompositeAlphaMode{CompositeAlphaModeOpaque},
}

func TestSelectAdapter(t *testing.T) {
	integrated := &fakeAdapter{name: "igpu", kind: DeviceTypeIntegratedGPU, caps: presentable}
	discrete := &fakeAdapter{name: "dgpu", kind: DeviceTypeDiscreteGPU, caps: presentable}
	virtual := &fakeAdapter{name: "vgpu", kind: DeviceTypeVirtualGPU, caps: presentable}
	software := &fakeAdapter{name: "llvmpipe", kind: DeviceTypeCPU, caps: presentable}
	blind := &fakeAdapter{name: "blind", kind: DeviceTypeDiscreteGPU}

	tests := []struct {
		name     string
		adapters []Adapter
		opts     AdapterOptions
		want     string
		wantErr  error
	}{
		{"high performance prefers discrete", []Adapter{integrated, discrete}, AdapterOptions{PowerPreference: PowerPreferenceHighPerformance}, "dgpu", nil},
		{"low power prefers integrated", []Adapter{discrete, integrated}, AdapterOptions{PowerPreference: PowerPreferenceLowPower}, "igpu", nil},
		{"secondary type before others", []Adapter{virtual, integrated}, AdapterOptions{PowerPreference: PowerPreferenceHighPerformance}, "igpu", nil},
		{"no preference keeps order", []Adapter{virtual, discrete}, AdapterOptions{PowerPreference: PowerPreferenceNone}, "vgpu", nil},
		{"skips incompatible", []Adapter{blind, integrated}, AdapterOptions{}, "igpu", nil},
		{"skips software", []Adapter{software, virtual}, AdapterOptions{}, "vgpu", nil},
		{"software allowed by fallback", []Adapter{software}, AdapterOptions{ForceFallbackAdapter: true}, "llvmpipe", nil},
		{"only software", []Adapter{software}, AdapterOptions{}, "", ErrNoAdapter},
		{"none", nil, AdapterOptions{}, "", ErrNoAdapter},
		{"nil entries ignored", []Adapter{nil, discrete}, AdapterOptions{}, "dgpu", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, caps, err := SelectAdapter(tt.adapters, nil, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectAdapter() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if got != nil || !caps.Empty() {
					t.Errorf("SelectAdapter() = %v, %+v on error", got, caps)
				}
				return
			}
			if got.Info().Name != tt.want {
				t.Errorf("SelectAdapter() = %s, want %s", got.Info().Name, tt.want)
			}
			if caps.Empty() {
				t.Error("capabilities of selected adapter are empty")
			}
		})
	}
}

func TestIsSurfaceRecoverable(t *testing.T) {
	if !IsSurfaceRecoverable(ErrSurfaceOutdated) || !IsSurfaceRecoverable(ErrSurfaceLost) {
		t.Error("outdated and lost should be recoverable")
	}
	if IsSurfaceRecoverable(ErrSurfaceTimeout) {
		t.Error("timeout should not be recoverable")
	}
	if IsSurfaceRecoverable(errors.New("device lost")) {
		t.Error("unrelated error reported recoverable")
	}
}
