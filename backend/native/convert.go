// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frameloop/gpucore"
)

var presentModes = []struct {
	core gpucore.PresentMode
	hal  hal.PresentMode
}{
	{gpucore.PresentModeFifo, hal.PresentModeFifo},
	{gpucore.PresentModeFifoRelaxed, hal.PresentModeFifoRelaxed},
	{gpucore.PresentModeImmediate, hal.PresentModeImmediate},
	{gpucore.PresentModeMailbox, hal.PresentModeMailbox},
}

var alphaModes = []struct {
	core gpucore.CompositeAlphaMode
	hal  hal.CompositeAlphaMode
}{
	{gpucore.CompositeAlphaModeOpaque, hal.CompositeAlphaModeOpaque},
	{gpucore.CompositeAlphaModePreMultiplied, hal.CompositeAlphaModePremultiplied},
	{gpucore.CompositeAlphaModePostMultiplied, hal.CompositeAlphaModeUnpremultiplied},
	{gpucore.CompositeAlphaModeInherit, hal.CompositeAlphaModeInherit},
}

func presentModeFromHAL(m hal.PresentMode) gpucore.PresentMode {
	for _, p := range presentModes {
		if p.hal == m {
			return p.core
		}
	}
	return gpucore.PresentModeUndefined
}

// presentModeToHAL maps m to hal, falling back to Fifo which every
// surface supports.
func presentModeToHAL(m gpucore.PresentMode) hal.PresentMode {
	for _, p := range presentModes {
		if p.core == m {
			return p.hal
		}
	}
	return hal.PresentModeFifo
}

func alphaModeFromHAL(m hal.CompositeAlphaMode) gpucore.CompositeAlphaMode {
	for _, a := range alphaModes {
		if a.hal == m {
			return a.core
		}
	}
	return gpucore.CompositeAlphaModeUndefined
}

func alphaModeToHAL(m gpucore.CompositeAlphaMode) hal.CompositeAlphaMode {
	for _, a := range alphaModes {
		if a.core == m {
			return a.hal
		}
	}
	return hal.CompositeAlphaModeOpaque
}

func deviceType(t gputypes.DeviceType) gpucore.DeviceType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucore.DeviceTypeDiscreteGPU
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucore.DeviceTypeIntegratedGPU
	case gputypes.DeviceTypeVirtualGPU:
		return gpucore.DeviceTypeVirtualGPU
	case gputypes.DeviceTypeCPU:
		return gpucore.DeviceTypeCPU
	default:
		return gpucore.DeviceTypeOther
	}
}
