// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"slices"
	"testing"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

func TestPolicyChoose(t *testing.T) {
	linearFirst := gpucore.SurfaceCapabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb},
		PresentModes: []gpucore.PresentMode{gpucore.PresentModeMailbox, gpucore.PresentModeFifo},
		AlphaModes:   []gpucore.CompositeAlphaMode{gpucore.CompositeAlphaModePreMultiplied, gpucore.CompositeAlphaModeOpaque},
	}
	linearOnly := gpucore.SurfaceCapabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm},
		PresentModes: []gpucore.PresentMode{gpucore.PresentModeFifo},
		AlphaModes:   []gpucore.CompositeAlphaMode{gpucore.CompositeAlphaModeOpaque},
	}

	tests := []struct {
		name      string
		policy    Policy
		caps      gpucore.SurfaceCapabilities
		want      Choice
		fallbacks []string
	}{
		{
			name:   "default prefers srgb, first modes",
			policy: DefaultPolicy(),
			caps:   linearFirst,
			want: Choice{
				Format:      gputypes.TextureFormatRGBA8UnormSrgb,
				PresentMode: gpucore.PresentModeMailbox,
				AlphaMode:   gpucore.CompositeAlphaModePreMultiplied,
			},
		},
		{
			name:   "default falls back to first format",
			policy: DefaultPolicy(),
			caps:   linearOnly,
			want: Choice{
				Format:      gputypes.TextureFormatRGBA8Unorm,
				PresentMode: gpucore.PresentModeFifo,
				AlphaMode:   gpucore.CompositeAlphaModeOpaque,
			},
		},
		{
			name:   "zero policy takes first format",
			policy: Policy{},
			caps:   linearFirst,
			want: Choice{
				Format:      gputypes.TextureFormatBGRA8Unorm,
				PresentMode: gpucore.PresentModeMailbox,
				AlphaMode:   gpucore.CompositeAlphaModePreMultiplied,
			},
		},
		{
			name: "explicit preferences",
			policy: Policy{
				Formats:     []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
				PreferSRGB:  true,
				PresentMode: gpucore.PresentModeFifo,
				AlphaMode:   gpucore.CompositeAlphaModeOpaque,
			},
			caps: linearFirst,
			want: Choice{
				Format:      gputypes.TextureFormatBGRA8Unorm,
				PresentMode: gpucore.PresentModeFifo,
				AlphaMode:   gpucore.CompositeAlphaModeOpaque,
			},
		},
		{
			name: "unsupported preferences fall back",
			policy: Policy{
				Formats:     []gputypes.TextureFormat{gputypes.TextureFormatRGBA8UnormSrgb},
				PresentMode: gpucore.PresentModeImmediate,
				AlphaMode:   gpucore.CompositeAlphaModeInherit,
			},
			caps: linearOnly,
			want: Choice{
				Format:      gputypes.TextureFormatRGBA8Unorm,
				PresentMode: gpucore.PresentModeFifo,
				AlphaMode:   gpucore.CompositeAlphaModeOpaque,
			},
			fallbacks: []string{"format", "present_mode", "alpha_mode"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Choose(tt.caps)
			if got.Format != tt.want.Format || got.PresentMode != tt.want.PresentMode || got.AlphaMode != tt.want.AlphaMode {
				t.Errorf("Choose() = %+v, want %+v", got, tt.want)
			}
			if !slices.Equal(got.Fallbacks, tt.fallbacks) {
				t.Errorf("Fallbacks = %v, want %v", got.Fallbacks, tt.fallbacks)
			}
		})
	}
}
