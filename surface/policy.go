// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"slices"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

// Policy decides format and modes from the surface capabilities.
//
// The zero value picks the first reported format, present mode and alpha
// mode. [DefaultPolicy] additionally prefers an sRGB format.
type Policy struct {
	// Formats is an ordered preference list. The first entry the surface
	// supports wins. Checked before PreferSRGB.
	Formats []gputypes.TextureFormat

	// PreferSRGB picks the first sRGB format when no entry of Formats is
	// supported.
	PreferSRGB bool

	// PresentMode is used when supported. Undefined, or an unsupported
	// mode, selects the first reported mode.
	PresentMode gpucore.PresentMode

	// AlphaMode is used when supported. Undefined, or an unsupported mode,
	// selects the first reported mode.
	AlphaMode gpucore.CompositeAlphaMode
}

// DefaultPolicy prefers sRGB and otherwise takes the first reported entry.
func DefaultPolicy() Policy {
	return Policy{PreferSRGB: true}
}

// Choice is the outcome of applying a Policy.
type Choice struct {
	Format      gputypes.TextureFormat
	PresentMode gpucore.PresentMode
	AlphaMode   gpucore.CompositeAlphaMode

	// Fallbacks lists the settings where the requested value was not
	// supported, for diagnostics.
	Fallbacks []string
}

// Choose applies p to caps. caps must have at least one format.
func (p Policy) Choose(caps gpucore.SurfaceCapabilities) Choice {
	var c Choice
	c.Format = p.chooseFormat(caps.Formats)
	if len(p.Formats) > 0 && !slices.Contains(p.Formats, c.Format) {
		c.Fallbacks = append(c.Fallbacks, "format")
	}

	c.PresentMode = gpucore.PresentModeFifo
	if len(caps.PresentModes) > 0 {
		c.PresentMode = caps.PresentModes[0]
	}
	if p.PresentMode != gpucore.PresentModeUndefined {
		if slices.Contains(caps.PresentModes, p.PresentMode) {
			c.PresentMode = p.PresentMode
		} else {
			c.Fallbacks = append(c.Fallbacks, "present_mode")
		}
	}

	c.AlphaMode = gpucore.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		c.AlphaMode = caps.AlphaModes[0]
	}
	if p.AlphaMode != gpucore.CompositeAlphaModeUndefined {
		if slices.Contains(caps.AlphaModes, p.AlphaMode) {
			c.AlphaMode = p.AlphaMode
		} else {
			c.Fallbacks = append(c.Fallbacks, "alpha_mode")
		}
	}
	return c
}

func (p Policy) chooseFormat(formats []gputypes.TextureFormat) gputypes.TextureFormat {
	if len(formats) == 0 {
		return gputypes.TextureFormatUndefined
	}
	for _, want := range p.Formats {
		if slices.Contains(formats, want) {
			return want
		}
	}
	if p.PreferSRGB {
		for _, f := range formats {
			if gpucore.IsSRGB(f) {
				return f
			}
		}
	}
	return formats[0]
}
