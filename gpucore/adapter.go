package gpucore

// SelectAdapter picks the adapter to open for surface s.
//
// Candidates that are software adapters (unless opts.ForceFallbackAdapter)
// or that report no surface formats for s are discarded. Among the rest the
// first adapter of the preferred device type wins, then the first of the
// secondary type, then the first remaining one. The returned capabilities
// belong to the selected adapter.
//
// Returns [ErrNoAdapter] when nothing qualifies.
func SelectAdapter(adapters []Adapter, s Surface, opts AdapterOptions) (Adapter, SurfaceCapabilities, error) {
	type candidate struct {
		adapter Adapter
		caps    SurfaceCapabilities
		kind    DeviceType
	}

	candidates := make([]candidate, 0, len(adapters))
	for _, a := range adapters {
		if a == nil {
			continue
		}
		info := a.Info()
		if info.DeviceType == DeviceTypeCPU && !opts.ForceFallbackAdapter {
			continue
		}
		caps := a.SurfaceCapabilities(s)
		if caps.Empty() {
			continue
		}
		candidates = append(candidates, candidate{adapter: a, caps: caps, kind: info.DeviceType})
	}
	if len(candidates) == 0 {
		return nil, SurfaceCapabilities{}, ErrNoAdapter
	}

	for _, want := range preferredTypes(opts.PowerPreference) {
		for _, c := range candidates {
			if c.kind == want {
				return c.adapter, c.caps, nil
			}
		}
	}
	return candidates[0].adapter, candidates[0].caps, nil
}

// preferredTypes returns device types in preference order.
func preferredTypes(p PowerPreference) []DeviceType {
	switch p {
	case PowerPreferenceLowPower:
		return []DeviceType{DeviceTypeIntegratedGPU, DeviceTypeDiscreteGPU}
	case PowerPreferenceHighPerformance:
		return []DeviceType{DeviceTypeDiscreteGPU, DeviceTypeIntegratedGPU}
	default:
		return nil
	}
}
