//go:build !rust

package rust

import "github.com/gogpu/frameloop/backend"

// init registers a nil-returning factory when the rust tag is not set, so
// backend.Get(backend.BackendRust) reports the backend as unavailable.
func init() {
	backend.Register(backend.BackendRust, func() backend.Backend {
		return nil
	})
}
