package rust

import "errors"

// Backend errors.
var (
	// ErrForeignObject is returned when an object created by another
	// backend is passed in.
	ErrForeignObject = errors.New("rust: object belongs to another backend")

	// ErrUnsupportedPolygonMode is returned for non-fill polygon modes.
	ErrUnsupportedPolygonMode = errors.New("rust: only fill polygon mode is supported")

	// ErrUnsupportedBlend is returned for pipelines that request blending.
	ErrUnsupportedBlend = errors.New("rust: blend state is not supported")

	// ErrUnsupportedFormat is returned for texture formats the backend
	// cannot translate.
	ErrUnsupportedFormat = errors.New("rust: unsupported texture format")
)
