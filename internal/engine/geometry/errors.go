package geometry

import "errors"

var (
	// ErrUnknownShape is returned for a nil or unrecognised shape.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrInvalidShape is returned when a dimension is negative, NaN or infinite.
	ErrInvalidShape = errors.New("invalid shape dimensions")
)
