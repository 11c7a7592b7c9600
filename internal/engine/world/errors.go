package world

import "errors"

var (
	// ErrNotFound is returned when an id is not alive in the world.
	ErrNotFound = errors.New("object not found")
	// ErrDanglingReference is returned when spawning under a parent that does not exist.
	ErrDanglingReference = errors.New("dangling parent reference")
)
