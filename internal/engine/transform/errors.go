package transform

import "errors"

// ErrDegenerateViewport is returned when a 2D transform is bound to a viewport
// with no area.
var ErrDegenerateViewport = errors.New("transform: degenerate viewport")
