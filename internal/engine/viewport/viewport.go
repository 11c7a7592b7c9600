// Package viewport describes the drawable surface the scene is projected onto.
package viewport

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned for a viewport with a zero or negative dimension.
var ErrDegenerate = errors.New("degenerate viewport")

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// New returns a viewport of the given size.
func New(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

// Validate fails with ErrDegenerate when either dimension is not positive.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDegenerate, v.Width, v.Height)
	}
	return nil
}

// AspectRatio returns width / height.
func (v Viewport) AspectRatio() (float32, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	return float32(v.Width) / float32(v.Height), nil
}
