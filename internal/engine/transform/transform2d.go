package transform

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/internal/engine/viewport"
	"github.com/Faultbox/scenekit/pkg/math"
)

// VirtualWidth is the width of the 2D world in units, independent of pixels.
// The virtual height follows the viewport aspect ratio.
const VirtualWidth float32 = 1000

// Transform2D is a planar transform: scale, rotate about Z (degrees), translate.
type Transform2D struct {
	Position math.Vec3
	Rotation float32
	Scale    math.Vec3
}

// Identity2D returns a 2D transform with unit scale.
func Identity2D() Transform2D {
	return Transform2D{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Apply scales, rotates and translates points in world units. Z is only translated.
func (t Transform2D) Apply(points []math.Vec3) []math.Vec3 {
	rad := math.Radians(t.Rotation)
	sin, cos := math32.Sin(rad), math32.Cos(rad)

	out := make([]math.Vec3, len(points))
	for i, p := range points {
		x := p.X * t.Scale.X
		y := p.Y * t.Scale.Y
		out[i] = math.Vec3{
			X: x*cos - y*sin + t.Position.X,
			Y: x*sin + y*cos + t.Position.Y,
			Z: p.Z + t.Position.Z,
		}
	}
	return out
}

// ViewportTransform applies a Transform2D and maps the result into normalized
// device coordinates so geometry keeps its proportions when the window resizes.
type ViewportTransform struct {
	Transform2D
	halfWidth  float32
	halfHeight float32
}

// NewViewportTransform binds t to vp. A viewport with a zero dimension fails
// with ErrDegenerateViewport instead of producing Inf/NaN vertices.
func NewViewportTransform(t Transform2D, vp viewport.Viewport) (ViewportTransform, error) {
	if err := vp.Validate(); err != nil {
		return ViewportTransform{}, fmt.Errorf("%w: %w", ErrDegenerateViewport, err)
	}
	virtualHeight := VirtualWidth * float32(vp.Height) / float32(vp.Width)
	return ViewportTransform{
		Transform2D: t,
		halfWidth:   VirtualWidth / 2,
		halfHeight:  virtualHeight / 2,
	}, nil
}

// Apply transforms points in world units, then normalizes X and Y to NDC.
func (v ViewportTransform) Apply(points []math.Vec3) []math.Vec3 {
	out := v.Transform2D.Apply(points)
	for i := range out {
		out[i].X /= v.halfWidth
		out[i].Y /= v.halfHeight
	}
	return out
}
