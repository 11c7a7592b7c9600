// Package geometry tessellates procedural shapes into quads and triangles.
package geometry

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Kind identifies a shape variant.
type Kind int

const (
	KindBox Kind = iota
	KindPlane
	KindPyramid
	KindCapsule
	KindSphere
	KindTriangle
	KindRectangle
)

var kindNames = [...]string{
	KindBox:       "box",
	KindPlane:     "plane",
	KindPyramid:   "pyramid",
	KindCapsule:   "capsule",
	KindSphere:    "sphere",
	KindTriangle:  "triangle",
	KindRectangle: "rectangle",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Shape is a closed set of procedural primitives. All dimensions are in local
// units, centered on the origin.
type Shape interface {
	Kind() Kind
	validate() error
}

// Box is an axis-aligned cuboid.
type Box struct {
	Width, Height, Depth float32
}

// Plane is a square in the XZ plane at y=0, visible from both sides.
type Plane struct {
	Size float32
}

// Pyramid has a square base at y=-Height/2 and its apex at y=+Height/2.
type Pyramid struct {
	BaseSize, Height float32
}

// Capsule is a Y-aligned cylinder of length Height capped by two hemispheres,
// so its total extent along Y is Height + 2*Radius.
type Capsule struct {
	Radius       float32
	Height       float32
	Subdivisions int
}

// Sphere is a UV sphere. Subdivisions sets the number of longitude bands.
type Sphere struct {
	Radius       float32
	Subdivisions int
}

// Triangle is an isosceles triangle in the XY plane.
type Triangle struct {
	Base, Height float32
}

// Rectangle lies in the XY plane at z=0.
type Rectangle struct {
	Width, Height float32
}

// Cube returns a Box with equal sides.
func Cube(size float32) Box {
	return Box{Width: size, Height: size, Depth: size}
}

// Square returns a Rectangle with equal sides.
func Square(size float32) Rectangle {
	return Rectangle{Width: size, Height: size}
}

func (Box) Kind() Kind       { return KindBox }
func (Plane) Kind() Kind     { return KindPlane }
func (Pyramid) Kind() Kind   { return KindPyramid }
func (Capsule) Kind() Kind   { return KindCapsule }
func (Sphere) Kind() Kind    { return KindSphere }
func (Triangle) Kind() Kind  { return KindTriangle }
func (Rectangle) Kind() Kind { return KindRectangle }

func (s Box) validate() error       { return checkDims(s.Kind(), s.Width, s.Height, s.Depth) }
func (s Plane) validate() error     { return checkDims(s.Kind(), s.Size) }
func (s Pyramid) validate() error   { return checkDims(s.Kind(), s.BaseSize, s.Height) }
func (s Capsule) validate() error   { return checkDims(s.Kind(), s.Radius, s.Height) }
func (s Sphere) validate() error    { return checkDims(s.Kind(), s.Radius) }
func (s Triangle) validate() error  { return checkDims(s.Kind(), s.Base, s.Height) }
func (s Rectangle) validate() error { return checkDims(s.Kind(), s.Width, s.Height) }

func checkDims(k Kind, dims ...float32) error {
	for _, d := range dims {
		if d < 0 || math32.IsNaN(d) || math32.IsInf(d, 0) {
			return fmt.Errorf("%w: %s has dimension %v", ErrInvalidShape, k, d)
		}
	}
	return nil
}

// bands returns the longitude and latitude band counts for a round shape.
func bands(subdivisions int) (lon, lat int) {
	lon = max(subdivisions, 1)
	lat = max(lon/2, 4)
	return lon, lat
}

// Counts returns how many vertices and indices Generate appends for s.
func Counts(s Shape) (vertices, indices int, err error) {
	quads, tris := 0, 0
	switch s := s.(type) {
	case Box:
		quads = 6
	case Plane:
		quads = 2
	case Pyramid:
		quads, tris = 1, 4
	case Capsule:
		n, lat := bands(s.Subdivisions)
		quads = n * (1 + 2*lat)
	case Sphere:
		n, lat := bands(s.Subdivisions)
		quads = n * lat
	case Triangle:
		tris = 1
	case Rectangle:
		quads = 1
	default:
		return 0, 0, fmt.Errorf("%w: %T", ErrUnknownShape, s)
	}
	return quads*4 + tris*3, quads*6 + tris*3, nil
}
