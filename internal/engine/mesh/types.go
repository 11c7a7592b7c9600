// Package mesh accumulates transformed primitives into flat GPU-ready vertex and index arrays.
package mesh

import "unsafe"

// Vertex is one GPU vertex: position then color, six tightly packed float32s.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = int(unsafe.Sizeof(Vertex{}))

// ColorOffset is the byte offset of the color attribute inside a Vertex.
const ColorOffset = int(unsafe.Offsetof(Vertex{}.Color))

// Color is an RGBA color with float components (0.0 to 1.0).
//
// Vertices only carry RGB: alpha is accepted everywhere a Color is taken and
// dropped when vertices are emitted.
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
	ColorOrange = Color{1, 0.55, 0, 1}
	ColorGray   = Color{0.5, 0.5, 0.5, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB returns the color without its alpha channel.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns inverted bounds that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0]
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
