package mesh

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/scenekit/internal/engine/transform"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Builder holds the vertex and index arrays of one flattened scene.
// Insertion order is draw order. Vertices are never shared between primitives,
// which keeps per-face colors flat at the cost of memory.
type Builder struct {
	Vertices []Vertex
	Indices  []uint32
	bounds   Bounds
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{bounds: EmptyBounds()}
}

// Reserve grows capacity so that the next vertices/indices appends do not reallocate.
func (b *Builder) Reserve(vertices, indices int) {
	if need := len(b.Vertices) + vertices; need > cap(b.Vertices) {
		grown := make([]Vertex, len(b.Vertices), need)
		copy(grown, b.Vertices)
		b.Vertices = grown
	}
	if need := len(b.Indices) + indices; need > cap(b.Indices) {
		grown := make([]uint32, len(b.Indices), need)
		copy(grown, b.Indices)
		b.Indices = grown
	}
}

// AddTransformedQuad transforms four corners and appends them as a quad.
func (b *Builder) AddTransformedQuad(points [4]math.Vec3, t transform.Applier, c Color) {
	p := t.Apply(points[:])
	b.PushQuad([4]math.Vec3{p[0], p[1], p[2], p[3]}, c)
}

// AddTransformedTriangle transforms three corners and appends them as a triangle.
func (b *Builder) AddTransformedTriangle(points [3]math.Vec3, t transform.Applier, c Color) {
	p := t.Apply(points[:])
	b.PushTriangle([3]math.Vec3{p[0], p[1], p[2]}, c)
}

// PushQuad appends 4 vertices and 6 indices: triangles (0,1,2) and (0,2,3).
func (b *Builder) PushQuad(points [4]math.Vec3, c Color) {
	start := uint32(len(b.Vertices))
	for _, p := range points {
		b.push(p, c)
	}
	b.Indices = append(b.Indices,
		start, start+1, start+2,
		start, start+2, start+3,
	)
}

// PushTriangle appends 3 vertices and 3 indices.
func (b *Builder) PushTriangle(points [3]math.Vec3, c Color) {
	start := uint32(len(b.Vertices))
	for _, p := range points {
		b.push(p, c)
	}
	b.Indices = append(b.Indices, start, start+1, start+2)
}

func (b *Builder) push(p math.Vec3, c Color) {
	pos := p.Array()
	if len(b.Vertices) == 0 {
		b.bounds = EmptyBounds()
	}
	b.bounds.extend(pos)
	// Alpha is dropped here.
	b.Vertices = append(b.Vertices, Vertex{Position: pos, Color: c.RGB()})
}

// Clear empties both arrays and keeps their capacity for the next rebuild.
func (b *Builder) Clear() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
	b.bounds = EmptyBounds()
}

// Truncate drops everything appended after the given counts and recomputes
// the bounds of what is left. Counts at or past the current lengths are a no-op.
func (b *Builder) Truncate(vertices, indices int) {
	if vertices < 0 || indices < 0 || vertices > len(b.Vertices) || indices > len(b.Indices) {
		return
	}
	b.Vertices = b.Vertices[:vertices]
	b.Indices = b.Indices[:indices]
	b.bounds = EmptyBounds()
	for _, v := range b.Vertices {
		b.bounds.extend(v.Position)
	}
}

// VertexCount returns the number of vertices.
func (b *Builder) VertexCount() int {
	return len(b.Vertices)
}

// IndexCount returns the number of indices.
func (b *Builder) IndexCount() int {
	return len(b.Indices)
}

// Bounds returns the bounding box of every vertex added since the last Clear.
func (b *Builder) Bounds() Bounds {
	if len(b.Vertices) == 0 {
		return EmptyBounds()
	}
	return b.bounds
}

// Floats returns the vertex array as interleaved float32s (x, y, z, r, g, b, ...).
// The slice aliases the builder's storage and is only valid until the next append.
func (b *Builder) Floats() []float32 {
	if len(b.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice(&b.Vertices[0].Position[0], len(b.Vertices)*VertexStride/4)
}

// Checksum hashes the vertex and index arrays. Two builders with identical
// content hash the same, so uploads can be skipped when nothing changed.
func (b *Builder) Checksum() uint64 {
	d := xxhash.New()
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(b.Vertices)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(b.Indices)))
	_, _ = d.Write(hdr[:])
	_ = binary.Write(d, binary.LittleEndian, b.Vertices)
	_ = binary.Write(d, binary.LittleEndian, b.Indices)
	return d.Sum64()
}
