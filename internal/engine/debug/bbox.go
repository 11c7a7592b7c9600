// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/scenekit/internal/engine/mesh"
)

// BoundsWireframe returns line vertices for the 12 edges of a box,
// 24 vertices (12 edges x 2 endpoints). padding grows the box on all sides.
func BoundsWireframe(b mesh.Bounds, c mesh.Color, padding float32) []mesh.Vertex {
	if b.IsEmpty() {
		return nil
	}
	minX, minY, minZ := b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding
	maxX, maxY, maxZ := b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding

	points := [][3]float32{
		// Bottom face (4 edges)
		{minX, minY, minZ}, {maxX, minY, minZ},
		{maxX, minY, minZ}, {maxX, minY, maxZ},
		{maxX, minY, maxZ}, {minX, minY, maxZ},
		{minX, minY, maxZ}, {minX, minY, minZ},
		// Top face (4 edges)
		{minX, maxY, minZ}, {maxX, maxY, minZ},
		{maxX, maxY, minZ}, {maxX, maxY, maxZ},
		{maxX, maxY, maxZ}, {minX, maxY, maxZ},
		{minX, maxY, maxZ}, {minX, maxY, minZ},
		// Vertical edges (4 edges)
		{minX, minY, minZ}, {minX, maxY, minZ},
		{maxX, minY, minZ}, {maxX, maxY, minZ},
		{maxX, minY, maxZ}, {maxX, maxY, maxZ},
		{minX, minY, maxZ}, {minX, maxY, maxZ},
	}
	return lines(points, c)
}

// GroundGrid returns line vertices for a square grid on the XZ plane at y,
// centered on the origin, with one line every step units.
func GroundGrid(halfExtent, step, y float32, c mesh.Color) []mesh.Vertex {
	if step <= 0 || halfExtent <= 0 {
		return nil
	}
	n := int(halfExtent / step)
	points := make([][3]float32, 0, (2*n+1)*4)
	for i := -n; i <= n; i++ {
		o := float32(i) * step
		points = append(points,
			[3]float32{o, y, -halfExtent}, [3]float32{o, y, halfExtent},
			[3]float32{-halfExtent, y, o}, [3]float32{halfExtent, y, o},
		)
	}
	return lines(points, c)
}

func lines(points [][3]float32, c mesh.Color) []mesh.Vertex {
	out := make([]mesh.Vertex, len(points))
	rgb := c.RGB()
	for i, p := range points {
		out[i] = mesh.Vertex{Position: p, Color: rgb}
	}
	return out
}
