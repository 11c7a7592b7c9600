package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/transform"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Generate tessellates s in local space, maps it through t and appends the
// result to b in a single color.
//
// Every face is wound so that (b-a) x (c-a) points away from the shape's
// interior. Flat shapes (Triangle, Rectangle) face +Z.
func Generate(s Shape, t transform.Applier, c mesh.Color, b *mesh.Builder) error {
	if s == nil {
		return ErrUnknownShape
	}
	vertices, indices, err := Counts(s)
	if err != nil {
		return err
	}
	if err := s.validate(); err != nil {
		return err
	}

	var p prims
	switch s := s.(type) {
	case Box:
		p.box(s)
	case Plane:
		p.plane(s)
	case Pyramid:
		p.pyramid(s)
	case Capsule:
		p.capsule(s)
	case Sphere:
		p.sphere(s)
	case Triangle:
		p.triangle(s)
	case Rectangle:
		p.rectangle(s)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownShape, s)
	}

	b.Reserve(vertices, indices)
	p.emit(t, c, b)
	return nil
}

// prims collects local-space primitives in emit order.
type prims struct {
	points []math.Vec3
	sizes  []int
}

func (p *prims) quad(a, b, c, d math.Vec3) {
	p.points = append(p.points, a, b, c, d)
	p.sizes = append(p.sizes, 4)
}

func (p *prims) tri(a, b, c math.Vec3) {
	p.points = append(p.points, a, b, c)
	p.sizes = append(p.sizes, 3)
}

func (p *prims) emit(t transform.Applier, c mesh.Color, b *mesh.Builder) {
	i := 0
	for _, n := range p.sizes {
		pts := p.points[i : i+n]
		if n == 4 {
			b.AddTransformedQuad([4]math.Vec3{pts[0], pts[1], pts[2], pts[3]}, t, c)
		} else {
			b.AddTransformedTriangle([3]math.Vec3{pts[0], pts[1], pts[2]}, t, c)
		}
		i += n
	}
}

func (p *prims) box(s Box) {
	x, y, z := s.Width/2, s.Height/2, s.Depth/2

	p1 := math.V3(-x, -y, z)
	p2 := math.V3(x, -y, z)
	p3 := math.V3(x, y, z)
	p4 := math.V3(-x, y, z)
	p5 := math.V3(-x, -y, -z)
	p6 := math.V3(x, -y, -z)
	p7 := math.V3(x, y, -z)
	p8 := math.V3(-x, y, -z)

	p.quad(p1, p2, p3, p4) // front
	p.quad(p6, p5, p8, p7) // back
	p.quad(p5, p1, p4, p8) // left
	p.quad(p2, p6, p7, p3) // right
	p.quad(p4, p3, p7, p8) // top
	p.quad(p5, p6, p2, p1) // bottom
}

func (p *prims) plane(s Plane) {
	h := s.Size / 2
	a := math.V3(-h, 0, h)
	b := math.V3(h, 0, h)
	c := math.V3(h, 0, -h)
	d := math.V3(-h, 0, -h)

	p.quad(a, b, c, d)
	p.quad(d, c, b, a)
}

func (p *prims) pyramid(s Pyramid) {
	h := s.BaseSize / 2
	y := s.Height / 2

	apex := math.V3(0, y, 0)
	b1 := math.V3(-h, -y, h)
	b2 := math.V3(h, -y, h)
	b3 := math.V3(h, -y, -h)
	b4 := math.V3(-h, -y, -h)

	p.tri(b1, b2, apex)
	p.tri(b2, b3, apex)
	p.tri(b3, b4, apex)
	p.tri(b4, b1, apex)
	p.quad(b4, b3, b2, b1)
}

func (p *prims) triangle(s Triangle) {
	p.tri(
		math.V3(0, s.Height/2, 0),
		math.V3(-s.Base/2, -s.Height/2, 0),
		math.V3(s.Base/2, -s.Height/2, 0),
	)
}

func (p *prims) rectangle(s Rectangle) {
	x, y := s.Width/2, s.Height/2
	p.quad(
		math.V3(-x, -y, 0),
		math.V3(x, -y, 0),
		math.V3(x, y, 0),
		math.V3(-x, y, 0),
	)
}

// ring holds cos/sin of evenly spaced longitudes. Entry n repeats entry 0
// exactly so the seam closes without cracks.
type ring struct {
	cos, sin []float32
}

func newRing(n int) ring {
	r := ring{cos: make([]float32, n+1), sin: make([]float32, n+1)}
	for i := 0; i <= n; i++ {
		theta := float32(i%n) / float32(n) * 2 * math32.Pi
		r.cos[i] = math32.Cos(theta)
		r.sin[i] = math32.Sin(theta)
	}
	return r
}

// arc returns cos/sin of lat+1 latitudes from `from` to `to` radians, with the
// poles snapped to exact values.
func arc(lat int, from, to float32) ring {
	r := ring{cos: make([]float32, lat+1), sin: make([]float32, lat+1)}
	for j := 0; j <= lat; j++ {
		phi := from + float32(j)/float32(lat)*(to-from)
		r.cos[j], r.sin[j] = math32.Cos(phi), math32.Sin(phi)
		switch {
		case phi >= math32.Pi/2:
			r.cos[j], r.sin[j] = 0, 1
		case phi <= -math32.Pi/2:
			r.cos[j], r.sin[j] = 0, -1
		case phi == 0:
			r.cos[j], r.sin[j] = 1, 0
		}
	}
	return r
}

// at returns the point at longitude i and latitude j on a sphere of radius r
// centered at y=cy.
func at(lon, lat ring, i, j int, r, cy float32) math.Vec3 {
	rc := r * lat.cos[j]
	return math.V3(rc*lon.cos[i], cy+r*lat.sin[j], rc*lon.sin[i])
}

func (p *prims) capsule(s Capsule) {
	n, lat := bands(s.Subdivisions)
	lon := newRing(n)
	up := arc(lat, 0, math32.Pi/2)
	down := arc(lat, 0, -math32.Pi/2)
	r, h := s.Radius, s.Height/2

	for i := 0; i < n; i++ {
		// Body. Its rings are the j=0 rings of both caps.
		p.quad(
			at(lon, up, i, 0, r, -h),
			at(lon, up, i, 0, r, h),
			at(lon, up, i+1, 0, r, h),
			at(lon, up, i+1, 0, r, -h),
		)
		for j := 0; j < lat; j++ {
			p.quad(
				at(lon, up, i, j, r, h),
				at(lon, up, i, j+1, r, h),
				at(lon, up, i+1, j+1, r, h),
				at(lon, up, i+1, j, r, h),
			)
		}
		for j := 0; j < lat; j++ {
			// Latitude runs downwards, so the order is reversed to face out.
			p.quad(
				at(lon, down, i+1, j, r, -h),
				at(lon, down, i+1, j+1, r, -h),
				at(lon, down, i, j+1, r, -h),
				at(lon, down, i, j, r, -h),
			)
		}
	}
}

func (p *prims) sphere(s Sphere) {
	n, lat := bands(s.Subdivisions)
	lon := newRing(n)
	ls := arc(lat, -math32.Pi/2, math32.Pi/2)

	for i := 0; i < n; i++ {
		for j := 0; j < lat; j++ {
			p.quad(
				at(lon, ls, i, j, s.Radius, 0),
				at(lon, ls, i, j+1, s.Radius, 0),
				at(lon, ls, i+1, j+1, s.Radius, 0),
				at(lon, ls, i+1, j, s.Radius, 0),
			)
		}
	}
}
