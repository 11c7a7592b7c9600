package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenekit/internal/engine/camera"
	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/transform"
	"github.com/Faultbox/scenekit/internal/engine/world"
	"github.com/Faultbox/scenekit/pkg/math"
)

func unitBox() mesh.Bounds {
	return mesh.Bounds{Min: [3]float32{-0.5, -0.5, -0.5}, Max: [3]float32{0.5, 0.5, 0.5}}
}

func TestScreenToRayCentre(t *testing.T) {
	cam, err := camera.New(camera.DefaultConfig())
	require.NoError(t, err)
	vp, err := cam.ViewProjection()
	require.NoError(t, err)

	r := ScreenToRay(400, 300, 800, 600, vp.Inverse())

	forward := cam.Target.Sub(cam.Eye).Normalize()
	assert.True(t, forward.ApproxEqual(r.Direction, 1e-3), "direction %v, want %v", r.Direction, forward)
	// The ray starts on the near plane.
	assert.InDelta(t, cam.ZNear, r.Origin.Distance(cam.Eye), 1e-3)
}

func TestScreenToRayHitsProjectedPoint(t *testing.T) {
	cam, err := camera.New(camera.DefaultConfig())
	require.NoError(t, err)
	vp, err := cam.ViewProjection()
	require.NoError(t, err)

	p := math.V3(1, 0.5, -1)
	ndc, err := vp.ProjectPoint(p)
	require.NoError(t, err)
	sx := (ndc.X + 1) / 2 * 800
	sy := (1 - ndc.Y) / 2 * 600

	r := ScreenToRay(sx, sy, 800, 600, vp.Inverse())
	toPoint := p.Sub(r.Origin).Normalize()
	assert.True(t, toPoint.ApproxEqual(r.Direction, 1e-3), "direction %v, want %v", r.Direction, toPoint)
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.V3(1, 10, 2), Direction: math.V3(0, -1, 0)}
	x, z, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(2), z)

	_, _, ok = r.IntersectPlaneY(20)
	assert.False(t, ok, "plane behind the origin")

	flat := Ray{Origin: math.V3(0, 1, 0), Direction: math.V3(1, 0, 0)}
	_, _, ok = flat.IntersectPlaneY(0)
	assert.False(t, ok, "parallel ray")
}

func TestIntersectBounds(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float32
	}{
		{"front", Ray{Origin: math.V3(0, 0, -10), Direction: math.V3(0, 0, 1)}, true, 9.5},
		{"inside", Ray{Origin: math.V3(0, 0, 0), Direction: math.V3(1, 0, 0)}, true, 0.5},
		{"miss", Ray{Origin: math.V3(2, 0, -10), Direction: math.V3(0, 0, 1)}, false, 0},
		{"behind", Ray{Origin: math.V3(0, 0, 10), Direction: math.V3(0, 0, 1)}, false, 0},
		{"diagonal", Ray{Origin: math.V3(-5, 0, -5), Direction: math.V3(1, 0, 1).Normalize()}, true, 4.5 * math.V3(1, 0, 1).Length()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectBounds(unitBox())
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.dist, d, 1e-4)
			}
		})
	}
}

func TestIntersectEmptyBounds(t *testing.T) {
	r := Ray{Origin: math.V3(0, 0, -10), Direction: math.V3(0, 0, 1)}
	_, hit := r.IntersectBounds(mesh.EmptyBounds())
	assert.False(t, hit)
}

func TestPickNearest(t *testing.T) {
	w := world.New()
	near := geometry.Cube(1)
	far := w.Spawn(world.NewObject("far", near, mesh.ColorRed))
	nearID := w.Spawn(world.NewObject("near", near, mesh.ColorBlue))

	obj, err := w.Get(far)
	require.NoError(t, err)
	obj.Transform = transform.FromPosition(0, 0, 5)
	obj, err = w.Get(nearID)
	require.NoError(t, err)
	obj.Transform = transform.FromPosition(0, 0, 2)

	r := Ray{Origin: math.V3(0, 0, -10), Direction: math.V3(0, 0, 1)}
	hit, ok, err := Pick(w, r)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, nearID, hit.ID)
	assert.InDelta(t, 11.5, hit.Distance, 1e-4)
	assert.Equal(t, [3]float32{0.5, 0.5, 2.5}, hit.Bounds.Max)
}

func TestPickChildInWorldSpace(t *testing.T) {
	w := world.New()
	group := world.NewGroup("group")
	group.Transform = transform.FromPosition(10, 0, 0)
	root := w.Spawn(group)
	child, err := w.SpawnChild(root, world.NewObject("box", geometry.Cube(1), mesh.ColorGreen))
	require.NoError(t, err)

	hit, ok, err := Pick(w, Ray{Origin: math.V3(10, 0, -10), Direction: math.V3(0, 0, 1)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, child, hit.ID)

	_, ok, err = Pick(w, Ray{Origin: math.V3(0, 0, -10), Direction: math.V3(0, 0, 1)})
	require.NoError(t, err)
	assert.False(t, ok, "groups have no geometry to hit")
}

func TestPickInvalidGeometry(t *testing.T) {
	w := world.New()
	w.Spawn(world.NewObject("bad", geometry.Box{Width: -1, Height: 1, Depth: 1}, mesh.ColorRed))

	_, _, err := Pick(w, Ray{Origin: math.V3(0, 0, -10), Direction: math.V3(0, 0, 1)})
	assert.ErrorIs(t, err, geometry.ErrInvalidShape)
}

func TestObjectBounds(t *testing.T) {
	w := world.New()
	group := world.NewGroup("group")
	group.Transform = transform.FromPosition(0, 3, 0)
	root := w.Spawn(group)
	child, err := w.SpawnChild(root, world.NewObject("box", geometry.Cube(2), mesh.ColorGreen))
	require.NoError(t, err)

	b, err := ObjectBounds(w, child)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{-1, 2, -1}, b.Min)
	assert.Equal(t, [3]float32{1, 4, 1}, b.Max)

	b, err = ObjectBounds(w, root)
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())

	_, err = ObjectBounds(w, 42)
	assert.ErrorIs(t, err, world.ErrNotFound)
}
