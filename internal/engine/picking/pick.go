package picking

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/transform"
	"github.com/Faultbox/scenekit/internal/engine/world"
)

// Hit describes the object closest along a ray.
type Hit struct {
	ID       world.ID
	Distance float32
	Bounds   mesh.Bounds // world-space bounds of the hit object
}

// Pick returns the object whose world-space bounds the ray enters first.
// Groups without geometry are never hit. ok is false when nothing is hit.
func Pick(w *world.World, r Ray) (hit Hit, ok bool, err error) {
	scratch := mesh.NewBuilder()
	err = w.Walk(func(id world.ID, obj *world.Object, t transform.Transform) error {
		if obj.Geometry == nil {
			return nil
		}
		scratch.Clear()
		if err := geometry.Generate(obj.Geometry, t, obj.Color, scratch); err != nil {
			return err
		}
		bounds := scratch.Bounds()
		d, found := r.IntersectBounds(bounds)
		if found && (!ok || d < hit.Distance) {
			hit = Hit{ID: id, Distance: d, Bounds: bounds}
			ok = true
		}
		return nil
	})
	if err != nil {
		return Hit{}, false, err
	}
	return hit, ok, nil
}

var errFound = errors.New("found")

// ObjectBounds returns the world-space bounds of one object's geometry.
// Groups return empty bounds.
func ObjectBounds(w *world.World, id world.ID) (mesh.Bounds, error) {
	if !w.Contains(id) {
		return mesh.EmptyBounds(), fmt.Errorf("%w: %d", world.ErrNotFound, id)
	}
	scratch := mesh.NewBuilder()
	err := w.Walk(func(cur world.ID, obj *world.Object, t transform.Transform) error {
		if cur != id {
			return nil
		}
		if obj.Geometry != nil {
			if err := geometry.Generate(obj.Geometry, t, obj.Color, scratch); err != nil {
				return err
			}
		}
		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return mesh.EmptyBounds(), err
	}
	return scratch.Bounds(), nil
}
