package world

import (
	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/transform"
)

// ID identifies an object for the lifetime of a World. IDs are never reused.
type ID uint64

// Object is a node of the scene graph. Transform is relative to the parent.
// Objects without Geometry are group nodes that only carry a transform.
type Object struct {
	Name      string
	Transform transform.Transform
	Geometry  geometry.Shape
	Color     mesh.Color

	parent    ID
	hasParent bool
	children  []ID
}

// NewObject returns an object with an identity transform.
func NewObject(name string, shape geometry.Shape, color mesh.Color) Object {
	return Object{
		Name:      name,
		Transform: transform.Identity(),
		Geometry:  shape,
		Color:     color,
	}
}

// NewGroup returns a geometry-less object with an identity transform.
func NewGroup(name string) Object {
	return Object{Name: name, Transform: transform.Identity()}
}

// Parent returns the parent id, if any.
func (o *Object) Parent() (ID, bool) {
	return o.parent, o.hasParent
}

// Children returns a copy of the child ids in insertion order.
func (o *Object) Children() []ID {
	return append([]ID(nil), o.children...)
}
