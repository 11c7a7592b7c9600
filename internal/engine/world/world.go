// Package world implements the scene graph: an arena of parented objects.
package world

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/transform"
)

// World owns every object by id. Parent and child links are ids, never pointers.
//
// A World is not safe for concurrent use. Mutate it between frames only.
type World struct {
	objects map[ID]*Object
	roots   []ID
	nextID  ID
	log     *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// New creates an empty world.
func New(opts ...Option) *World {
	w := &World{
		objects: make(map[ID]*Object),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Spawn stores obj as a new root and returns its id.
func (w *World) Spawn(obj Object) ID {
	id := w.store(obj)
	w.roots = append(w.roots, id)
	w.log.Debug("spawned root",
		zap.Uint64("id", uint64(id)),
		zap.String("name", obj.Name))
	return id
}

// SpawnChild stores obj under parent and returns its id.
// A parent that is not alive returns ErrDanglingReference; no id is consumed.
func (w *World) SpawnChild(parent ID, obj Object) (ID, error) {
	p, ok := w.objects[parent]
	if !ok {
		return 0, fmt.Errorf("%w: parent %d", ErrDanglingReference, parent)
	}
	id := w.store(obj)
	child := w.objects[id]
	child.parent, child.hasParent = parent, true
	p.children = append(p.children, id)
	w.log.Debug("spawned child",
		zap.Uint64("id", uint64(id)),
		zap.Uint64("parent", uint64(parent)),
		zap.String("name", obj.Name))
	return id, nil
}

func (w *World) store(obj Object) ID {
	id := w.nextID
	w.nextID++
	obj.parent, obj.hasParent = 0, false
	obj.children = nil
	w.objects[id] = &obj
	return id
}

// Delete removes id and its whole subtree. Unknown ids are ignored.
func (w *World) Delete(id ID) {
	obj, ok := w.objects[id]
	if !ok {
		return
	}
	if obj.hasParent {
		if p, ok := w.objects[obj.parent]; ok {
			p.children = slices.DeleteFunc(p.children, func(c ID) bool { return c == id })
		}
	} else {
		w.roots = slices.DeleteFunc(w.roots, func(r ID) bool { return r == id })
	}
	n := w.remove(id)
	w.log.Debug("deleted",
		zap.Uint64("id", uint64(id)),
		zap.Int("removed", n))
}

func (w *World) remove(id ID) int {
	obj, ok := w.objects[id]
	if !ok {
		return 0
	}
	delete(w.objects, id)
	n := 1
	for _, c := range obj.children {
		n += w.remove(c)
	}
	return n
}

// Get returns the live object for in-place mutation.
func (w *World) Get(id ID) (*Object, error) {
	obj, ok := w.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return obj, nil
}

// Contains reports whether id is alive.
func (w *World) Contains(id ID) bool {
	_, ok := w.objects[id]
	return ok
}

// Len returns the number of live objects.
func (w *World) Len() int {
	return len(w.objects)
}

// Roots returns a copy of the root ids in insertion order.
func (w *World) Roots() []ID {
	return slices.Clone(w.roots)
}

// Children returns a copy of the child ids of id.
func (w *World) Children(id ID) ([]ID, error) {
	obj, err := w.Get(id)
	if err != nil {
		return nil, err
	}
	return obj.Children(), nil
}

// IDs returns every live id in ascending order.
func (w *World) IDs() []ID {
	ids := make([]ID, 0, len(w.objects))
	for id := range w.objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// WalkFunc is called for each object with its transform composed from the root.
type WalkFunc func(id ID, obj *Object, world transform.Transform) error

// Walk visits every reachable object depth-first, parents before children and
// siblings in insertion order. Returning an error stops the walk.
func (w *World) Walk(fn WalkFunc) error {
	for _, id := range w.roots {
		if err := w.walk(id, transform.Identity(), fn); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) walk(id ID, parent transform.Transform, fn WalkFunc) error {
	obj, ok := w.objects[id]
	if !ok {
		return nil
	}
	combined := transform.Combine(parent, obj.Transform)
	if err := fn(id, obj, combined); err != nil {
		return err
	}
	for _, c := range obj.children {
		if err := w.walk(c, combined, fn); err != nil {
			return err
		}
	}
	return nil
}

// Flatten appends the world-space geometry of every reachable object to b.
// b is not cleared first.
func (w *World) Flatten(b *mesh.Builder) error {
	start, startIdx := b.VertexCount(), b.IndexCount()
	err := w.Walk(func(id ID, obj *Object, t transform.Transform) error {
		if obj.Geometry == nil {
			return nil
		}
		if err := geometry.Generate(obj.Geometry, t, obj.Color, b); err != nil {
			return fmt.Errorf("object %d (%s): %w", id, obj.Name, err)
		}
		return nil
	})
	if err != nil {
		b.Truncate(start, startIdx)
		return err
	}
	w.log.Debug("flattened world",
		zap.Int("objects", len(w.objects)),
		zap.Int("vertices", b.VertexCount()-start))
	return nil
}
