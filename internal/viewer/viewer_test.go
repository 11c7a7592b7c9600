package viewer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/world"
)

func TestSelectionBox(t *testing.T) {
	w := world.New()
	id := w.Spawn(world.NewObject("cube", geometry.Cube(1), mesh.ColorRed))
	v := &Viewer{world: w}

	assert.Nil(t, v.selectionBox())

	v.selected, v.hasSelect = id, true
	box := v.selectionBox()
	require.Len(t, box, 24)
	for _, vert := range box {
		// The grid is drawn separately and never mixed into the box.
		assert.Equal(t, selectionColor.RGB(), vert.Color)
		for _, c := range vert.Position {
			assert.InDelta(t, 0.52, math32.Abs(c), 1e-5)
		}
	}

	w.Delete(id)
	assert.Nil(t, v.selectionBox())
	assert.False(t, v.hasSelect)
}
