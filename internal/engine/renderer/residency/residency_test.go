package residency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrow(t *testing.T) {
	assert.Equal(t, 192, Grow(128, 129))
	assert.Equal(t, 500, Grow(128, 500))
	assert.Equal(t, 1, Grow(0, 1))
}

func TestPlanSkipsUnchanged(t *testing.T) {
	tr := NewTracker()

	first := tr.Plan(24, 36, 0xabc)
	assert.Equal(t, Action{Upload: true}, first)

	assert.Equal(t, Action{}, tr.Plan(24, 36, 0xabc))

	assert.True(t, tr.Plan(24, 36, 0xdef).Upload)
}

func TestPlanGrowsBuffers(t *testing.T) {
	tr := NewTracker()

	a := tr.Plan(200, 300, 1)
	assert.True(t, a.ReallocVertices)
	assert.False(t, a.ReallocIndices)
	assert.Equal(t, 200, tr.VertexCap)

	a = tr.Plan(250, 2000, 2)
	assert.True(t, a.ReallocVertices)
	assert.True(t, a.ReallocIndices)
	assert.Equal(t, 300, tr.VertexCap)
	assert.Equal(t, 2000, tr.IndexCap)
	assert.Equal(t, 2000, tr.Indices)

	// Shrinking content keeps the capacity.
	a = tr.Plan(10, 10, 3)
	assert.Equal(t, Action{Upload: true}, a)
	assert.Equal(t, 300, tr.VertexCap)
}

func TestInvalidate(t *testing.T) {
	tr := NewTracker()
	tr.Plan(4, 6, 9)
	tr.Invalidate()
	assert.True(t, tr.Plan(4, 6, 9).Upload)
}
