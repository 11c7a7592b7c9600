// Package residency decides when GPU vertex and index buffers must be
// reallocated or refilled. It has no GL dependency.
package residency

// Initial buffer capacities, in elements.
const (
	InitialVertices = 128
	InitialIndices  = 1024
)

// Grow returns the capacity to allocate for need elements: 1.5x the current
// capacity, or need itself when that is larger.
func Grow(current, need int) int {
	next := current + current/2
	if next < need {
		next = need
	}
	return next
}

// Action says what an upload has to do.
type Action struct {
	ReallocVertices bool
	ReallocIndices  bool
	Upload          bool
}

// Tracker remembers what is resident on the GPU.
type Tracker struct {
	VertexCap int
	IndexCap  int
	Indices   int // number of indices to draw

	checksum uint64
	uploaded bool
}

// NewTracker returns a tracker for freshly allocated initial buffers.
func NewTracker() *Tracker {
	return &Tracker{VertexCap: InitialVertices, IndexCap: InitialIndices}
}

// Plan records a frame's content and returns the work required to make it
// resident. Content with the checksum of the last upload is skipped.
func (t *Tracker) Plan(vertices, indices int, checksum uint64) Action {
	if t.uploaded && checksum == t.checksum && indices == t.Indices {
		return Action{}
	}

	var a Action
	if vertices > t.VertexCap {
		t.VertexCap = Grow(t.VertexCap, vertices)
		a.ReallocVertices = true
	}
	if indices > t.IndexCap {
		t.IndexCap = Grow(t.IndexCap, indices)
		a.ReallocIndices = true
	}
	a.Upload = true

	t.Indices = indices
	t.checksum = checksum
	t.uploaded = true
	return a
}

// Invalidate forces the next Plan to upload.
func (t *Tracker) Invalidate() {
	t.uploaded = false
}
