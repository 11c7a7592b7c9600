// Package renderer uploads flattened scene buffers to OpenGL and draws them.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/renderer/residency"
	"github.com/Faultbox/scenekit/internal/engine/shader"
	"github.com/Faultbox/scenekit/internal/engine/viewport"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Viewport   viewport.Viewport
	ClearColor mesh.Color
	Logger     *zap.Logger
}

// Renderer owns the GPU copy of one mesh.Builder and a small line buffer.
//
// The projection produces depth in [0, 1]. GL 4.1 clips to [-1, 1], so only
// the upper half of the depth buffer is used.
type Renderer struct {
	config Config
	log    *zap.Logger

	program  uint32
	viewProj int32

	// Scene buffers
	vao, vbo, ebo uint32
	resident      *residency.Tracker

	// Lines (ground grid, selection bounds)
	lineVAO, lineVBO uint32
	lineCap          int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      cfg.Logger,
		resident: residency.NewTracker(),
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c.R, c.G, c.B, c.A)

	var err error
	r.program, err = shader.CompileProgram(shader.FlatColorVertex, shader.FlatColorFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.viewProj, err = shader.Uniform(r.program, "uViewProj")
	if err != nil {
		r.Close()
		return nil, err
	}

	r.vao, r.vbo = newVertexArray(r.resident.VertexCap)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.resident.IndexCap*4, nil, gl.DYNAMIC_DRAW)
	gl.BindVertexArray(0)

	r.lineCap = 24
	r.lineVAO, r.lineVBO = newVertexArray(r.lineCap)

	r.Resize(cfg.Viewport)

	r.log.Debug("renderer created",
		zap.Uint32("program", r.program),
		zap.Uint32("vao", r.vao),
		zap.Int("vertex_capacity", r.resident.VertexCap),
		zap.Int("index_capacity", r.resident.IndexCap),
	)
	return r, nil
}

// newVertexArray creates a VAO with a dynamic VBO sized for n vertices and the
// position/color attribute layout of mesh.Vertex.
func newVertexArray(n int) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, n*mesh.VertexStride, nil, gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(mesh.VertexStride), 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(mesh.VertexStride), uintptr(mesh.ColorOffset))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, vao := range []*uint32{&r.vao, &r.lineVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, buf := range []*uint32{&r.vbo, &r.ebo, &r.lineVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize updates the GL viewport. Degenerate sizes (minimized windows) are ignored.
func (r *Renderer) Resize(vp viewport.Viewport) {
	if err := vp.Validate(); err != nil {
		r.log.Debug("ignoring resize", zap.Error(err))
		return
	}
	r.config.Viewport = vp
	gl.Viewport(0, 0, int32(vp.Width), int32(vp.Height))
	r.log.Debug("renderer resized",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
	)
}

// Upload makes the builder's content resident. Unchanged content is skipped;
// buffers grow by 1.5x when too small.
func (r *Renderer) Upload(b *mesh.Builder) {
	action := r.resident.Plan(b.VertexCount(), b.IndexCount(), b.Checksum())
	if !action.Upload {
		return
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if action.ReallocVertices {
		gl.BufferData(gl.ARRAY_BUFFER, r.resident.VertexCap*mesh.VertexStride, nil, gl.DYNAMIC_DRAW)
		r.log.Debug("vertex buffer grown", zap.Int("capacity", r.resident.VertexCap))
	}
	if action.ReallocIndices {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.resident.IndexCap*4, nil, gl.DYNAMIC_DRAW)
		r.log.Debug("index buffer grown", zap.Int("capacity", r.resident.IndexCap))
	}
	if n := b.VertexCount(); n > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*mesh.VertexStride, unsafe.Pointer(&b.Vertices[0]))
	}
	if n := b.IndexCount(); n > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, n*4, unsafe.Pointer(&b.Indices[0]))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draw draws the resident scene with the given view-projection matrix.
func (r *Renderer) Draw(viewProj math.Mat4) {
	if r.resident.Indices == 0 {
		return
	}
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.viewProj, 1, false, viewProj.Ptr())
	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(r.resident.Indices), gl.UNSIGNED_INT, 0)
}

// DrawLines draws vertex pairs as depth-tested line segments, so the scene
// hides them where it is in front.
func (r *Renderer) DrawLines(vertices []mesh.Vertex, viewProj math.Mat4) {
	r.drawLines(vertices, viewProj, true)
}

// DrawOverlay draws vertex pairs as line segments on top of everything
// drawn so far.
func (r *Renderer) DrawOverlay(vertices []mesh.Vertex, viewProj math.Mat4) {
	r.drawLines(vertices, viewProj, false)
}

func (r *Renderer) drawLines(vertices []mesh.Vertex, viewProj math.Mat4, depthTest bool) {
	if len(vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(vertices) > r.lineCap {
		r.lineCap = residency.Grow(r.lineCap, len(vertices))
		gl.BufferData(gl.ARRAY_BUFFER, r.lineCap*mesh.VertexStride, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*mesh.VertexStride, unsafe.Pointer(&vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.viewProj, 1, false, viewProj.Ptr())
	if !depthTest {
		gl.Disable(gl.DEPTH_TEST)
		defer gl.Enable(gl.DEPTH_TEST)
	}
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	vp := r.config.Viewport
	if vp.Validate() != nil {
		return nil, 0, 0
	}
	pixels = make([]byte, vp.Width*vp.Height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(vp.Width), int32(vp.Height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, vp.Width, vp.Height
}
