// Package viewer implements the interactive scene viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/demo"
	"github.com/Faultbox/scenekit/internal/engine/camera"
	"github.com/Faultbox/scenekit/internal/engine/debug"
	"github.com/Faultbox/scenekit/internal/engine/input"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/picking"
	"github.com/Faultbox/scenekit/internal/engine/renderer"
	"github.com/Faultbox/scenekit/internal/engine/timer"
	"github.com/Faultbox/scenekit/internal/engine/window"
	"github.com/Faultbox/scenekit/internal/engine/world"
	"github.com/Faultbox/scenekit/internal/logger"
)

var (
	clearColor     = mesh.RGBA(30, 30, 38, 255)
	gridColor      = mesh.RGBA(70, 70, 80, 255)
	selectionColor = mesh.ColorYellow
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera   *camera.Camera
	controls Controls
	step     *timer.FixedStep

	world   *world.World
	scene   *demo.Scene
	builder *mesh.Builder

	grid      []mesh.Vertex
	selected  world.ID
	hasSelect bool
	looking   bool
	shots     *debug.ScreenshotCapture
}

// New creates a new viewer: window, renderer, camera and demo scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		controls: NewControls(cfg.Camera),
		step:     timer.NewFixedStep(timer.FixedDelta),
		builder:  mesh.NewBuilder(),
		grid:     debug.GroundGrid(10, 1, 0.001, gridColor),
		shots:    debug.NewScreenshotCapture("screenshots", "scenekit"),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	camCfg, err := cfg.CameraConfig()
	if err != nil {
		return nil, err
	}
	v.camera, err = camera.New(camCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	v.world = world.New(world.WithLogger(logger.Named("world")))
	v.scene, err = demo.Build(v.world, cfg.Tessellation.Subdivisions)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		MinWidth:   config.MinWidth,
		MinHeight:  config.MinHeight,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Logger:     logger.Named("window"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Viewport:   v.window.Viewport(),
		ClearColor: clearColor,
		Logger:     logger.Named("renderer"),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := v.camera.SetAspect(v.window.Viewport()); err != nil {
		v.log.Warn("keeping configured aspect", zap.Error(err))
	}

	v.input = input.New()

	v.log.Info("viewer initialized", zap.Int("objects", v.world.Len()))
	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		screenshot := v.handleEvents()

		// 2. Update camera and scene
		if err := v.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if screenshot {
			v.saveScreenshot()
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("vertices", v.builder.VertexCount()),
			)
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.cfg.Window.Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents reacts to discrete events and reports whether a screenshot was requested.
func (v *Viewer) handleEvents() (screenshot bool) {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			vp := v.window.Viewport()
			v.renderer.Resize(vp)
			if err := v.camera.SetAspect(vp); err != nil {
				v.log.Debug("aspect unchanged", zap.Error(err))
			}
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F12:
				screenshot = true
			case sdl.SCANCODE_DELETE, sdl.SCANCODE_BACKSPACE:
				v.deleteSelection()
			}
		case input.EventMouseDown:
			switch event.Button {
			case input.ButtonLeft:
				v.pick(event.MouseX, event.MouseY)
			case input.ButtonRight:
				v.looking = !v.looking
				v.window.SetMouseCaptured(v.looking)
			}
		}
	}
	return screenshot
}

// intent samples the held keys and pointer state.
func (v *Viewer) intent() Intent {
	in := Intent{
		Forward: v.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
		Right:   v.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
		Up:      v.input.Axis(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE),
		Zoom:    v.input.Wheel(),
	}
	if v.looking {
		in.Look = v.input.MouseDelta()
	}
	return in
}

func (v *Viewer) update(dt float32) error {
	in := v.intent()
	v.controls.Look(v.camera, in.Look)
	v.controls.Zoom(v.camera, in.Zoom)

	for n := v.step.Advance(dt); n > 0; n-- {
		v.controls.Move(v.camera, in, v.step.Step)
		if v.scene == nil {
			continue
		}
		if err := v.scene.Update(v.world, v.step.Step); err != nil {
			return err
		}
	}
	return nil
}

func (v *Viewer) render() error {
	v.builder.Clear()
	if err := v.world.Flatten(v.builder); err != nil {
		return err
	}
	v.renderer.Upload(v.builder)

	v.renderer.Begin()
	defer v.renderer.End()

	viewProj, err := v.camera.ViewProjection()
	if err != nil {
		// Skip the frame; the next camera move recovers.
		v.log.Warn("skipping frame", zap.Error(err))
		return nil
	}
	v.renderer.Draw(viewProj)
	v.renderer.DrawLines(v.grid, viewProj)
	v.renderer.DrawOverlay(v.selectionBox(), viewProj)
	return nil
}

// selectionBox returns the wireframe around the selected object, or nil.
// A selection whose object is gone is cleared.
func (v *Viewer) selectionBox() []mesh.Vertex {
	if !v.hasSelect {
		return nil
	}
	bounds, err := picking.ObjectBounds(v.world, v.selected)
	if err != nil {
		v.hasSelect = false
		return nil
	}
	return debug.BoundsWireframe(bounds, selectionColor, 0.02)
}

func (v *Viewer) pick(x, y int) {
	viewProj, err := v.camera.ViewProjection()
	if err != nil {
		return
	}
	w, h := v.window.Size()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), viewProj.Inverse())

	hit, ok, err := picking.Pick(v.world, ray)
	if err != nil {
		v.log.Warn("pick failed", zap.Error(err))
		return
	}
	v.selected, v.hasSelect = hit.ID, ok
	if !ok {
		v.log.Debug("nothing picked")
		return
	}
	obj, err := v.world.Get(hit.ID)
	if err != nil {
		return
	}
	v.log.Info("selected",
		zap.Uint64("id", uint64(hit.ID)),
		zap.String("name", obj.Name),
		zap.Float32("distance", hit.Distance),
	)
}

func (v *Viewer) deleteSelection() {
	if !v.hasSelect {
		return
	}
	v.world.Delete(v.selected)
	v.hasSelect = false
	if v.scene != nil && (!v.world.Contains(v.scene.Spinner) || !v.world.Contains(v.scene.Beacon)) {
		// Animation targets are gone; the rest of the scene stays static.
		v.scene = nil
	}
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
