package viewer

import (
	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/engine/camera"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Field of view limits for wheel zoom, in degrees.
const (
	MinFOV  float32 = 20
	MaxFOV  float32 = 90
	zoomFOV float32 = 2 // degrees per wheel notch
)

// Intent is one frame of user input, independent of the input backend.
type Intent struct {
	Forward float32   // -1..1, along the view direction
	Right   float32   // -1..1, strafe
	Up      float32   // -1..1, along the camera's up vector
	Look    math.Vec2 // pointer delta in pixels
	Zoom    float32   // wheel notches, positive zooms in
}

// Controls turns intents into free-fly camera motion.
type Controls struct {
	MoveSpeed   float32 // units per second
	Sensitivity float32 // degrees per pixel
	InvertY     bool
}

// NewControls reads the input tuning from the camera config.
func NewControls(cfg config.CameraConfig) Controls {
	return Controls{
		MoveSpeed:   cfg.MoveSpeed,
		Sensitivity: cfg.Sensitivity,
		InvertY:     cfg.InvertY,
	}
}

// Look rotates the camera by the pointer delta. Moving the pointer right turns
// towards the camera's right vector; moving it down pitches down.
func (c Controls) Look(cam *camera.Camera, delta math.Vec2) {
	if delta.IsZero() {
		return
	}
	// Rotate subtracts yaw, and yaw grows towards the right vector.
	cam.Rotate(-delta.X*c.Sensitivity, delta.Y*c.Sensitivity, c.InvertY)
}

// Move translates the camera for dt seconds. Wheel zoom is left to Zoom.
func (c Controls) Move(cam *camera.Camera, in Intent, dt float32) {
	forward, right := cam.Directions()
	step := c.MoveSpeed * dt
	if in.Forward != 0 {
		cam.MoveBy(forward, in.Forward*step)
	}
	if in.Right != 0 {
		cam.MoveBy(right, in.Right*step)
	}
	if in.Up != 0 {
		cam.MoveBy(cam.Up.Normalize(), in.Up*step)
	}
}

// Zoom narrows the field of view for positive notches, within [MinFOV, MaxFOV].
func (c Controls) Zoom(cam *camera.Camera, notches float32) {
	if notches == 0 {
		return
	}
	fov := cam.FOV - notches*zoomFOV
	cam.FOV = max(MinFOV, min(MaxFOV, fov))
}
