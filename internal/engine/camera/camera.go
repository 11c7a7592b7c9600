// Package camera provides the perspective camera used to view a world.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/internal/engine/viewport"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Pitch limits in degrees. Looking straight up or down would make the
// forward vector parallel to Up.
const (
	MinPitch float32 = -89
	MaxPitch float32 = 89
)

// Config describes a camera. Use DefaultConfig as a starting point.
type Config struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	Aspect float32 // width / height
	FOV    float32 // vertical field of view in degrees
	ZNear  float32
	ZFar   float32

	// When AngleDriven is set, Target is derived from Eye, Yaw and Pitch
	// (degrees). Otherwise Yaw and Pitch are derived from Eye and Target.
	AngleDriven bool
	Yaw         float32
	Pitch       float32
}

// DefaultConfig returns a camera 5 units back and 2 up, looking at the origin.
func DefaultConfig() Config {
	return Config{
		Eye:    math.V3(0, 2, 5),
		Target: math.Vec3{},
		Up:     math.V3(0, 1, 0),
		Aspect: 1,
		FOV:    45,
		ZNear:  0.1,
		ZFar:   1000,
	}
}

// Validate checks every field New relies on.
func (c Config) Validate() error {
	switch {
	case !(c.FOV > 0 && c.FOV < 180):
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidConfig, c.FOV)
	case !(c.Aspect > 0) || math32.IsInf(c.Aspect, 0):
		return fmt.Errorf("%w: aspect %v", ErrInvalidConfig, c.Aspect)
	case !(c.ZNear > 0 && c.ZNear < c.ZFar) || math32.IsInf(c.ZFar, 0):
		return fmt.Errorf("%w: clip planes %v..%v", ErrInvalidConfig, c.ZNear, c.ZFar)
	case c.Up.LengthSquared() < math.Epsilon:
		return fmt.Errorf("%w: zero up vector", ErrInvalidConfig)
	case !c.AngleDriven && c.Target.Sub(c.Eye).LengthSquared() < math.Epsilon:
		return fmt.Errorf("%w: eye equals target", ErrInvalidConfig)
	}
	return nil
}

// Camera holds eye/target/up and projection parameters.
// Fields may be changed directly between frames.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	Aspect float32
	FOV    float32
	ZNear  float32
	ZFar   float32

	// Orientation in degrees, kept in sync by Rotate.
	Yaw   float32
	Pitch float32
}

// New validates cfg and returns a camera.
func New(cfg Config) (*Camera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Camera{
		Eye:    cfg.Eye,
		Target: cfg.Target,
		Up:     cfg.Up,
		Aspect: cfg.Aspect,
		FOV:    cfg.FOV,
		ZNear:  cfg.ZNear,
		ZFar:   cfg.ZFar,
	}
	if cfg.AngleDriven {
		c.Yaw = cfg.Yaw
		c.Pitch = clampPitch(cfg.Pitch)
		c.Target = c.Eye.Add(Direction(c.Yaw, c.Pitch))
	} else {
		c.Yaw, c.Pitch = Angles(c.Target.Sub(c.Eye))
	}
	return c, nil
}

// View returns the look-at matrix.
func (c *Camera) View() (math.Mat4, error) {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() math.Mat4 {
	return math.Perspective(c.FOV, c.Aspect, c.ZNear, c.ZFar)
}

// ViewProjection returns Projection * View. It fails only when Eye and Target
// have collapsed onto each other.
func (c *Camera) ViewProjection() (math.Mat4, error) {
	view, err := c.View()
	if err != nil {
		return math.Identity(), fmt.Errorf("camera view: %w", err)
	}
	return c.Projection().Mul(view), nil
}

// SetAspect updates the aspect ratio from a viewport. A degenerate viewport
// leaves the camera unchanged and returns the error.
func (c *Camera) SetAspect(vp viewport.Viewport) error {
	aspect, err := vp.AspectRatio()
	if err != nil {
		return err
	}
	c.Aspect = aspect
	return nil
}

// Rotate turns the camera by dx (yaw) and dy (pitch) degrees. Deltas are
// subtracted unless inverted is set. Pitch is clamped to [MinPitch, MaxPitch].
func (c *Camera) Rotate(dx, dy float32, inverted bool) {
	if !inverted {
		dx, dy = -dx, -dy
	}
	dx, dy = finite(dx), finite(dy)
	c.Yaw = math32.Mod(c.Yaw+dx, 360)
	c.Pitch = clampPitch(c.Pitch + dy)
	c.Target = c.Eye.Add(Direction(c.Yaw, c.Pitch))
}

// Directions returns the unit forward and right vectors. Right falls back to
// a fixed axis when forward is parallel to Up.
func (c *Camera) Directions() (forward, right math.Vec3) {
	forward = c.Target.Sub(c.Eye).Normalize()
	right = forward.Cross(c.Up)
	if right.LengthSquared() < math.Epsilon {
		return forward, math.FallbackRight(forward)
	}
	return forward, right.Normalize()
}

// MoveBy translates Eye and Target by dir*amount, so the view direction is kept.
func (c *Camera) MoveBy(dir math.Vec3, amount float32) {
	delta := dir.Scale(amount)
	c.Eye = c.Eye.Add(delta)
	c.Target = c.Target.Add(delta)
}

// Direction converts yaw and pitch (degrees) to a unit vector.
func Direction(yaw, pitch float32) math.Vec3 {
	y, p := math.Radians(yaw), math.Radians(pitch)
	cp := math32.Cos(p)
	return math.V3(math32.Cos(y)*cp, math32.Sin(p), math32.Sin(y)*cp)
}

// Angles is the inverse of Direction for a non-zero vector. The pitch is
// clamped to the camera limits.
func Angles(dir math.Vec3) (yaw, pitch float32) {
	d := dir.Normalize()
	yaw = math32.Atan2(d.Z, d.X) * 180 / math32.Pi
	pitch = math32.Asin(math32.Max(-1, math32.Min(1, d.Y))) * 180 / math32.Pi
	return yaw, clampPitch(pitch)
}

// finite maps NaN and infinite deltas to zero.
func finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampPitch(p float32) float32 {
	if p < MinPitch {
		return MinPitch
	}
	if p > MaxPitch {
		return MaxPitch
	}
	return p
}
