package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/engine/camera"
	"github.com/Faultbox/scenekit/pkg/math"
)

func newCamera(t *testing.T) *camera.Camera {
	t.Helper()
	cfg := camera.DefaultConfig()
	cfg.Eye = math.V3(0, 0, 5)
	cfg.Target = math.Vec3{}
	cam, err := camera.New(cfg)
	require.NoError(t, err)
	return cam
}

func TestNewControls(t *testing.T) {
	c := NewControls(config.Default().Camera)
	assert.Equal(t, float32(4), c.MoveSpeed)
	assert.InDelta(t, 0.15, c.Sensitivity, 1e-6)
	assert.False(t, c.InvertY)
}

func TestMoveForwardAndStrafe(t *testing.T) {
	cam := newCamera(t)
	c := Controls{MoveSpeed: 2}

	c.Move(cam, Intent{Forward: 1}, 0.5)
	assert.True(t, cam.Eye.ApproxEqual(math.V3(0, 0, 4), 1e-5), "eye %v", cam.Eye)

	_, right := cam.Directions()
	c.Move(cam, Intent{Right: -1}, 1)
	assert.True(t, cam.Eye.ApproxEqual(math.V3(0, 0, 4).Sub(right.Scale(2)), 1e-5), "eye %v", cam.Eye)

	c.Move(cam, Intent{Up: 1}, 1)
	assert.InDelta(t, 2, cam.Eye.Y, 1e-5)

	// Moving keeps the view direction.
	forward, _ := cam.Directions()
	assert.True(t, forward.ApproxEqual(math.V3(0, 0, -1), 1e-5))
}

func TestMoveLeavesFOV(t *testing.T) {
	cam := newCamera(t)
	fov := cam.FOV

	Controls{MoveSpeed: 2}.Move(cam, Intent{Zoom: 3}, 1)
	assert.Equal(t, fov, cam.FOV)
	assert.Equal(t, math.V3(0, 0, 5), cam.Eye)
}

func TestLookTurnsTowardsRight(t *testing.T) {
	cam := newCamera(t)
	_, right := cam.Directions()
	c := Controls{Sensitivity: 0.5}

	c.Look(cam, math.Vec2{X: 20})
	forward, _ := cam.Directions()
	assert.Greater(t, forward.Dot(right), float32(0), "forward %v should lean towards %v", forward, right)
}

func TestLookPitch(t *testing.T) {
	cam := newCamera(t)
	c := Controls{Sensitivity: 1}

	c.Look(cam, math.Vec2{Y: 10})
	assert.InDelta(t, -10, cam.Pitch, 1e-4, "pointer down looks down")

	c.InvertY = true
	c.Look(cam, math.Vec2{Y: 10})
	assert.InDelta(t, 0, cam.Pitch, 1e-4)
}

func TestLookIgnoresZeroDelta(t *testing.T) {
	cam := newCamera(t)
	before := *cam
	Controls{Sensitivity: 1}.Look(cam, math.Vec2{})
	assert.Equal(t, before, *cam)
}

func TestZoomClamps(t *testing.T) {
	cam := newCamera(t)
	c := Controls{}

	c.Zoom(cam, 5)
	assert.InDelta(t, 35, cam.FOV, 1e-5)
	c.Zoom(cam, 100)
	assert.Equal(t, MinFOV, cam.FOV)
	c.Zoom(cam, -100)
	assert.Equal(t, MaxFOV, cam.FOV)
}
