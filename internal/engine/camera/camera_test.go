package camera

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenekit/internal/engine/viewport"
	"github.com/Faultbox/scenekit/pkg/math"
)

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqual(got, 1e-4), "want %v, got %v", want, got)
}

func TestDefaultCamera(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, math.V3(0, 2, 5), c.Eye)
	assert.Equal(t, float32(45), c.FOV)
	assert.Equal(t, float32(1000), c.ZFar)

	vp, err := c.ViewProjection()
	require.NoError(t, err)

	p, err := vp.ProjectPoint(c.Target)
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.Greater(t, p.Z, float32(0))
	assert.Less(t, p.Z, float32(1))
}

func TestViewProjectionIsProjectionTimesView(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	view, err := c.View()
	require.NoError(t, err)
	vp, err := c.ViewProjection()
	require.NoError(t, err)
	assert.Equal(t, c.Projection().Mul(view), vp)
}

func TestNewInvalid(t *testing.T) {
	cases := map[string]func(*Config){
		"zero fov":       func(c *Config) { c.FOV = 0 },
		"straight fov":   func(c *Config) { c.FOV = 180 },
		"zero aspect":    func(c *Config) { c.Aspect = 0 },
		"zero near":      func(c *Config) { c.ZNear = 0 },
		"near past far":  func(c *Config) { c.ZNear, c.ZFar = 10, 5 },
		"eye on target":  func(c *Config) { c.Target = c.Eye },
		"zero up vector": func(c *Config) { c.Up = math.Vec3{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestAngleDriven(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AngleDriven = true
	cfg.Eye = math.V3(1, 1, 1)
	cfg.Target = cfg.Eye
	cfg.Yaw, cfg.Pitch = 0, 0

	c, err := New(cfg)
	require.NoError(t, err)
	assertVec(t, math.V3(2, 1, 1), c.Target)
}

func TestAnglesFromTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Eye = math.V3(0, 0, 0)
	cfg.Target = math.V3(0, 0, 3)

	c, err := New(cfg)
	require.NoError(t, err)
	assert.InDelta(t, 90, c.Yaw, 1e-4)
	assert.InDelta(t, 0, c.Pitch, 1e-4)

	// A zero rotation keeps the view direction.
	c.Rotate(0, 0, false)
	forward, _ := c.Directions()
	assertVec(t, math.V3(0, 0, 1), forward)
}

func TestRotateSigns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AngleDriven = true
	c, err := New(cfg)
	require.NoError(t, err)

	c.Rotate(-90, 0, false)
	assert.InDelta(t, 90, c.Yaw, 1e-4)
	assertVec(t, c.Eye.Add(math.V3(0, 0, 1)), c.Target)

	c.Rotate(-90, 10, true)
	assert.InDelta(t, 0, c.Yaw, 1e-4)
	assert.InDelta(t, 10, c.Pitch, 1e-4)
}

func TestRotateClampsPitch(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	c.Rotate(0, -1000, false)
	assert.Equal(t, MaxPitch, c.Pitch)
	c.Rotate(0, -1000, false)
	assert.Equal(t, MaxPitch, c.Pitch)

	c.Rotate(0, 1000, false)
	assert.Equal(t, MinPitch, c.Pitch)

	c.Rotate(0, 5000, true)
	assert.Equal(t, MaxPitch, c.Pitch)
}

func TestRotatePitchAlwaysInRange(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		dx := (rng.Float32() - 0.5) * 720
		dy := (rng.Float32() - 0.5) * 720
		c.Rotate(dx, dy, i%2 == 0)

		require.GreaterOrEqual(t, c.Pitch, MinPitch)
		require.LessOrEqual(t, c.Pitch, MaxPitch)

		_, err := c.ViewProjection()
		require.NoError(t, err)
	}
}

func TestRotateIgnoresNonFinite(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	cases := map[string][2]float32{
		"nan yaw":       {nan, 0},
		"nan pitch":     {0, nan},
		"inf yaw":       {inf, 0},
		"neg inf yaw":   {-inf, 0},
		"inf pitch":     {0, inf},
		"neg inf pitch": {0, -inf},
		"both":          {nan, -inf},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := New(DefaultConfig())
			require.NoError(t, err)
			yaw, pitch := c.Yaw, c.Pitch

			c.Rotate(d[0], d[1], false)
			c.Rotate(d[0], d[1], true)

			assert.Equal(t, yaw, c.Yaw)
			assert.Equal(t, pitch, c.Pitch)
			assertVec(t, c.Eye.Add(Direction(c.Yaw, c.Pitch)), c.Target)

			_, err = c.ViewProjection()
			require.NoError(t, err)
		})
	}
}

func TestDirections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Eye = math.V3(0, 0, -5)
	c, err := New(cfg)
	require.NoError(t, err)

	forward, right := c.Directions()
	assertVec(t, math.V3(0, 0, 1), forward)
	assertVec(t, math.V3(-1, 0, 0), right)
}

func TestDirectionsParallelUp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Eye = math.V3(0, 10, 0)
	cfg.Target = math.Vec3{}
	c, err := New(cfg)
	require.NoError(t, err)

	forward, right := c.Directions()
	assertVec(t, math.V3(0, -1, 0), forward)
	assertVec(t, math.V3(1, 0, 0), right)
}

func TestMoveBy(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	before, _ := c.Directions()

	c.MoveBy(math.V3(1, 0, 0), 2.5)
	assertVec(t, math.V3(2.5, 2, 5), c.Eye)
	assertVec(t, math.V3(2.5, 0, 0), c.Target)

	after, _ := c.Directions()
	assertVec(t, before, after)
}

func TestSetAspect(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, c.SetAspect(viewport.New(1600, 900)))
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)

	err = c.SetAspect(viewport.New(1600, 0))
	assert.ErrorIs(t, err, viewport.ErrDegenerate)
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)
}

func TestViewProjectionCollapsed(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	c.Target = c.Eye

	_, err = c.ViewProjection()
	assert.ErrorIs(t, err, math.ErrDegenerateGeometry)
}

func TestDirectionAnglesRoundTrip(t *testing.T) {
	for _, a := range [][2]float32{{0, 0}, {45, 30}, {-120, -60}, {170, 89}} {
		yaw, pitch := Angles(Direction(a[0], a[1]))
		assert.InDelta(t, a[0], yaw, 1e-3)
		assert.InDelta(t, a[1], pitch, 1e-2)
	}
}
