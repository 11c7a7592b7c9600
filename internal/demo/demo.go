// Package demo builds the sample scene shown by the viewer and measured by meshstat.
package demo

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/timer"
	"github.com/Faultbox/scenekit/internal/engine/transform"
	"github.com/Faultbox/scenekit/internal/engine/world"
)

// Animation settings.
const (
	SpinSpeed     float32 = 45  // degrees per second
	PulseInterval float32 = 0.5 // seconds between beacon color flips
)

var (
	beaconOn  = mesh.ColorRed
	beaconOff = mesh.RGBA(80, 20, 20, 255)
)

// Scene holds the ids of the demo objects that are animated or referenced.
type Scene struct {
	Ground  world.ID
	Spinner world.ID // group rotating about Y
	Beacon  world.ID // sphere on top of the spinner's capsule

	pulse     *timer.Timer
	beaconLit bool
}

// ShapeOf returns a unit-sized shape of the given kind.
func ShapeOf(k geometry.Kind, subdivisions int) (geometry.Shape, error) {
	switch k {
	case geometry.KindBox:
		return geometry.Cube(1), nil
	case geometry.KindPlane:
		return geometry.Plane{Size: 1}, nil
	case geometry.KindPyramid:
		return geometry.Pyramid{BaseSize: 1, Height: 1}, nil
	case geometry.KindCapsule:
		return geometry.Capsule{Radius: 0.5, Height: 1, Subdivisions: subdivisions}, nil
	case geometry.KindSphere:
		return geometry.Sphere{Radius: 0.5, Subdivisions: subdivisions}, nil
	case geometry.KindTriangle:
		return geometry.Triangle{Base: 1, Height: 1}, nil
	case geometry.KindRectangle:
		return geometry.Square(1), nil
	}
	return nil, fmt.Errorf("%w: %s", geometry.ErrUnknownShape, k)
}

// Build spawns the demo scene into w. Round shapes use the given subdivisions.
func Build(w *world.World, subdivisions int) (*Scene, error) {
	if subdivisions < 1 {
		return nil, fmt.Errorf("%w: subdivisions %d", geometry.ErrInvalidShape, subdivisions)
	}
	s := &Scene{pulse: timer.New(PulseInterval), beaconLit: true}

	s.Ground = w.Spawn(world.NewObject("ground", geometry.Plane{Size: 20}, mesh.ColorGray))

	crate := world.NewObject("crate", geometry.Box{Width: 2, Height: 1, Depth: 1}, mesh.ColorOrange)
	crate.Transform.Position.X, crate.Transform.Position.Y = -3, 0.5
	w.Spawn(crate)

	pyramid := world.NewObject("pyramid", geometry.Pyramid{BaseSize: 1.5, Height: 2}, mesh.ColorYellow)
	pyramid.Transform.Position.X, pyramid.Transform.Position.Y = 3, 1
	w.Spawn(pyramid)

	globe := world.NewObject("globe", geometry.Sphere{Radius: 1, Subdivisions: subdivisions}, mesh.ColorBlue)
	globe.Transform.Position.Y, globe.Transform.Position.Z = 1, -3
	w.Spawn(globe)

	// Flat shapes face +Z, towards the default camera.
	sign := w.Spawn(withPosition(world.NewGroup("sign"), 0, 0, -6))
	for _, child := range []world.Object{
		withPosition(world.NewObject("triangle", geometry.Triangle{Base: 1.5, Height: 1.5}, mesh.ColorGreen), -2, 1, 0),
		withPosition(world.NewObject("rectangle", geometry.Rectangle{Width: 2, Height: 1}, mesh.ColorWhite), 0, 1, 0),
		withPosition(world.NewObject("square", geometry.Square(1), mesh.ColorRed), 2, 1, 0),
	} {
		if _, err := w.SpawnChild(sign, child); err != nil {
			return nil, err
		}
	}

	// Spinner: group -> (capsule -> beacon, cube).
	s.Spinner = w.Spawn(withPosition(world.NewGroup("spinner"), 0, 2.5, 0))
	arm := withPosition(world.NewObject("arm",
		geometry.Capsule{Radius: 0.3, Height: 0.8, Subdivisions: subdivisions}, mesh.ColorGreen), 2, 0, 0)
	armID, err := w.SpawnChild(s.Spinner, arm)
	if err != nil {
		return nil, err
	}
	beacon := withPosition(world.NewObject("beacon",
		geometry.Sphere{Radius: 0.25, Subdivisions: subdivisions}, beaconOn), 0, 1, 0)
	if s.Beacon, err = w.SpawnChild(armID, beacon); err != nil {
		return nil, err
	}
	weight := withPosition(world.NewObject("weight", geometry.Cube(0.6), mesh.ColorBlue), -2, 0, 0)
	if _, err := w.SpawnChild(s.Spinner, weight); err != nil {
		return nil, err
	}
	return s, nil
}

func withPosition(obj world.Object, x, y, z float32) world.Object {
	obj.Transform = transform.FromPosition(x, y, z)
	return obj
}

// Update advances the animation by dt seconds: the spinner turns about Y and
// the beacon blinks.
func (s *Scene) Update(w *world.World, dt float32) error {
	spinner, err := w.Get(s.Spinner)
	if err != nil {
		return err
	}
	spinner.Transform.Rotation.Y = math32.Mod(spinner.Transform.Rotation.Y+SpinSpeed*dt, 360)

	s.pulse.Update(dt)
	if !s.pulse.Finished() {
		return nil
	}
	s.pulse.Reset()
	s.beaconLit = !s.beaconLit

	beacon, err := w.Get(s.Beacon)
	if err != nil {
		return err
	}
	beacon.Color = beaconOff
	if s.beaconLit {
		beacon.Color = beaconOn
	}
	return nil
}
