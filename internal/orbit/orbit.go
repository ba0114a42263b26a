// Package orbit drives the hosts' orbit camera with harmonica springs so view
// changes ease in instead of jumping.
package orbit

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/render"
)

// Default view.
const (
	DefaultYaw      = 0.0
	DefaultPitch    = 0.25
	DefaultDistance = 7.0

	minDistance = 2.0
	maxDistance = 30.0
	maxPitch    = 1.4
)

// Axis is one spring-animated value chasing its target.
type Axis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newAxis(fps int, v float64) Axis {
	return Axis{
		Position: v,
		Target:   v,
		// Frequency 6, critically damped: quick settle without overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the spring one frame.
func (a *Axis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// Settled reports whether the axis is at rest on its target.
func (a *Axis) Settled() bool {
	return math.Abs(a.Position-a.Target) < 1e-4 && math.Abs(a.velocity) < 1e-4
}

// Orbit is a camera orbiting the origin.
type Orbit struct {
	Yaw, Pitch, Distance Axis
	fps                  int
}

// New returns an orbit at the default view animating at fps frames per
// second.
func New(fps int) *Orbit {
	o := &Orbit{fps: max(fps, 1)}
	o.Reset()
	return o
}

// Reset snaps back to the default view.
func (o *Orbit) Reset() {
	o.Yaw = newAxis(o.fps, DefaultYaw)
	o.Pitch = newAxis(o.fps, DefaultPitch)
	o.Distance = newAxis(o.fps, DefaultDistance)
}

// Turn moves the yaw and pitch targets by the given radians.
func (o *Orbit) Turn(dyaw, dpitch float64) {
	o.Yaw.Target += dyaw
	o.Pitch.Target = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch.Target+dpitch))
}

// Zoom moves the distance target by d world units.
func (o *Orbit) Zoom(d float64) {
	o.Distance.Target = math.Max(minDistance, math.Min(maxDistance, o.Distance.Target+d))
}

// Update advances every axis one frame and reports whether the view is
// still moving.
func (o *Orbit) Update() bool {
	o.Yaw.Update()
	o.Pitch.Update()
	o.Distance.Update()
	return !(o.Yaw.Settled() && o.Pitch.Settled() && o.Distance.Settled())
}

// Apply positions cam on the orbit.
func (o *Orbit) Apply(cam *render.Camera) {
	cam.Orbit(math3d.Zero3(), o.Yaw.Position, o.Pitch.Position, o.Distance.Position)
}
