package scene

import (
	"github.com/taigrr/facepull/pkg/extrude"
	"github.com/taigrr/facepull/pkg/math3d"
)

// Pointer turns successive pointer rays into movement events. Movement is
// the difference between successive ray origins, or between successive
// picking-plane hits once a plane is set.
type Pointer struct {
	active   bool
	usePlane bool
	plane    math3d.Plane

	lastPoint  math3d.Vec3
	lastScreen math3d.Vec2
}

// Begin starts tracking from ray.
func (p *Pointer) Begin(ray math3d.Ray, screen math3d.Vec2) {
	*p = Pointer{active: true, lastPoint: ray.Origin, lastScreen: screen}
}

// BeginPlane starts tracking hits of pl. When ray misses pl tracking starts
// at the first sample that hits it.
func (p *Pointer) BeginPlane(ray math3d.Ray, screen math3d.Vec2, pl math3d.Plane) {
	*p = Pointer{active: true, usePlane: true, plane: pl, lastScreen: screen}
	if hit, ok := ray.IntersectPlane(pl); ok {
		p.lastPoint = hit
	} else {
		p.active = false
	}
}

// End stops tracking.
func (p *Pointer) End() {
	*p = Pointer{}
}

// Active reports whether the pointer has a reference sample.
func (p *Pointer) Active() bool {
	return p.active
}

// Move records a sample and returns the movement since the previous one.
// It reports false when there is no previous sample or the ray misses the
// picking plane.
func (p *Pointer) Move(ray math3d.Ray, screen math3d.Vec2) (extrude.MoveEvent, bool) {
	point := ray.Origin
	if p.usePlane {
		hit, ok := ray.IntersectPlane(p.plane)
		if !ok {
			return extrude.MoveEvent{}, false
		}
		point = hit
		if !p.active {
			p.active = true
			p.lastPoint, p.lastScreen = point, screen
			return extrude.MoveEvent{}, false
		}
	}
	if !p.active {
		return extrude.MoveEvent{}, false
	}

	ev := extrude.MoveEvent{
		Movement:    point.Sub(p.lastPoint),
		ScreenDelta: screen.Sub(p.lastScreen),
	}
	p.lastPoint, p.lastScreen = point, screen
	return ev, true
}
