// Package scene holds the facepull demo scene: an extrudable box, a scalable
// sphere and the gesture plumbing that turns pointer input into controller
// events.
package scene

import (
	"fmt"
	"math"

	"fortio.org/log"

	"github.com/taigrr/facepull/pkg/extrude"
	"github.com/taigrr/facepull/pkg/math3d"
)

// Options configures a Scene.
type Options struct {
	Mode        extrude.Mode
	Step        float64
	Sensitivity float64
	// Tolerance is the position grid used to find coincident box vertices.
	// Zero compares exactly.
	Tolerance float64
	// UseTopology groups coincident box vertices once at build time.
	UseTopology bool

	SphereSegments int
	SphereRings    int
}

// DefaultOptions returns the stock scene settings.
func DefaultOptions() Options {
	return Options{
		Mode:           extrude.ModeScaledNormal,
		Step:           extrude.DefaultStep,
		Sensitivity:    extrude.DefaultSensitivity,
		SphereSegments: 24,
		SphereRings:    16,
	}
}

// World placement of the two objects.
var (
	BoxOffset    = math3d.V3(-2, 0, 0)
	SphereOffset = math3d.V3(2, 0, 0)
)

// Scene is the box, the sphere and the controller acting on them.
// A Scene is not safe for concurrent use.
type Scene struct {
	Box        *Box
	Sphere     *Sphere
	Controller *extrude.Controller

	pristine []float64
	pointer  Pointer
}

// New builds a scene with a pristine box and a unit-scale sphere.
func New(opts Options) (*Scene, error) {
	sphere, err := newSphere(SphereOffset, opts.SphereSegments, opts.SphereRings)
	if err != nil {
		return nil, fmt.Errorf("build sphere: %w", err)
	}
	box := newBox(BoxOffset)

	c := extrude.NewController(box, sphere)
	c.Mode = opts.Mode
	if opts.Step > 0 {
		c.Step = opts.Step
	}
	if opts.Sensitivity > 0 {
		c.Sensitivity = opts.Sensitivity
	}
	c.Resolver = extrude.Resolver{Tolerance: opts.Tolerance}
	if opts.UseTopology {
		topo, err := extrude.NewTopology(box.Positions(), box.Indices(), opts.Tolerance)
		if err != nil {
			return nil, fmt.Errorf("box topology: %w", err)
		}
		c.Topology = topo
	}

	return &Scene{
		Box:        box,
		Sphere:     sphere,
		Controller: c,
		pristine:   box.Positions(),
	}, nil
}

// Mode returns the displacement mode.
func (s *Scene) Mode() extrude.Mode {
	return s.Controller.Mode
}

// SetMode switches the displacement mode, ending any gesture.
func (s *Scene) SetMode(m extrude.Mode) {
	s.endGesture()
	s.Controller.Mode = m
	log.Debugf("mode %v", m)
}

// Pick hit-tests ray against both objects and returns the nearest hit.
// Box hits carry the triangle index and its facet normal.
func (s *Scene) Pick(ray math3d.Ray, screen math3d.Vec2) extrude.PickEvent {
	ev := extrude.PickEvent{Screen: screen}
	best := math.Inf(1)

	local := math3d.Ray{Origin: ray.Origin.Sub(s.Box.Offset), Dir: ray.Dir}
	for i := 0; i < s.Box.TriangleCount(); i++ {
		f := s.Box.GetFace(i)
		t, ok := local.IntersectTriangle(
			s.Box.Vertices[f[0]].Position,
			s.Box.Vertices[f[1]].Position,
			s.Box.Vertices[f[2]].Position,
		)
		if ok && t < best {
			best = t
			ev.Hit, ev.Target, ev.FaceID = true, extrude.TargetBox, i
			ev.Normal = s.Box.FacetNormal(i)
		}
	}

	if sc := s.Sphere.scale; sc > 0 {
		local = math3d.Ray{Origin: ray.Origin.Sub(s.Sphere.Offset).Scale(1 / sc), Dir: ray.Dir}
		m := s.Sphere.Mesh
		for i := 0; i < m.TriangleCount(); i++ {
			f := m.GetFace(i)
			t, ok := local.IntersectTriangle(
				m.Vertices[f[0]].Position,
				m.Vertices[f[1]].Position,
				m.Vertices[f[2]].Position,
			)
			if ok && t*sc < best {
				best = t * sc
				ev.Hit, ev.Target, ev.FaceID = true, extrude.TargetSphere, 0
				ev.Normal = math3d.Vec3{}
			}
		}
	}

	if ev.Hit {
		ev.Point = ray.At(best)
	}
	return ev
}

// PlaneFor returns the picking plane for a face gesture: it passes through
// anchor, contains the face normal and is turned as far toward the viewer as
// that allows.
func PlaneFor(anchor, normal, viewDir math3d.Vec3) math3d.Plane {
	n := normal.Normalize()
	pn := viewDir.Sub(n.Scale(viewDir.Dot(n)))
	if pn.LenSq() < 1e-12 {
		// Looking straight along the normal; any plane containing it works
		axis := math3d.V3(1, 0, 0)
		if math.Abs(n.X) > 0.9 {
			axis = math3d.V3(0, 1, 0)
		}
		pn = n.Cross(axis)
	}
	return math3d.PlaneFromPoint(pn, anchor)
}

// Click handles a click along ray. It toggles the gesture the way
// Controller.Pick does and arms the pointer for the following moves.
func (s *Scene) Click(ray math3d.Ray, screen math3d.Vec2) error {
	if s.Controller.State() == extrude.StateSelecting {
		s.endGesture()
		return nil
	}

	if err := s.Controller.Pick(s.Pick(ray, screen)); err != nil {
		return err
	}
	if s.Controller.State() != extrude.StateSelecting {
		return nil
	}

	g := s.Controller.Gesture()
	if g.Target == extrude.TargetBox && s.Controller.Mode.UsesPlane() {
		pl := PlaneFor(g.Anchor, g.Normal, ray.Dir)
		s.pointer.BeginPlane(ray, screen, pl)
	} else {
		s.pointer.Begin(ray, screen)
	}
	log.Debugf("begin %v gesture face=%d selected=%d", g.Target, g.FaceID, len(g.Selected))
	return nil
}

// Drag feeds a pointer sample to the active gesture. It returns what
// Controller.Move returns, or zero while idle.
func (s *Scene) Drag(ray math3d.Ray, screen math3d.Vec2) (math3d.Vec3, error) {
	if s.Controller.State() != extrude.StateSelecting {
		return math3d.Vec3{}, nil
	}
	ev, ok := s.pointer.Move(ray, screen)
	if !ok {
		return math3d.Vec3{}, nil
	}
	d, err := s.Controller.Move(ev)
	if err != nil {
		return d, err
	}
	log.Debugf("move %v -> %v", ev.Movement, d)
	return d, nil
}

// ResetBox restores the pristine box positions and ends a box gesture.
func (s *Scene) ResetBox() {
	if s.Controller.EndTarget(extrude.TargetBox) {
		s.pointer.End()
	}
	// Pristine holds exactly VertexCount vertices
	_ = s.Box.SetPositions(s.pristine)
	s.Box.RefreshBounds()
	s.Box.RefreshEdges()
	log.Debugf("box reset")
}

// ResetSphere restores the unit sphere scale and ends a sphere gesture.
func (s *Scene) ResetSphere() {
	if s.Controller.EndTarget(extrude.TargetSphere) {
		s.pointer.End()
	}
	s.Sphere.SetScale(1)
	log.Debugf("sphere reset")
}

func (s *Scene) endGesture() {
	if s.Controller.State() == extrude.StateSelecting {
		log.Debugf("end %v gesture", s.Controller.Gesture().Target)
	}
	s.Controller.End()
	s.pointer.End()
}

// EndGesture ends any active gesture.
func (s *Scene) EndGesture() {
	s.endGesture()
}

// Status returns a one-line summary for HUDs.
func (s *Scene) Status() string {
	g := s.Controller.Gesture()
	switch {
	case s.Controller.State() != extrude.StateSelecting:
		return fmt.Sprintf("%v | idle", s.Controller.Mode)
	case g.Target == extrude.TargetBox:
		return fmt.Sprintf("%v | box face %d (%d vertices)", s.Controller.Mode, g.FaceID/2, len(g.Selected))
	default:
		return fmt.Sprintf("%v | sphere scale %.3f", s.Controller.Mode, s.Sphere.Scale())
	}
}
