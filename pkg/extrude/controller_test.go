package extrude

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/models"
)

type ball struct {
	scale float64
}

func (b *ball) Scale() float64     { return b.scale }
func (b *ball) SetScale(s float64) { b.scale = s }

type edgyMesh struct {
	*models.Mesh
	refreshed int
}

func (m *edgyMesh) RefreshEdges() { m.refreshed++ }

func newTestController() (*Controller, *models.Mesh, *ball) {
	box := models.NewBox("box", 1)
	sphere := &ball{scale: 1}
	return NewController(box, sphere), box, sphere
}

func boxPick(faceID int, normal math3d.Vec3) PickEvent {
	return PickEvent{Hit: true, Target: TargetBox, FaceID: faceID, Normal: normal, Point: normal.Scale(0.5)}
}

func TestControllerToggle(t *testing.T) {
	c, _, _ := newTestController()

	if c.State() != StateIdle {
		t.Fatalf("initial state = %v", c.State())
	}
	if err := c.Pick(PickEvent{}); err != nil {
		t.Fatalf("miss: %v", err)
	}
	if c.State() != StateIdle {
		t.Errorf("miss began a gesture")
	}

	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if c.State() != StateSelecting {
		t.Fatalf("state = %v, want selecting", c.State())
	}
	g := c.Gesture()
	if g.Target != TargetBox || g.FaceID != 0 || len(g.Selected) != 12 {
		t.Errorf("gesture = %+v", g)
	}

	// A miss while selecting still ends the gesture
	if err := c.Pick(PickEvent{}); err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v after toggle, want idle", c.State())
	}
	if g := c.Gesture(); g.Target != TargetNone || g.Selected != nil {
		t.Errorf("gesture not cleared: %+v", g)
	}
}

func TestControllerGestureIsCopy(t *testing.T) {
	c, _, _ := newTestController()
	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	g := c.Gesture()
	g.Selected[0] = 99
	if c.Gesture().Selected[0] == 99 {
		t.Error("Gesture exposes internal selection")
	}
}

func TestControllerPlaneProjectedMove(t *testing.T) {
	c, box, _ := newTestController()
	c.Mode = ModePlaneProjected
	pristine := box.Positions()

	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	d, err := c.Move(MoveEvent{Movement: math3d.V3(0.1, 0.02, 0)})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if d != math3d.V3(0.1, 0, 0) {
		t.Errorf("displacement = %v, want (0.1,0,0)", d)
	}

	sel := c.Gesture().Selected
	got := box.Positions()
	for i := 0; i < 24; i++ {
		want := pristine[i*3]
		if slices.Contains(sel, i) {
			want += 0.1
		}
		if got[i*3] != want {
			t.Errorf("vertex %d x = %v, want %v", i, got[i*3], want)
		}
	}
	if math.Abs(box.BoundsMax.X-0.6) > 1e-12 {
		t.Errorf("bounds not refreshed: max x = %v", box.BoundsMax.X)
	}
}

func TestControllerScaledNormalMove(t *testing.T) {
	c, box, _ := newTestController()
	pristine := box.Positions()

	if err := c.Pick(boxPick(4, math3d.V3(0, 1, 0))); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(MoveEvent{Movement: math3d.V3(0, -0.3, 0)}); err != nil {
		t.Fatal(err)
	}

	step := c.Step
	got := box.Positions()
	for _, i := range c.Gesture().Selected {
		if want := pristine[i*3+1] * (1 - step); got[i*3+1] != want {
			t.Errorf("vertex %d y = %v, want %v", i, got[i*3+1], want)
		}
	}
}

func TestControllerCustomStep(t *testing.T) {
	c, box, _ := newTestController()
	c.Step = 0.5

	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(MoveEvent{Movement: math3d.V3(1, 0, 0)}); err != nil {
		t.Fatal(err)
	}
	if box.BoundsMax.X != 0.75 {
		t.Errorf("max x = %v, want 0.75", box.BoundsMax.X)
	}
}

func TestControllerMoveWhileIdle(t *testing.T) {
	c, box, sphere := newTestController()
	pristine := box.Positions()

	d, err := c.Move(MoveEvent{Movement: math3d.V3(1, 1, 1), ScreenDelta: math3d.V2(10, 0)})
	if err != nil || d != math3d.Zero3() {
		t.Errorf("Move while idle = %v, %v", d, err)
	}
	if !slices.Equal(box.Positions(), pristine) || sphere.scale != 1 {
		t.Error("Move while idle changed the scene")
	}
}

func TestControllerSphere(t *testing.T) {
	c, box, sphere := newTestController()
	pristine := box.Positions()

	if err := c.Pick(PickEvent{Hit: true, Target: TargetSphere, Point: math3d.V3(2, 0, 0.5), Screen: math3d.V2(300, 200)}); err != nil {
		t.Fatal(err)
	}
	if g := c.Gesture(); g.Target != TargetSphere || g.AnchorScreen != math3d.V2(300, 200) {
		t.Errorf("gesture = %+v", g)
	}

	s, err := c.Move(MoveEvent{ScreenDelta: math3d.V2(-50, 12)})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sphere.scale-0.95) > 1e-12 {
		t.Errorf("scale = %v, want 0.95", sphere.scale)
	}
	if s.X != s.Y || s.Y != s.Z || s.X != sphere.scale {
		t.Errorf("Move returned %v, want uniform %v", s, sphere.scale)
	}
	if !slices.Equal(box.Positions(), pristine) {
		t.Error("sphere gesture touched the box")
	}

	// Scale is clamped at zero
	if _, err := c.Move(MoveEvent{ScreenDelta: math3d.V2(-5000, 0)}); err != nil {
		t.Fatal(err)
	}
	if sphere.scale != 0 {
		t.Errorf("scale = %v, want 0", sphere.scale)
	}
}

func TestControllerPickErrors(t *testing.T) {
	tests := []struct {
		name string
		ev   PickEvent
		want error
	}{
		{"bad face", boxPick(40, math3d.V3(1, 0, 0)), ErrInvalidFaceID},
		{"negative face", boxPick(-2, math3d.V3(1, 0, 0)), ErrInvalidFaceID},
		{"zero normal", boxPick(0, math3d.Zero3()), ErrDegenerateNormal},
		{"nan point", PickEvent{Hit: true, Target: TargetSphere, Point: math3d.V3(math.NaN(), 0, 0)}, ErrInvalidEvent},
		{"hit without target", PickEvent{Hit: true}, ErrInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			if err := c.Pick(tt.ev); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if c.State() != StateIdle {
				t.Errorf("failed pick left state %v", c.State())
			}
		})
	}
}

func TestControllerUnboundTargets(t *testing.T) {
	c := NewController(nil, nil)
	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("box err = %v", err)
	}
	if err := c.Pick(PickEvent{Hit: true, Target: TargetSphere}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("sphere err = %v", err)
	}
}

func TestControllerMoveErrors(t *testing.T) {
	c, _, _ := newTestController()
	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(MoveEvent{Movement: math3d.V3(math.Inf(-1), 0, 0)}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("err = %v, want ErrInvalidEvent", err)
	}
	// The gesture survives; the host decides whether to end it
	if c.State() != StateSelecting {
		t.Errorf("state = %v, want selecting", c.State())
	}
}

func TestControllerTopology(t *testing.T) {
	c, box, _ := newTestController()
	topo, err := NewTopology(box.Positions(), box.Indices(), 0)
	if err != nil {
		t.Fatal(err)
	}
	c.Topology = topo
	c.Mode = ModeProjected

	// Extrude +X twice; the second resolve must still find all copies
	for round := 0; round < 2; round++ {
		if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
			t.Fatal(err)
		}
		if n := len(c.Gesture().Selected); n != 12 {
			t.Errorf("round %d selected %d vertices, want 12", round, n)
		}
		if _, err := c.Move(MoveEvent{Movement: math3d.V3(0.37, 0, 0)}); err != nil {
			t.Fatal(err)
		}
		c.End()
	}
}

func TestControllerRefreshesEdges(t *testing.T) {
	mesh := &edgyMesh{Mesh: models.NewBox("box", 1)}
	c := NewController(mesh, nil)
	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(MoveEvent{Movement: math3d.V3(1, 0, 0)}); err != nil {
		t.Fatal(err)
	}
	if mesh.refreshed != 1 {
		t.Errorf("RefreshEdges called %d times, want 1", mesh.refreshed)
	}
}

func TestControllerEndTarget(t *testing.T) {
	c, _, _ := newTestController()
	if err := c.Pick(boxPick(0, math3d.V3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	if c.EndTarget(TargetSphere) {
		t.Error("EndTarget(sphere) ended a box gesture")
	}
	if !c.EndTarget(TargetBox) || c.State() != StateIdle {
		t.Error("EndTarget(box) did not end the box gesture")
	}

	if err := c.Pick(boxPick(2, math3d.V3(-1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.State() != StateIdle {
		t.Error("Reset did not end the gesture")
	}
}
