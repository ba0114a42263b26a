package extrude

import (
	"fmt"
	"slices"

	"github.com/taigrr/facepull/pkg/math3d"
)

// Editable is a mesh whose position buffer the controller rewrites.
type Editable interface {
	Positions() []float64
	Indices() []int
	SetPositions([]float64) error
	RefreshBounds()
}

// EdgeRefresher is implemented by editables that cache edge geometry.
// The controller calls RefreshEdges after every write.
type EdgeRefresher interface {
	RefreshEdges()
}

// Scalable is an object with a uniform scale.
type Scalable interface {
	Scale() float64
	SetScale(float64)
}

// State is the gesture state of a Controller.
type State int

const (
	StateIdle State = iota
	StateSelecting
)

func (s State) String() string {
	if s == StateSelecting {
		return "selecting"
	}
	return "idle"
}

// Gesture describes the active gesture. Fields are only meaningful while
// the controller is selecting.
type Gesture struct {
	Target   Target
	FaceID   int
	Normal   math3d.Vec3
	Selected []int
	// Anchor is the picked world position.
	Anchor math3d.Vec3
	// AnchorScreen is the click position that started the gesture.
	AnchorScreen math3d.Vec2
}

// Controller runs the pick/move gesture state machine over one box and one
// sphere. A Controller is not safe for concurrent use.
type Controller struct {
	Mode        Mode
	Step        float64
	Sensitivity float64
	Resolver    Resolver
	// Topology, when set, resolves box selections instead of Resolver.
	Topology *Topology

	box    Editable
	sphere Scalable

	state   State
	gesture Gesture
}

// NewController creates an idle controller with default settings. Either
// target may be nil, in which case picks on it are rejected.
func NewController(box Editable, sphere Scalable) *Controller {
	return &Controller{
		Mode:        ModeScaledNormal,
		Step:        DefaultStep,
		Sensitivity: DefaultSensitivity,
		box:         box,
		sphere:      sphere,
	}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Gesture returns a copy of the active gesture.
func (c *Controller) Gesture() Gesture {
	g := c.gesture
	g.Selected = slices.Clone(g.Selected)
	return g
}

// Pick handles a click. While selecting, any pick ends the gesture. While
// idle, a hit on the box or sphere begins a gesture and a miss does nothing.
// On error the controller stays idle.
func (c *Controller) Pick(ev PickEvent) error {
	if c.state == StateSelecting {
		c.End()
		return nil
	}
	if err := ev.Validate(); err != nil {
		return err
	}
	if !ev.Hit {
		return nil
	}

	switch ev.Target {
	case TargetBox:
		return c.beginBox(ev)
	case TargetSphere:
		if c.sphere == nil {
			return fmt.Errorf("%w: no sphere bound", ErrInvalidEvent)
		}
		c.gesture = Gesture{
			Target:       TargetSphere,
			Anchor:       ev.Point,
			AnchorScreen: ev.Screen,
		}
		c.state = StateSelecting
		return nil
	}
	return fmt.Errorf("%w: target %v", ErrInvalidEvent, ev.Target)
}

func (c *Controller) beginBox(ev PickEvent) error {
	if c.box == nil {
		return fmt.Errorf("%w: no box bound", ErrInvalidEvent)
	}

	var (
		selected []int
		err      error
	)
	if c.Topology != nil {
		selected, err = c.Topology.Resolve(ev.FaceID)
	} else {
		selected, err = c.Resolver.Resolve(c.box.Positions(), c.box.Indices(), ev.FaceID)
	}
	if err != nil {
		return fmt.Errorf("resolve face %d: %w", ev.FaceID, err)
	}

	c.gesture = Gesture{
		Target:       TargetBox,
		FaceID:       ev.FaceID,
		Normal:       ev.Normal,
		Selected:     selected,
		Anchor:       ev.Point,
		AnchorScreen: ev.Screen,
	}
	c.state = StateSelecting
	return nil
}

// Move applies one movement sample to the gesture target. It returns the
// displacement written to the box, or the new uniform scale (on all three
// axes) for the sphere. While idle it does nothing.
func (c *Controller) Move(ev MoveEvent) (math3d.Vec3, error) {
	if c.state != StateSelecting {
		return math3d.Vec3{}, nil
	}
	if err := ev.Validate(); err != nil {
		return math3d.Vec3{}, err
	}

	switch c.gesture.Target {
	case TargetBox:
		return c.moveBox(ev)
	case TargetSphere:
		s := ScaleSphere(c.sphere.Scale(), ev.ScreenDelta.X, c.Sensitivity)
		c.sphere.SetScale(s)
		return math3d.V3(s, s, s), nil
	}
	return math3d.Vec3{}, nil
}

func (c *Controller) moveBox(ev MoveEvent) (math3d.Vec3, error) {
	d, err := computeDisplacement(c.Mode, c.gesture.Normal, ev.Movement, c.Step)
	if err != nil {
		return math3d.Vec3{}, err
	}

	positions := c.box.Positions()
	if err := Apply(positions, c.gesture.Selected, d, c.Mode); err != nil {
		return math3d.Vec3{}, err
	}
	if err := c.box.SetPositions(positions); err != nil {
		return math3d.Vec3{}, fmt.Errorf("%w: %v", ErrBufferLengthMismatch, err)
	}
	c.box.RefreshBounds()
	if er, ok := c.box.(EdgeRefresher); ok {
		er.RefreshEdges()
	}
	return d, nil
}

// End returns to idle, dropping the gesture.
func (c *Controller) End() {
	c.state = StateIdle
	c.gesture = Gesture{}
}

// Reset ends any gesture.
func (c *Controller) Reset() {
	c.End()
}

// EndTarget ends the gesture if it acts on t and reports whether it did.
func (c *Controller) EndTarget(t Target) bool {
	if c.state != StateSelecting || c.gesture.Target != t {
		return false
	}
	c.End()
	return true
}
