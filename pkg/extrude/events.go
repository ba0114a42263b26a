package extrude

import (
	"fmt"

	"github.com/taigrr/facepull/pkg/math3d"
)

// Target names the object a gesture acts on.
type Target int

const (
	TargetNone Target = iota
	TargetBox
	TargetSphere
)

func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetBox:
		return "box"
	case TargetSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// PickEvent is the result of hit-testing a click against the scene.
type PickEvent struct {
	Hit    bool
	Target Target
	// FaceID is the picked triangle index (box only).
	FaceID int
	// Point is the picked world position.
	Point math3d.Vec3
	// Normal is the facet normal of the picked triangle (box only).
	Normal math3d.Vec3
	// Screen is the click position in pixels.
	Screen math3d.Vec2
}

// Validate checks the fields a hit requires. Misses are always valid.
func (e PickEvent) Validate() error {
	if !e.Hit {
		return nil
	}
	if !e.Point.IsFinite() || !e.Screen.IsFinite() {
		return fmt.Errorf("%w: non-finite pick position", ErrInvalidEvent)
	}
	switch e.Target {
	case TargetBox:
		if e.FaceID < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidFaceID, e.FaceID)
		}
		if !e.Normal.IsFinite() || e.Normal.LenSq() == 0 {
			return fmt.Errorf("%w: %v", ErrDegenerateNormal, e.Normal)
		}
	case TargetSphere:
	default:
		return fmt.Errorf("%w: hit without target", ErrInvalidEvent)
	}
	return nil
}

// MoveEvent is one pointer movement sample.
type MoveEvent struct {
	// Movement is the pointer movement in world space, either between
	// successive pointer ray origins or between picking-plane hits.
	Movement math3d.Vec3
	// ScreenDelta is the raw pointer movement in pixels.
	ScreenDelta math3d.Vec2
}

// Validate rejects non-finite movement.
func (e MoveEvent) Validate() error {
	if !e.Movement.IsFinite() || !e.ScreenDelta.IsFinite() {
		return fmt.Errorf("%w: non-finite movement", ErrInvalidEvent)
	}
	return nil
}
