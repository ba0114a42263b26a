package extrude

import (
	"fmt"
	"strings"

	"github.com/taigrr/facepull/pkg/math3d"
)

// Mode selects how pointer movement becomes a displacement.
type Mode int

const (
	// ModeScaledNormal moves a fixed step along the normal, signed by the
	// direction of the pointer movement. Applied multiplicatively.
	ModeScaledNormal Mode = iota
	// ModeProjected projects the movement onto the normal. Applied
	// multiplicatively.
	ModeProjected
	// ModePlaneProjected projects movement measured on a picking plane onto
	// the normal. Applied additively.
	ModePlaneProjected
)

// DefaultStep is the displacement length per move in ModeScaledNormal.
const DefaultStep = 0.0075

var modeNames = map[Mode]string{
	ModeScaledNormal:   "scaled-normal",
	ModeProjected:      "projected",
	ModePlaneProjected: "plane-projected",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown extrusion mode %q (want scaled-normal, projected or plane-projected)", s)
}

// Modes lists every mode in cycle order.
func Modes() []Mode {
	return []Mode{ModeScaledNormal, ModeProjected, ModePlaneProjected}
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// Additive reports whether displacements add to positions instead of
// scaling them.
func (m Mode) Additive() bool {
	return m == ModePlaneProjected
}

// UsesPlane reports whether the mode expects movement measured on a
// picking plane rather than between pointer rays.
func (m Mode) UsesPlane() bool {
	return m == ModePlaneProjected
}

// corner is the fixed direction the scaled-normal sign heuristic compares
// against.
var corner = math3d.V3(1, 1, 1)

// ComputeDisplacement turns movement into a displacement along normal using
// DefaultStep for ModeScaledNormal.
func ComputeDisplacement(mode Mode, normal, movement math3d.Vec3) (math3d.Vec3, error) {
	return computeDisplacement(mode, normal, movement, DefaultStep)
}

func computeDisplacement(mode Mode, normal, movement math3d.Vec3, step float64) (math3d.Vec3, error) {
	length := normal.Len()
	if !normal.IsFinite() || length == 0 {
		return math3d.Vec3{}, fmt.Errorf("%w: %v", ErrDegenerateNormal, normal)
	}
	if !movement.IsFinite() {
		return math3d.Vec3{}, fmt.Errorf("%w: movement %v", ErrInvalidEvent, movement)
	}

	switch mode {
	case ModeScaledNormal:
		dot := normal.Dot(movement)
		c := normal.Dot(corner)
		dir := normal
		// A zero dot keeps the normal as is.
		if (dot < 0 && c > 0) || (dot > 0 && c < 0) {
			dir = normal.Negate()
		}
		return dir.Scale(step), nil
	case ModeProjected, ModePlaneProjected:
		return normal.Scale(normal.Dot(movement) / length), nil
	default:
		return math3d.Vec3{}, fmt.Errorf("unknown extrusion mode %d", int(mode))
	}
}

// Apply displaces the selected vertices of positions in place. Additive
// modes add d to each selected vertex; the others scale each coordinate k by
// 1+d[k]. Indices are checked before anything is written.
func Apply(positions []float64, selected []int, d math3d.Vec3, mode Mode) error {
	if len(positions)%3 != 0 {
		return fmt.Errorf("%w: %d position values is not a multiple of 3", ErrBufferLengthMismatch, len(positions))
	}
	n := len(positions) / 3
	for _, i := range selected {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: selected vertex %d outside %d vertices", ErrBufferLengthMismatch, i, n)
		}
	}

	if mode.Additive() {
		for _, i := range selected {
			positions[i*3] += d.X
			positions[i*3+1] += d.Y
			positions[i*3+2] += d.Z
		}
		return nil
	}
	for _, i := range selected {
		positions[i*3] *= 1 + d.X
		positions[i*3+1] *= 1 + d.Y
		positions[i*3+2] *= 1 + d.Z
	}
	return nil
}
