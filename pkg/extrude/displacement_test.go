package extrude

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/taigrr/facepull/pkg/math3d"
)

func TestComputeDisplacement(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		normal   math3d.Vec3
		movement math3d.Vec3
		want     math3d.Vec3
	}{
		{"plane +x", ModePlaneProjected, math3d.V3(1, 0, 0), math3d.V3(0.1, 0, 0), math3d.V3(0.1, 0, 0)},
		{"plane drops tangent movement", ModePlaneProjected, math3d.V3(1, 0, 0), math3d.V3(0.1, 0.3, -2), math3d.V3(0.1, 0, 0)},
		{"projected unnormalized normal", ModeProjected, math3d.V3(0, 2, 0), math3d.V3(0, 0.5, 0), math3d.V3(0, 1, 0)},
		{"projected along -z normal", ModeProjected, math3d.V3(0, 0, -1), math3d.V3(0, 0, 0.25), math3d.V3(0, 0, 0.25)},
		{"scaled toward +y", ModeScaledNormal, math3d.V3(0, 1, 0), math3d.V3(0, 3, 0), math3d.V3(0, 0.0075, 0)},
		{"scaled against +y flips", ModeScaledNormal, math3d.V3(0, 1, 0), math3d.V3(0, -3, 0), math3d.V3(0, -0.0075, 0)},
		{"scaled toward -x flips", ModeScaledNormal, math3d.V3(-1, 0, 0), math3d.V3(-1, 0, 0), math3d.V3(0.0075, 0, 0)},
		{"scaled against -x keeps", ModeScaledNormal, math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0), math3d.V3(-0.0075, 0, 0)},
		{"scaled zero dot keeps", ModeScaledNormal, math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 0, 0.0075)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDisplacement(tt.mode, tt.normal, tt.movement)
			if err != nil {
				t.Fatalf("ComputeDisplacement: %v", err)
			}
			if !got.ApproxEqual(tt.want, 1e-15) {
				t.Errorf("ComputeDisplacement = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeDisplacementErrors(t *testing.T) {
	for _, mode := range Modes() {
		if _, err := ComputeDisplacement(mode, math3d.Zero3(), math3d.V3(1, 0, 0)); !errors.Is(err, ErrDegenerateNormal) {
			t.Errorf("%v: err = %v, want ErrDegenerateNormal", mode, err)
		}
		if _, err := ComputeDisplacement(mode, math3d.V3(math.NaN(), 0, 0), math3d.V3(1, 0, 0)); !errors.Is(err, ErrDegenerateNormal) {
			t.Errorf("%v: NaN normal err = %v, want ErrDegenerateNormal", mode, err)
		}
		if _, err := ComputeDisplacement(mode, math3d.V3(1, 0, 0), math3d.V3(math.Inf(1), 0, 0)); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("%v: Inf movement err = %v, want ErrInvalidEvent", mode, err)
		}
	}
	if _, err := ComputeDisplacement(Mode(9), math3d.V3(1, 0, 0), math3d.V3(1, 0, 0)); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestApplyPlaneProjected(t *testing.T) {
	positions, indices := boxBuffers()
	pristine := slices.Clone(positions)
	sel, err := Resolve(positions, indices, 0)
	if err != nil {
		t.Fatal(err)
	}

	d, err := ComputeDisplacement(ModePlaneProjected, math3d.V3(1, 0, 0), math3d.V3(0.1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if err := Apply(positions, sel, d, ModePlaneProjected); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(positions)/3; i++ {
		wantX := pristine[i*3]
		if slices.Contains(sel, i) {
			wantX += 0.1
		}
		if positions[i*3] != wantX {
			t.Errorf("vertex %d x = %v, want %v", i, positions[i*3], wantX)
		}
		if positions[i*3+1] != pristine[i*3+1] || positions[i*3+2] != pristine[i*3+2] {
			t.Errorf("vertex %d y/z changed", i)
		}
	}
}

func TestApplyScaledNormal(t *testing.T) {
	positions, indices := boxBuffers()
	pristine := slices.Clone(positions)
	sel, err := Resolve(positions, indices, 4) // +Y face
	if err != nil {
		t.Fatal(err)
	}

	d, err := ComputeDisplacement(ModeScaledNormal, math3d.V3(0, 1, 0), math3d.V3(0, -0.2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if err := Apply(positions, sel, d, ModeScaledNormal); err != nil {
		t.Fatal(err)
	}

	step := DefaultStep
	if len(positions) != len(pristine) {
		t.Fatalf("buffer length changed: %d -> %d", len(pristine), len(positions))
	}
	for i := 0; i < len(positions)/3; i++ {
		for k := 0; k < 3; k++ {
			got, orig := positions[i*3+k], pristine[i*3+k]
			switch {
			case !slices.Contains(sel, i):
				if got != orig {
					t.Errorf("unselected vertex %d[%d] changed: %v -> %v", i, k, orig, got)
				}
			case k == 1:
				if want := orig * (1 - step); got != want {
					t.Errorf("vertex %d y = %v, want %v", i, got, want)
				}
			default:
				if got != orig {
					t.Errorf("vertex %d[%d] changed: %v -> %v", i, k, orig, got)
				}
			}
		}
	}
}

func TestApplyZeroDisplacement(t *testing.T) {
	positions, indices := boxBuffers()
	pristine := slices.Clone(positions)
	sel, _ := Resolve(positions, indices, 6)

	for _, mode := range Modes() {
		if err := Apply(positions, sel, math3d.Zero3(), mode); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(positions, pristine) {
			t.Errorf("%v: zero displacement changed positions", mode)
		}
	}
}

func TestApplyErrors(t *testing.T) {
	positions, _ := boxBuffers()
	pristine := slices.Clone(positions)

	err := Apply(positions, []int{0, 24}, math3d.V3(1, 0, 0), ModePlaneProjected)
	if !errors.Is(err, ErrBufferLengthMismatch) {
		t.Errorf("err = %v, want ErrBufferLengthMismatch", err)
	}
	if !slices.Equal(positions, pristine) {
		t.Error("failed Apply wrote to the buffer")
	}

	if err := Apply(positions[:70], nil, math3d.Zero3(), ModeProjected); !errors.Is(err, ErrBufferLengthMismatch) {
		t.Errorf("err = %v, want ErrBufferLengthMismatch", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(" " + m.String() + " ")
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if ModePlaneProjected.Next() != ModeScaledNormal {
		t.Errorf("Next wraps to %v", ModePlaneProjected.Next())
	}
	if !ModePlaneProjected.Additive() || ModeProjected.Additive() {
		t.Error("only plane-projected mode is additive")
	}
}

func TestScaleSphere(t *testing.T) {
	tests := []struct {
		current, delta, sensitivity, want float64
	}{
		{1, -50, 0.001, 0.95},
		{1, 50, 0.001, 1.05},
		{1, 0, 0.001, 1},
		{0.01, -500, 0.001, 0},
	}
	for _, tt := range tests {
		if got := ScaleSphere(tt.current, tt.delta, tt.sensitivity); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ScaleSphere(%v, %v, %v) = %v, want %v", tt.current, tt.delta, tt.sensitivity, got, tt.want)
		}
	}
}
