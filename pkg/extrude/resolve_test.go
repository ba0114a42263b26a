package extrude

import (
	"errors"
	"slices"
	"testing"

	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/models"
)

func boxBuffers() ([]float64, []int) {
	box := models.NewBox("box", 1)
	return box.Positions(), box.Indices()
}

func TestResolvePositiveXFace(t *testing.T) {
	positions, indices := boxBuffers()

	for _, faceID := range []int{0, 1} {
		got, err := Resolve(positions, indices, faceID)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", faceID, err)
		}
		if len(got) != 12 {
			t.Errorf("Resolve(%d) returned %d indices, want 12", faceID, len(got))
		}
		for _, i := range got {
			if x := positions[i*3]; x != 0.5 {
				t.Errorf("vertex %d has x = %v, want 0.5", i, x)
			}
		}
		// The face's own vertices come first in the layout
		for i := 0; i < 4; i++ {
			if !slices.Contains(got, i) {
				t.Errorf("selection %v is missing own vertex %d", got, i)
			}
		}
	}
}

func TestResolveEveryFace(t *testing.T) {
	positions, indices := boxBuffers()

	for faceID := 0; faceID < len(indices)/3; faceID++ {
		got, err := Resolve(positions, indices, faceID)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", faceID, err)
		}
		if len(got) < 4 || len(got) > 12 {
			t.Errorf("Resolve(%d) size = %d, want within [4,12]", faceID, len(got))
		}
		if !slices.IsSorted(got) {
			t.Errorf("Resolve(%d) = %v is not sorted", faceID, got)
		}
		if len(slices.Compact(slices.Clone(got))) != len(got) {
			t.Errorf("Resolve(%d) = %v has duplicates", faceID, got)
		}

		again, err := Resolve(positions, indices, faceID)
		if err != nil || !slices.Equal(got, again) {
			t.Errorf("Resolve(%d) not idempotent: %v then %v", faceID, got, again)
		}

		// Both triangles of a quad select the same set
		sibling := faceID ^ 1
		other, _ := Resolve(positions, indices, sibling)
		if !slices.Equal(got, other) {
			t.Errorf("Resolve(%d) = %v, Resolve(%d) = %v", faceID, got, sibling, other)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	positions, indices := boxBuffers()

	tests := []struct {
		name      string
		positions []float64
		indices   []int
		faceID    int
		want      error
	}{
		{"negative face", positions, indices, -1, ErrInvalidFaceID},
		{"face past end", positions, indices, 12, ErrInvalidFaceID},
		{"odd trailing triangle", positions, indices[:33], 10, ErrInvalidFaceID},
		{"ragged positions", positions[:71], indices, 0, ErrBufferLengthMismatch},
		{"ragged indices", positions, indices[:35], 0, ErrBufferLengthMismatch},
		{"index past vertices", positions[:9], indices, 0, ErrBufferLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.positions, tt.indices, tt.faceID)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveTolerance(t *testing.T) {
	positions, indices := boxBuffers()
	// Nudge the +X copy of corner (0.5,0.5,0.5) held by the +Y face.
	var nudged int
	for i := 8; i < 12; i++ {
		if positions[i*3] == 0.5 && positions[i*3+1] == 0.5 && positions[i*3+2] == 0.5 {
			nudged = i
		}
	}
	positions[nudged*3] += 1e-9

	exact, err := Resolve(positions, indices, 0)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(exact, nudged) {
		t.Errorf("exact resolve kept drifted vertex %d", nudged)
	}
	if len(exact) != 11 {
		t.Errorf("exact resolve size = %d, want 11", len(exact))
	}

	loose, err := Resolver{Tolerance: 1e-6}.Resolve(positions, indices, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(loose, nudged) || len(loose) != 12 {
		t.Errorf("tolerant resolve = %v, want 12 indices including %d", loose, nudged)
	}
}

func TestTopologyMatchesResolve(t *testing.T) {
	positions, indices := boxBuffers()
	topo, err := NewTopology(positions, indices, 0)
	if err != nil {
		t.Fatalf("NewTopology: %v", err)
	}
	if topo.VertexCount() != 24 || topo.CornerCount() != 8 {
		t.Errorf("topology has %d vertices and %d corners, want 24 and 8", topo.VertexCount(), topo.CornerCount())
	}

	for faceID := 0; faceID < 12; faceID++ {
		want, _ := Resolve(positions, indices, faceID)
		got, err := topo.Resolve(faceID)
		if err != nil {
			t.Fatalf("Topology.Resolve(%d): %v", faceID, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("Topology.Resolve(%d) = %v, want %v", faceID, got, want)
		}
	}

	if _, err := topo.Resolve(12); !errors.Is(err, ErrInvalidFaceID) {
		t.Errorf("err = %v, want ErrInvalidFaceID", err)
	}
}

func TestTopologySurvivesDrift(t *testing.T) {
	positions, indices := boxBuffers()
	topo, err := NewTopology(positions, indices, 0)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := topo.Resolve(4)

	// Extrude +Y by an amount that does not round-trip exactly
	sel, _ := Resolve(positions, indices, 4)
	if err := Apply(positions, sel, math3d.V3(0, 0.1, 0), ModePlaneProjected); err != nil {
		t.Fatal(err)
	}
	after, _ := topo.Resolve(4)
	if !slices.Equal(before, after) {
		t.Errorf("topology selection changed after drift: %v then %v", before, after)
	}
}
