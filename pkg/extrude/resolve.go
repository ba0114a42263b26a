package extrude

import (
	"fmt"
	"slices"

	"github.com/taigrr/facepull/pkg/math3d"
)

// quadIndexSpan is the number of index entries per quad face (two triangles).
const quadIndexSpan = 6

// Resolver groups vertices by position.
type Resolver struct {
	// Tolerance is the grid size used to compare positions. Zero compares
	// coordinates exactly.
	Tolerance float64
}

// Resolve returns every vertex index that moves with the quad containing
// triangle faceID, comparing positions exactly. See Resolver.Resolve.
func Resolve(positions []float64, indices []int, faceID int) ([]int, error) {
	return Resolver{}.Resolve(positions, indices, faceID)
}

// Resolve returns the sorted set of vertex indices that belong to the quad
// holding triangle faceID, plus every other vertex sitting at the position of
// one of the quad's corners.
//
// The quad is assumed to occupy index entries [faceID/2*6, faceID/2*6+6),
// which holds for the box layout and not for arbitrary meshes.
func (r Resolver) Resolve(positions []float64, indices []int, faceID int) ([]int, error) {
	if err := checkBuffers(positions, indices); err != nil {
		return nil, err
	}
	own, err := quadVertices(indices, faceID, len(positions)/3)
	if err != nil {
		return nil, err
	}

	if r.Tolerance > 0 {
		corners := make(map[math3d.GridKey]bool, len(own))
		for _, v := range own {
			corners[math3d.Quantize(vertexAt(positions, v), r.Tolerance)] = true
		}
		return collect(own, len(positions)/3, func(i int) bool {
			return corners[math3d.Quantize(vertexAt(positions, i), r.Tolerance)]
		}), nil
	}

	corners := make(map[[3]float64]bool, len(own))
	for _, v := range own {
		corners[triplet(positions, v)] = true
	}
	return collect(own, len(positions)/3, func(i int) bool {
		return corners[triplet(positions, i)]
	}), nil
}

// collect returns own plus every vertex accepted by match, deduplicated and
// sorted.
func collect(own []int, vertexCount int, match func(int) bool) []int {
	out := slices.Clone(own)
	for i := 0; i < vertexCount; i++ {
		if match(i) {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func checkBuffers(positions []float64, indices []int) error {
	if len(positions)%3 != 0 {
		return fmt.Errorf("%w: %d position values is not a multiple of 3", ErrBufferLengthMismatch, len(positions))
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrBufferLengthMismatch, len(indices))
	}
	return nil
}

// quadVertices returns the unique vertex indices of the quad holding
// triangle faceID.
func quadVertices(indices []int, faceID, vertexCount int) ([]int, error) {
	start := (faceID / 2) * quadIndexSpan
	if faceID < 0 || start+quadIndexSpan > len(indices) {
		return nil, fmt.Errorf("%w: %d (index buffer holds %d triangles)", ErrInvalidFaceID, faceID, len(indices)/3)
	}

	own := make([]int, 0, 4)
	for _, v := range indices[start : start+quadIndexSpan] {
		if v < 0 || v >= vertexCount {
			return nil, fmt.Errorf("%w: index %d outside %d vertices", ErrBufferLengthMismatch, v, vertexCount)
		}
		if !slices.Contains(own, v) {
			own = append(own, v)
		}
	}
	return own, nil
}

func triplet(positions []float64, i int) [3]float64 {
	return [3]float64{positions[i*3], positions[i*3+1], positions[i*3+2]}
}

func vertexAt(positions []float64, i int) math3d.Vec3 {
	return math3d.V3(positions[i*3], positions[i*3+1], positions[i*3+2])
}
