package extrude

import (
	"slices"

	"github.com/taigrr/facepull/pkg/math3d"
)

// Topology caches which vertices share a corner, computed once from a
// pristine mesh. Later resolves use the cached groups, so they keep
// returning the same selection after extrusion has moved the positions.
type Topology struct {
	indices     []int
	vertexCount int
	groupOf     []int
	groups      [][]int
}

// NewTopology groups coincident vertices of the given buffers. Positions are
// compared exactly when tolerance is zero and on a tolerance grid otherwise.
func NewTopology(positions []float64, indices []int, tolerance float64) (*Topology, error) {
	if err := checkBuffers(positions, indices); err != nil {
		return nil, err
	}
	n := len(positions) / 3
	t := &Topology{
		indices:     slices.Clone(indices),
		vertexCount: n,
		groupOf:     make([]int, n),
	}

	keyOf := func(i int) any {
		if tolerance > 0 {
			return math3d.Quantize(vertexAt(positions, i), tolerance)
		}
		return triplet(positions, i)
	}

	seen := make(map[any]int, n)
	for i := 0; i < n; i++ {
		k := keyOf(i)
		g, ok := seen[k]
		if !ok {
			g = len(t.groups)
			seen[k] = g
			t.groups = append(t.groups, nil)
		}
		t.groups[g] = append(t.groups[g], i)
		t.groupOf[i] = g
	}
	return t, nil
}

// Resolve returns the selection for triangle faceID from the cached groups.
func (t *Topology) Resolve(faceID int) ([]int, error) {
	own, err := quadVertices(t.indices, faceID, t.vertexCount)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, v := range own {
		out = append(out, t.groups[t.groupOf[v]]...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// VertexCount returns the number of vertices the topology was built for.
func (t *Topology) VertexCount() int {
	return t.vertexCount
}

// CornerCount returns the number of distinct corner positions.
func (t *Topology) CornerCount() int {
	return len(t.groups)
}
