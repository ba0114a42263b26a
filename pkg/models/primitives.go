package models

import (
	"fmt"
	"math"

	"github.com/taigrr/facepull/pkg/math3d"
)

// BoxFaceCount is the number of quad faces of a box built by NewBox.
const BoxFaceCount = 6

// boxFaces lists the box faces in build order with two tangents per face
// such that u × v is the outward normal.
var boxFaces = [BoxFaceCount]struct {
	n, u, v math3d.Vec3
}{
	{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)},   // +X
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},  // -X
	{math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), math3d.V3(1, 0, 0)},   // +Y
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},  // -Y
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},   // +Z
	{math3d.V3(0, 0, -1), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0)},  // -Z
}

// NewBox builds an axis-aligned box centered on the origin with the given
// edge length.
//
// Every face owns four vertices of its own (24 in total) so faces can carry
// flat normals. Face q uses vertices 4q..4q+3 and indices
// [4q, 4q+1, 4q+2, 4q, 4q+2, 4q+3], which makes triangles 2q and 2q+1 the
// two halves of quad q. Faces are ordered +X, -X, +Y, -Y, +Z, -Z and wound
// counter-clockwise seen from outside.
func NewBox(name string, size float64) *Mesh {
	h := size / 2
	m := NewMesh(name)
	m.Vertices = make([]MeshVertex, 0, 4*BoxFaceCount)
	m.Faces = make([]Face, 0, 2*BoxFaceCount)

	for q, f := range boxFaces {
		c := f.n.Scale(h)
		u := f.u.Scale(h)
		v := f.v.Scale(h)
		corners := [4]math3d.Vec3{
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		}
		for _, p := range corners {
			m.Vertices = append(m.Vertices, MeshVertex{Position: p, Normal: f.n})
		}
		b := 4 * q
		m.Faces = append(m.Faces,
			Face{V: [3]int{b, b + 1, b + 2}},
			Face{V: [3]int{b, b + 2, b + 3}},
		)
	}

	m.CalculateBounds()
	return m
}

// NewSphere builds a UV sphere centered on the origin. Seam and pole vertices
// are duplicated, as in most UV sphere layouts.
func NewSphere(name string, diameter float64, segments, rings int) (*Mesh, error) {
	if segments < 3 || rings < 2 {
		return nil, fmt.Errorf("sphere needs at least 3 segments and 2 rings, got %d and %d", segments, rings)
	}
	r := diameter / 2
	m := NewMesh(name)
	m.Vertices = make([]MeshVertex, 0, (rings+1)*(segments+1))

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		st, ct := math.Sincos(theta)
		for seg := 0; seg <= segments; seg++ {
			phi := float64(seg) * 2 * math.Pi / float64(segments)
			sp, cp := math.Sincos(phi)
			n := math3d.V3(st*cp, ct, st*sp)
			m.Vertices = append(m.Vertices, MeshVertex{Position: n.Scale(r), Normal: n})
		}
	}

	stride := segments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := ring*stride + seg
			b := a + stride
			// The first ring's upper triangle and the last ring's lower
			// triangle would collapse onto a pole.
			if ring != 0 {
				m.Faces = append(m.Faces, Face{V: [3]int{a, a + 1, b}})
			}
			if ring != rings-1 {
				m.Faces = append(m.Faces, Face{V: [3]int{a + 1, b + 1, b}})
			}
		}
	}

	m.CalculateBounds()
	return m, nil
}
