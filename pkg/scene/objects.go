package scene

import (
	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/models"
)

// Box is the extrudable box. Its mesh stays in local coordinates centered on
// the origin; Offset places it in the world.
type Box struct {
	*models.Mesh
	Offset math3d.Vec3

	edges [][2]math3d.Vec3
}

func newBox(offset math3d.Vec3) *Box {
	b := &Box{Mesh: models.NewBox("box", 1), Offset: offset}
	b.RefreshEdges()
	return b
}

// ModelMatrix returns the local-to-world transform.
func (b *Box) ModelMatrix() math3d.Mat4 {
	return math3d.Translate(b.Offset)
}

// RefreshEdges rebuilds the world-space quad outlines from the current
// positions.
func (b *Box) RefreshEdges() {
	b.edges = b.edges[:0]
	for q := 0; q*4+3 < len(b.Vertices); q++ {
		for k := range 4 {
			p0 := b.Vertices[q*4+k].Position.Add(b.Offset)
			p1 := b.Vertices[q*4+(k+1)%4].Position.Add(b.Offset)
			b.edges = append(b.edges, [2]math3d.Vec3{p0, p1})
		}
	}
}

// Edges returns the cached quad outlines.
func (b *Box) Edges() [][2]math3d.Vec3 {
	return b.edges
}

// Sphere is the scalable sphere.
type Sphere struct {
	Mesh   *models.Mesh
	Offset math3d.Vec3

	scale float64
}

func newSphere(offset math3d.Vec3, segments, rings int) (*Sphere, error) {
	m, err := models.NewSphere("sphere", 1, segments, rings)
	if err != nil {
		return nil, err
	}
	return &Sphere{Mesh: m, Offset: offset, scale: 1}, nil
}

// Scale returns the uniform scale.
func (s *Sphere) Scale() float64 { return s.scale }

// SetScale sets the uniform scale.
func (s *Sphere) SetScale(v float64) { s.scale = v }

// ModelMatrix returns the local-to-world transform.
func (s *Sphere) ModelMatrix() math3d.Mat4 {
	return math3d.Translate(s.Offset).Mul(math3d.Scale(math3d.V3(s.scale, s.scale, s.scale)))
}
