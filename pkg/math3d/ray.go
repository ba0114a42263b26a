package math3d

import "math"

const rayEpsilon = 1e-12

// Ray is a half-line starting at Origin going along Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Plane is the set of points p with Normal·p + Off = 0.
type Plane struct {
	Normal Vec3
	Off    float64
}

// PlaneFromPoint returns the plane through point with the given normal.
// The normal is normalized; a zero normal yields a degenerate plane that
// no ray intersects.
func PlaneFromPoint(normal, point Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Off: -n.Dot(point)}
}

// DistanceTo returns the signed distance of p from the plane.
func (pl Plane) DistanceTo(p Vec3) float64 {
	return pl.Normal.Dot(p) + pl.Off
}

// IntersectPlane returns the intersection point of the ray with the plane.
// Rays parallel to the plane or pointing away from it report false.
func (r Ray) IntersectPlane(pl Plane) (Vec3, bool) {
	denom := pl.Normal.Dot(r.Dir)
	if math.Abs(denom) < rayEpsilon {
		return Vec3{}, false
	}
	t := -(pl.Normal.Dot(r.Origin) + pl.Off) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}

// IntersectTriangle tests the ray against triangle (a, b, c) from either side
// (Möller–Trumbore). It returns the ray parameter of the hit.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
