package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a column-major 4x4 matrix stored the same way as mgl64.Mat4, so the
// two convert freely.
type Mat4 mgl64.Mat4

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4(mgl64.Ident4())
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// Scale returns a non-uniform scale matrix.
func Scale(v Vec3) Mat4 {
	return Mat4(mgl64.Scale3D(v.X, v.Y, v.Z))
}

// RotateX returns a rotation of angle radians around X.
func RotateX(angle float64) Mat4 {
	return Mat4(mgl64.HomogRotate3DX(angle))
}

// RotateY returns a rotation of angle radians around Y.
func RotateY(angle float64) Mat4 {
	return Mat4(mgl64.HomogRotate3DY(angle))
}

// RotateZ returns a rotation of angle radians around Z.
func RotateZ(angle float64) Mat4 {
	return Mat4(mgl64.HomogRotate3DZ(angle))
}

// QuatToMat4 converts a unit quaternion (x, y, z, w) into a rotation matrix.
func QuatToMat4(x, y, z, w float64) Mat4 {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	return Mat4(q.Normalize().Mat4())
}

// Mat4FromSlice builds a matrix from 16 column-major values (glTF order).
func Mat4FromSlice(s []float64) Mat4 {
	var m Mat4
	copy(m[:], s)
	return m
}

// Perspective returns a right-handed projection matrix; fovy is in radians.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	return Mat4(mgl64.Perspective(fovy, aspect, near, far))
}

// LookAt returns a view matrix looking from eye toward target.
func LookAt(eye, target, up Vec3) Mat4 {
	return Mat4(mgl64.LookAtV(eye.MGL(), target.MGL(), up.MGL()))
}

// Mul returns m * b.
func (m Mat4) Mul(b Mat4) Mat4 {
	return Mat4(mgl64.Mat4(m).Mul4(mgl64.Mat4(b)))
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return vec4FromMGL(mgl64.Mat4(m).Mul4x1(v.mgl()))
}

// MulVec3 transforms a point (w = 1). The result is not perspective divided.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).Vec3()
}

// MulVec3Dir transforms a direction (w = 0).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Inverse returns the inverse, or the zero matrix when m is singular.
func (m Mat4) Inverse() Mat4 {
	return Mat4(mgl64.Mat4(m).Inv())
}

// ApproxEqual compares two matrices element-wise within eps.
func (m Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
