package render

import (
	"math"

	"github.com/taigrr/facepull/pkg/math3d"
)

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	FOV    float64 // Vertical field of view in radians
	Aspect float64
	Near   float64
	Far    float64
}

// NewCamera creates a camera at (0, 0, 5) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.V3(0, 0, 5),
		Up:       math3d.Up(),
		FOV:      math.Pi / 3,
		Aspect:   1,
		Near:     0.1,
		Far:      100,
	}
}

// SetAspectRatio sets width / height.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(p math3d.Vec3) {
	c.Position = p
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
}

// Orbit places the camera on a sphere of radius distance around target.
// Yaw turns around the world Y axis, pitch tilts toward it; both are in
// radians and (0, 0) looks down -Z.
func (c *Camera) Orbit(target math3d.Vec3, yaw, pitch, distance float64) {
	pitch = math.Max(-1.5, math.Min(1.5, pitch))
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	c.Target = target
	c.Position = target.Add(math3d.V3(sy*cp, sp, cy*cp).Scale(distance))
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the view-to-clip transform.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// WorldToScreen projects p into a width × height viewport. Visible is false
// when p lies behind the camera.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	return x, y, ndc.Z, true
}

// ScreenRay returns the ray through pixel position (px, py) of a
// width × height viewport. The ray starts on the near plane.
func (c *Camera) ScreenRay(px, py float64, width, height int) math3d.Ray {
	ndcX := 2*px/float64(width) - 1
	ndcY := 1 - 2*py/float64(height)

	inv := c.ViewProjectionMatrix().Inverse()
	near := inv.MulVec4(math3d.V4(ndcX, ndcY, -1, 1)).PerspectiveDivide()
	far := inv.MulVec4(math3d.V4(ndcX, ndcY, 1, 1)).PerspectiveDivide()

	return math3d.Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}
