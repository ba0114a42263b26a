package render

import (
	"math"
	"testing"

	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/models"
)

func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera()

	x, y, depth, ok := cam.WorldToScreen(math3d.Zero3(), 80, 60)
	if !ok {
		t.Fatal("origin not visible")
	}
	if math.Abs(x-40) > 1e-9 || math.Abs(y-30) > 1e-9 {
		t.Errorf("origin at (%v, %v), want (40, 30)", x, y)
	}
	if depth <= -1 || depth >= 1 {
		t.Errorf("depth = %v, want inside (-1, 1)", depth)
	}

	// +Y is up on screen
	_, yUp, _, _ := cam.WorldToScreen(math3d.V3(0, 1, 0), 80, 60)
	if yUp >= y {
		t.Errorf("y for +Y = %v, want above %v", yUp, y)
	}

	if _, _, _, ok := cam.WorldToScreen(math3d.V3(0, 0, 10), 80, 60); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestCameraScreenRay(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(4.0 / 3.0)

	ray := cam.ScreenRay(40, 30, 80, 60)
	if !ray.Dir.ApproxEqual(math3d.V3(0, 0, -1), 1e-9) {
		t.Errorf("center ray dir = %v, want (0,0,-1)", ray.Dir)
	}
	if math.Abs(ray.Origin.Z-4.9) > 1e-9 {
		t.Errorf("center ray origin z = %v, want 4.9 (near plane)", ray.Origin.Z)
	}

	// A ray through the projection of a point passes through that point
	p := math3d.V3(0.7, -0.4, 1.2)
	x, y, _, _ := cam.WorldToScreen(p, 80, 60)
	ray = cam.ScreenRay(x, y, 80, 60)
	toP := p.Sub(ray.Origin)
	if d := toP.Sub(ray.Dir.Scale(toP.Dot(ray.Dir))).Len(); d > 1e-9 {
		t.Errorf("ray misses projected point by %v", d)
	}
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera()
	cam.Orbit(math3d.V3(1, 0, 0), 0, 0, 4)
	if !cam.Position.ApproxEqual(math3d.V3(1, 0, 4), 1e-12) {
		t.Errorf("position = %v, want (1,0,4)", cam.Position)
	}
	if !cam.Forward().ApproxEqual(math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("forward = %v", cam.Forward())
	}

	cam.Orbit(math3d.Zero3(), 0, 10, 4)
	if cam.Position.Y >= 4 {
		t.Errorf("pitch not clamped: position %v", cam.Position)
	}
}

func TestRasterizerDrawMesh(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	cam := NewCamera()
	r := NewRasterizer(cam, fb)

	box := models.NewBox("box", 1)
	r.DrawMesh(box, math3d.Identity(), ColorWhite, math3d.V3(0, 0, 1))

	// The +Z face faces the camera and the light
	if c := fb.GetPixel(32, 32); c != ColorWhite {
		t.Errorf("center pixel = %v, want white", c)
	}
	if c := fb.GetPixel(1, 1); c != ColorBlack {
		t.Errorf("corner pixel = %v, want background", c)
	}
	if d := r.Depth(32, 32); d >= 1 {
		t.Errorf("center depth = %v, want written", d)
	}

	r.ClearDepth()
	if d := r.Depth(32, 32); d != math.MaxFloat64 {
		t.Errorf("depth after clear = %v", d)
	}
}

func TestRasterizerBackfaceCulling(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	r := NewRasterizer(NewCamera(), fb)

	// Clockwise as seen from +Z
	a, b, c := math3d.V3(-1, -1, 0), math3d.V3(0, 1, 0), math3d.V3(1, -1, 0)
	r.DrawTriangleFlat(a, b, c, ColorRed)
	if fb.GetPixel(16, 18) != ColorBlack {
		t.Error("back face drawn with culling enabled")
	}

	r.DisableBackfaceCulling = true
	r.DrawTriangleFlat(a, b, c, ColorRed)
	if fb.GetPixel(16, 18) != ColorRed {
		t.Error("back face not drawn with culling disabled")
	}
}

func TestRasterizerDepthOrder(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	r := NewRasterizer(NewCamera(), fb)

	near := math3d.Translate(math3d.V3(0, 0, 1))
	box := models.NewBox("box", 1)
	r.DrawMesh(box, near, ColorGreen, math3d.V3(0, 0, 1))
	r.DrawMesh(box, math3d.Identity(), ColorRed, math3d.V3(0, 0, 1))

	if c := fb.GetPixel(16, 16); c != ColorGreen {
		t.Errorf("center = %v, want the nearer green box", c)
	}
}

func TestRasterizerDrawMeshColored(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	r := NewRasterizer(NewCamera(), fb)
	box := models.NewBox("box", 1)

	// Triangles 8 and 9 form the +Z quad
	r.DrawMeshColored(box, math3d.Identity(), func(tri int) Color {
		if tri/2 == 4 {
			return ColorOrange
		}
		return ColorGray
	}, math3d.V3(0, 0, 1))

	if c := fb.GetPixel(32, 32); c != ColorOrange {
		t.Errorf("center = %v, want highlighted quad", c)
	}
}

func TestRasterizerEdges(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	r := NewRasterizer(NewCamera(), fb)

	r.DrawEdges([][2]math3d.Vec3{{math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0)}}, ColorYellow)
	if fb.GetPixel(20, 20) != ColorYellow {
		t.Error("edge through the center not drawn")
	}

	r.DrawMeshWireframe(models.NewBox("box", 1), math3d.Identity(), ColorBlue)
	drawn := 0
	for _, c := range fb.Pixels {
		if c == ColorBlue {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("wireframe drew nothing")
	}
}

func BenchmarkRasterizerSphere(b *testing.B) {
	fb := NewFramebuffer(160, 96)
	cam := NewCamera()
	cam.SetAspectRatio(160.0 / 96.0)
	r := NewRasterizer(cam, fb)
	sphere, err := models.NewSphere("sphere", 2, 24, 16)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fb.Clear(ColorBlack)
		r.ClearDepth()
		r.DrawMesh(sphere, math3d.Identity(), ColorWhite, math3d.V3(1, 1, 1))
	}
}
