package scene

import (
	"github.com/taigrr/facepull/pkg/extrude"
	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/render"
)

// Palette holds the colors the scene is drawn with.
type Palette struct {
	Background render.Color
	Box        render.Color
	Sphere     render.Color
	Highlight  render.Color
	Edge       render.Color
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	return Palette{
		Background: render.RGB(16, 18, 24),
		Box:        render.RGB(90, 140, 220),
		Sphere:     render.RGB(200, 120, 70),
		Highlight:  render.ColorYellow,
		Edge:       render.ColorWhite,
	}
}

// LightDir is the direction of the scene's directional light.
var LightDir = math3d.V3(0.4, 0.8, 1).Normalize()

// Draw renders the scene. The selected box quad and the sphere under a
// gesture are drawn in the highlight color.
func (s *Scene) Draw(fb *render.Framebuffer, r *render.Rasterizer, pal Palette) {
	fb.Clear(pal.Background)
	r.ClearDepth()

	selected := -1
	g := s.Controller.Gesture()
	if s.Controller.State() == extrude.StateSelecting && g.Target == extrude.TargetBox {
		selected = g.FaceID / 2
	}
	r.DrawMeshColored(s.Box, s.Box.ModelMatrix(), func(tri int) render.Color {
		if tri/2 == selected {
			return pal.Highlight
		}
		return pal.Box
	}, LightDir)

	sphereColor := pal.Sphere
	if s.Controller.State() == extrude.StateSelecting && g.Target == extrude.TargetSphere {
		sphereColor = sphereColor.Lerp(pal.Highlight, 0.5)
	}
	r.DrawMesh(s.Sphere.Mesh, s.Sphere.ModelMatrix(), sphereColor, LightDir)

	r.DrawEdges(s.Box.Edges(), pal.Edge)
}
