// facepull-window - the facepull scene in a desktop window.
//
// Controls:
//
//	Left click box face - Start extruding, move the mouse to push or pull it
//	Left click sphere   - Start scaling, move the mouse left/right
//	Left click again    - End the gesture
//	Right drag          - Orbit the camera
//	Wheel               - Zoom
//	B / S               - Reset box / sphere (or use the buttons)
//	M                   - Cycle extrusion mode
//	R                   - Reset the view
//	Esc / Q             - Quit
package main

import (
	"context"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/taigrr/facepull/internal/config"
	"github.com/taigrr/facepull/internal/orbit"
	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/render"
	"github.com/taigrr/facepull/pkg/scene"
)

const (
	orbitSpeed = 0.01
	zoomSpeed  = 0.5
)

// button is a clickable rectangle drawn into the framebuffer.
type button struct {
	label      string
	x, y, w, h int
	action     func()
}

func (b button) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// Game implements ebiten.Game for the facepull scene.
type Game struct {
	scene  *scene.Scene
	pal    scene.Palette
	fb     *render.Framebuffer
	camera *render.Camera
	raster *render.Rasterizer
	view   *orbit.Orbit

	img     *ebiten.Image
	pix     []byte
	buttons []button

	lastX, lastY int
}

// NewGame creates a game rendering at width × height pixels.
func NewGame(cfg config.Config, width, height int) (*Game, error) {
	sc, err := scene.New(cfg.SceneOptions())
	if err != nil {
		return nil, err
	}
	fb := render.NewFramebuffer(width, height)
	camera := render.NewCamera()
	camera.SetAspectRatio(float64(width) / float64(height))
	g := &Game{
		scene:  sc,
		pal:    cfg.Palette(),
		fb:     fb,
		camera: camera,
		raster: render.NewRasterizer(camera, fb),
		view:   orbit.New(int(cfg.FPS)),
		img:    ebiten.NewImage(width, height),
		pix:    make([]byte, 4*width*height),
	}
	g.buttons = []button{
		{label: "Reset Box", x: width - 200, y: 8, w: 90, h: 20, action: sc.ResetBox},
		{label: "Reset Sphere", x: width - 104, y: 8, w: 96, h: 20, action: sc.ResetSphere},
	}
	g.view.Apply(camera)
	return g, nil
}

func (g *Game) ray(x, y int) (math3d.Ray, math3d.Vec2) {
	px, py := float64(x)+0.5, float64(y)+0.5
	return g.camera.ScreenRay(px, py, g.fb.Width, g.fb.Height), math3d.V2(px, py)
}

func (g *Game) click(x, y int) {
	for _, b := range g.buttons {
		if b.contains(x, y) {
			b.action()
			return
		}
	}
	ray, screen := g.ray(x, y)
	if err := g.scene.Click(ray, screen); err != nil {
		log.Warnf("pick rejected: %v", err)
	}
}

// Update handles input once per tick.
func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	dx, dy := x-g.lastX, y-g.lastY

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.click(x, y)
	case dx != 0 || dy != 0:
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			g.view.Turn(-float64(dx)*orbitSpeed, float64(dy)*orbitSpeed)
			break
		}
		ray, screen := g.ray(x, y)
		if _, err := g.scene.Drag(ray, screen); err != nil {
			log.Warnf("move rejected, ending gesture: %v", err)
			g.scene.EndGesture()
		}
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.view.Zoom(-wy * zoomSpeed)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.scene.ResetBox()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.scene.ResetSphere()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.scene.SetMode(g.scene.Mode().Next())
		log.Infof("Extrusion mode %v", g.scene.Mode())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.view.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}

	g.view.Update()
	g.view.Apply(g.camera)
	return nil
}

// Draw renders the scene through the software rasterizer and blits it.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(g.fb, g.raster, g.pal)
	for _, b := range g.buttons {
		g.fb.FillRect(b.x, b.y, b.w, b.h, render.ColorGray)
	}
	g.fb.WriteRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	for _, b := range g.buttons {
		ebitenutil.DebugPrintAt(screen, b.label, b.x+6, b.y+2)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %.0f FPS", g.scene.Status(), ebiten.ActualFPS()), 8, 8)
	ebitenutil.DebugPrintAt(screen, "click: pick/release  right drag: orbit  M: mode  B/S: reset", 8, g.fb.Height-20)
}

// Layout keeps the logical screen at the framebuffer size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.fb.Width, g.fb.Height
}

func main() {
	var (
		configPath    string
		verbose       bool
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "facepull-window",
		Short: "Extrude box faces and scale a sphere in a window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				log.SetLogLevel(log.Debug)
			}
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			g, err := NewGame(cfg, width, height)
			if err != nil {
				return err
			}
			ebiten.SetWindowSize(width, height)
			ebiten.SetWindowTitle("facepull")
			ebiten.SetTPS(int(cfg.FPS))
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "TOML settings file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every gesture step")
	cmd.Flags().IntVar(&width, "width", 960, "Window width")
	cmd.Flags().IntVar(&height, "height", 600, "Window height")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}
