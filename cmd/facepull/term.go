package main

import (
	"fmt"
	"time"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
	"fortio.org/terminal/ansipixels/tcolor"

	"github.com/taigrr/facepull/internal/config"
	"github.com/taigrr/facepull/internal/orbit"
	"github.com/taigrr/facepull/pkg/extrude"
	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/render"
	"github.com/taigrr/facepull/pkg/scene"
)

const (
	turnStep = 0.15
	zoomStep = 0.5
)

// HUD renders the status overlay.
type HUD struct {
	show      bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD() *HUD {
	return &HUD{show: true, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the overlay on top of the image.
func (h *HUD) Draw(ap *ansipixels.AnsiPixels, sc *scene.Scene) {
	if !h.show {
		return
	}
	ap.WriteAt(0, 0, tcolor.Green.Foreground()+"%.0f FPS "+tcolor.Reset, h.fps)
	ap.WriteCentered(0, "%s", sc.Status())
	ap.WriteRight(0, tcolor.Cyan.Foreground()+"scale %.3f"+tcolor.Reset, sc.Sphere.Scale())

	ap.WriteAt(0, ap.H-1, "B: reset box  S: reset sphere  M: mode")
	ap.WriteRight(ap.H-1, "%s?: HUD  Q: quit%s", tcolor.Yellow.Foreground(), tcolor.Reset)
}

// cellToPixel maps a 1-based terminal cell to the center of its upper
// half-block pixel.
func cellToPixel(mx, my int) (float64, float64) {
	return float64(mx-1) + 0.5, float64((my-1)*2) + 0.5
}

// terminal is the interactive terminal host.
type terminal struct {
	ap     *ansipixels.AnsiPixels
	scene  *scene.Scene
	pal    scene.Palette
	fb     *render.Framebuffer
	camera *render.Camera
	raster *render.Rasterizer
	view   *orbit.Orbit
	hud    *HUD
}

func (t *terminal) rayAt(mx, my int) (math3d.Ray, math3d.Vec2) {
	px, py := cellToPixel(mx, my)
	return t.camera.ScreenRay(px, py, t.fb.Width, t.fb.Height), math3d.V2(px, py)
}

func (t *terminal) onMouse() {
	ap := t.ap
	ray, screen := t.rayAt(ap.Mx, ap.My)
	switch {
	case ap.LeftClick():
		if err := t.scene.Click(ray, screen); err != nil {
			log.Warnf("pick rejected: %v", err)
			return
		}
		g := t.scene.Controller.Gesture()
		if t.scene.Controller.State() == extrude.StateSelecting {
			log.Infof("Gesture on %v started", g.Target)
		}
	case ap.MouseRelease():
	default:
		if _, err := t.scene.Drag(ray, screen); err != nil {
			log.Warnf("move rejected, ending gesture: %v", err)
			t.scene.EndGesture()
		}
	}
}

// handleKeys processes one read of keyboard input. It returns false to quit.
func (t *terminal) handleKeys(data []byte) bool {
	switch string(data) {
	case "\x1b[A":
		t.view.Turn(0, turnStep)
		return true
	case "\x1b[B":
		t.view.Turn(0, -turnStep)
		return true
	case "\x1b[C":
		t.view.Turn(turnStep, 0)
		return true
	case "\x1b[D":
		t.view.Turn(-turnStep, 0)
		return true
	}
	for _, b := range data {
		switch b {
		case 'b', 'B':
			t.scene.ResetBox()
		case 's', 'S':
			t.scene.ResetSphere()
		case 'm', 'M':
			t.scene.SetMode(t.scene.Mode().Next())
			log.Infof("Extrusion mode %v", t.scene.Mode())
		case 'h', 'H':
			t.view.Turn(-turnStep, 0)
		case 'l', 'L':
			t.view.Turn(turnStep, 0)
		case 'k', 'K':
			t.view.Turn(0, turnStep)
		case 'j', 'J':
			t.view.Turn(0, -turnStep)
		case 'r', 'R':
			t.view.Reset()
		case '+', '=':
			t.view.Zoom(-zoomStep)
		case '-', '_':
			t.view.Zoom(zoomStep)
		case '?':
			t.hud.show = !t.hud.show
		case 'q', 'Q', 27, 3, 4: // Esc, Ctrl-C, Ctrl-D
			return false
		}
	}
	return true
}

func (t *terminal) frame() error {
	t.view.Update()
	t.view.Apply(t.camera)
	t.scene.Draw(t.fb, t.raster, t.pal)

	t.ap.ClearScreen()
	if err := t.ap.ShowScaledImage(t.fb.ToImage()); err != nil {
		return fmt.Errorf("show image: %w", err)
	}
	t.hud.UpdateFPS()
	t.hud.Draw(t.ap, t.scene)
	return nil
}

func runTerminal(cfg config.Config) error {
	sc, err := scene.New(cfg.SceneOptions())
	if err != nil {
		return err
	}

	ap := ansipixels.NewAnsiPixels(cfg.FPS)
	if err = ap.Open(); err != nil {
		return fmt.Errorf("open ansipixels: %w", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.MouseTrackingOn()
	ap.HideCursor()

	if ap.W <= 0 || ap.H <= 0 {
		return fmt.Errorf("invalid terminal size: %dx%d", ap.W, ap.H)
	}

	// Using 2x height for half-block characters
	fb := render.NewFramebuffer(ap.W, ap.H*2)
	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	t := &terminal{
		ap:     ap,
		scene:  sc,
		pal:    cfg.Palette(),
		fb:     fb,
		camera: camera,
		raster: render.NewRasterizer(camera, fb),
		view:   orbit.New(int(cfg.FPS)),
		hud:    newHUD(),
	}
	t.view.Apply(camera)
	log.Infof("Extrusion mode %v, step %g, sensitivity %g", sc.Mode(), cfg.Step, cfg.Sensitivity)

	ap.OnMouse = t.onMouse
	ap.OnResize = func() error {
		fb.Resize(ap.W, ap.H*2)
		t.raster.Resize()
		camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
		return nil
	}

	var frameErr error
	err = ap.FPSTicks(func() bool {
		if len(ap.Data) > 0 && !t.handleKeys(ap.Data) {
			return false
		}
		if frameErr = t.frame(); frameErr != nil {
			log.Errf("%v", frameErr)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return frameErr
}
