package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/facepull/pkg/extrude"
	"github.com/taigrr/facepull/pkg/math3d"
	"github.com/taigrr/facepull/pkg/render"
)

// Script is a recorded sequence of pointer actions replayed against a scene
// viewed through a fixed camera.
//
//	width = 320
//	height = 200
//
//	[[step]]
//	action = "pick"
//	x = 60
//	y = 100
//
//	[[step]]
//	action = "move"
//	x = 90
//	y = 100
type Script struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Mode overrides the scene's displacement mode when set.
	Mode string `toml:"mode,omitempty"`
	// Camera orbit around the origin, radians and world units.
	Yaw      float64 `toml:"yaw"`
	Pitch    float64 `toml:"pitch"`
	Distance float64 `toml:"distance"`

	Steps []Step `toml:"step"`
}

// Step is one scripted action.
type Step struct {
	// Action is pick, move or reset.
	Action string  `toml:"action"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	// Target is box or sphere for reset.
	Target string `toml:"target,omitempty"`
}

// Step actions.
const (
	ActionPick  = "pick"
	ActionMove  = "move"
	ActionReset = "reset"
)

// LoadScript reads a TOML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(bytes.NewReader(data))
}

// ParseScript decodes a TOML script. Unknown keys are rejected.
func ParseScript(r io.Reader) (*Script, error) {
	s := &Script{Width: 320, Height: 200, Distance: 7}
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("parse script line %d col %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the viewport and every step.
func (s *Script) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("script viewport %dx%d must be positive", s.Width, s.Height)
	}
	if s.Distance <= 0 {
		return fmt.Errorf("script camera distance %v must be positive", s.Distance)
	}
	if s.Mode != "" {
		if _, err := extrude.ParseMode(s.Mode); err != nil {
			return err
		}
	}
	for i, st := range s.Steps {
		if !math3d.V2(st.X, st.Y).IsFinite() {
			return fmt.Errorf("step %d: non-finite position (%v, %v)", i+1, st.X, st.Y)
		}
		switch st.Action {
		case ActionPick, ActionMove:
		case ActionReset:
			if st.Target != "box" && st.Target != "sphere" {
				return fmt.Errorf("step %d: reset target %q, want box or sphere", i+1, st.Target)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}
	}
	return nil
}

// Camera returns the camera the script's coordinates refer to.
func (s *Script) Camera() *render.Camera {
	cam := render.NewCamera()
	cam.SetAspectRatio(float64(s.Width) / float64(s.Height))
	cam.Orbit(math3d.Zero3(), s.Yaw, s.Pitch, s.Distance)
	return cam
}

// Run replays the steps against sc. Step errors are returned with their
// step number; a failed move ends the gesture the way interactive hosts do.
func (s *Script) Run(sc *Scene) error {
	if s.Mode != "" {
		m, err := extrude.ParseMode(s.Mode)
		if err != nil {
			return err
		}
		sc.SetMode(m)
	}
	cam := s.Camera()
	for i, st := range s.Steps {
		screen := math3d.V2(st.X, st.Y)
		ray := cam.ScreenRay(st.X, st.Y, s.Width, s.Height)
		switch st.Action {
		case ActionPick:
			if err := sc.Click(ray, screen); err != nil {
				return fmt.Errorf("step %d pick: %w", i+1, err)
			}
		case ActionMove:
			if _, err := sc.Drag(ray, screen); err != nil {
				sc.EndGesture()
				return fmt.Errorf("step %d move: %w", i+1, err)
			}
		case ActionReset:
			if st.Target == "box" {
				sc.ResetBox()
			} else {
				sc.ResetSphere()
			}
		}
		log.Debugf("step %d %s (%g, %g): %s", i+1, st.Action, st.X, st.Y, sc.Status())
	}
	return nil
}
