// facepull - extrude box faces and scale a sphere in your terminal.
//
// Controls:
//
//	Click box face - Start extruding, move the mouse to push or pull it
//	Click sphere   - Start scaling, move the mouse left/right
//	Click again    - End the gesture
//	B              - Reset the box
//	S              - Reset the sphere
//	M              - Cycle extrusion mode
//	Arrows / HJKL  - Orbit the camera
//	R              - Reset the view
//	+/-            - Zoom
//	?              - Toggle HUD
//	Q / Esc        - Quit
package main

import (
	"context"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/facepull/internal/config"
)

var version = "dev"

// settings holds the flags shared by every command.
type settings struct {
	configPath  string
	verbose     bool
	mode        string
	step        float64
	sensitivity float64
	tolerance   float64
	topology    bool
	fps         float64
}

func (s *settings) register(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.PersistentFlags()
	f.StringVar(&s.configPath, "config", "", "TOML settings file")
	f.BoolVarP(&s.verbose, "verbose", "v", false, "Log every gesture step")
	f.StringVar(&s.mode, "mode", def.Mode, "Extrusion mode: scaled-normal, projected or plane-projected")
	f.Float64Var(&s.step, "step", def.Step, "Scaled-normal extrusion step")
	f.Float64Var(&s.sensitivity, "sensitivity", def.Sensitivity, "Sphere scale change per pixel")
	f.Float64Var(&s.tolerance, "tolerance", def.Tolerance, "Grid size for matching coincident vertices (0 = exact)")
	f.BoolVar(&s.topology, "topology", def.UseTopology, "Group coincident vertices once instead of on every pick")
	f.Float64Var(&s.fps, "fps", def.FPS, "Target FPS")
}

// load reads the config file if any, then applies the flags that were set
// explicitly.
func (s *settings) load(cmd *cobra.Command) (config.Config, error) {
	if s.verbose {
		log.SetLogLevel(log.Debug)
	}
	cfg := config.Default()
	if s.configPath != "" {
		var err error
		if cfg, err = config.Load(s.configPath); err != nil {
			return cfg, err
		}
		log.Infof("Loaded config %s", s.configPath)
	}

	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode = s.mode
	}
	if f.Changed("step") {
		cfg.Step = s.step
	}
	if f.Changed("sensitivity") {
		cfg.Sensitivity = s.sensitivity
	}
	if f.Changed("tolerance") {
		cfg.Tolerance = s.tolerance
	}
	if f.Changed("topology") {
		cfg.UseTopology = s.topology
	}
	if f.Changed("fps") {
		cfg.FPS = s.fps
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	cmd := &cobra.Command{
		Use:   "facepull",
		Short: "Extrude box faces and scale a sphere in the terminal",
		Long: `facepull - interactive face extrusion in the terminal

A box and a sphere, rendered with half-block pixels.

Controls:
  Click box face - Start extruding, then move the mouse
  Click sphere   - Start scaling, then move left/right
  Click again    - End the gesture
  B / S          - Reset box / sphere
  M              - Cycle extrusion mode
  Arrows, HJKL   - Orbit camera
  R              - Reset view
  +/-            - Zoom
  ?              - Toggle HUD
  Q, Esc         - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			return runTerminal(cfg)
		},
	}
	s.register(cmd)

	cmd.AddCommand(newReplayCmd(s), newInfoCmd())
	return cmd
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
