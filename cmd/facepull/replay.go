package main

import (
	"fmt"

	"fortio.org/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/facepull/internal/config"
	"github.com/taigrr/facepull/pkg/models"
	"github.com/taigrr/facepull/pkg/render"
	"github.com/taigrr/facepull/pkg/scene"
)

type replayOptions struct {
	out      string
	snapshot string
	sphere   string
}

func newReplayCmd(s *settings) *cobra.Command {
	opts := &replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Run a scripted gesture headless and save the result",
		Long: `Replay a TOML gesture script against a fresh scene.

The extruded box is written to --out (.stl, .obj or .glb). --sphere writes
the scaled sphere the same way and --png saves a snapshot of the final frame.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			return runReplay(cfg, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "box.stl", "Output file for the box mesh")
	cmd.Flags().StringVar(&opts.sphere, "sphere", "", "Output file for the scaled sphere mesh")
	cmd.Flags().StringVar(&opts.snapshot, "png", "", "Save a PNG snapshot of the final scene")
	return cmd
}

func runReplay(cfg config.Config, scriptPath string, opts *replayOptions) error {
	script, err := scene.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	sc, err := scene.New(cfg.SceneOptions())
	if err != nil {
		return err
	}

	log.Infof("Replaying %d steps from %s", len(script.Steps), scriptPath)
	if err := script.Run(sc); err != nil {
		return fmt.Errorf("replay %s: %w", scriptPath, err)
	}
	log.Infof("Final state: %s", sc.Status())

	if opts.out != "" {
		box := sc.Box.Clone()
		box.Transform(sc.Box.ModelMatrix())
		if err := models.SaveFile(opts.out, box); err != nil {
			return err
		}
		log.Infof("Wrote box to %s", opts.out)
	}
	if opts.sphere != "" {
		sphere := sc.Sphere.Mesh.Clone()
		sphere.Transform(sc.Sphere.ModelMatrix())
		if err := models.SaveFile(opts.sphere, sphere); err != nil {
			return err
		}
		log.Infof("Wrote sphere to %s", opts.sphere)
	}
	if opts.snapshot != "" {
		fb := render.NewFramebuffer(script.Width, script.Height)
		sc.Draw(fb, render.NewRasterizer(script.Camera(), fb), cfg.Palette())
		if err := fb.SavePNG(opts.snapshot); err != nil {
			return err
		}
		log.Infof("Wrote snapshot to %s", opts.snapshot)
	}
	return nil
}
