package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/fractal-tree/internal/config"
	"github.com/iburimskiy/fractal-tree/internal/game"
	"github.com/iburimskiy/fractal-tree/internal/logging"
	"github.com/iburimskiy/fractal-tree/internal/surface"
)

type snapshotOptions struct {
	out     string
	elapsed time.Duration
	width   int
	height  int
}

func snapshotCmd(flags *rootFlags) *cobra.Command {
	var opts snapshotOptions

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame of the animation to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return runSnapshot(cmd.Context(), *flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "tree.png", "output PNG path")
	cmd.Flags().DurationVar(&opts.elapsed, "elapsed", 0, "animation time to simulate before rendering")
	cmd.Flags().IntVar(&opts.width, "width", config.ScreenWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", config.ScreenHeight, "image height in pixels")

	return cmd
}

// runSnapshot steps the animation at the configured rate for the elapsed
// time and writes the resulting frame.
func runSnapshot(ctx context.Context, flags rootFlags, opts snapshotOptions) error {
	logger := logging.FromContext(ctx)
	progress := logging.NewProgress(logger)

	gg.SetLogger(slog.New(logger))

	start, end := game.RootAnchors(float64(opts.width), float64(opts.height))
	d, err := game.NewDriver(config.FileSource{Path: flags.configPath}, start, end, logger)
	if err != nil {
		return err
	}

	if flags.tps <= 0 {
		return fmt.Errorf("--tps must be positive, got %d", flags.tps)
	}
	dt := 1 / float64(flags.tps)
	steps := int(opts.elapsed.Seconds() * float64(flags.tps))
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Tick(dt); err != nil {
			return err
		}
	}
	logger.Debug("Simulated animation", "steps", steps, "angle", d.Angle())

	r, err := surface.NewRaster(opts.width, opts.height)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := game.Present(r, d); err != nil {
		return err
	}
	if err := r.SavePNG(opts.out); err != nil {
		return err
	}

	progress.Done("Wrote snapshot", "path", opts.out, "lines", len(d.Lines()))
	return nil
}
