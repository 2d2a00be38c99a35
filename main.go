package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/fractal-tree/internal/config"
	"github.com/iburimskiy/fractal-tree/internal/game"
	"github.com/iburimskiy/fractal-tree/internal/logging"
)

// flags shared by every command.
type rootFlags struct {
	configPath string
	verbose    bool
	dialogs    bool
	tps        int
}

func mainCmd() *cobra.Command {
	var (
		flags rootFlags
		chime bool
	)

	cmd := &cobra.Command{
		Use:   "fractal-tree",
		Short: "Animate a branching fractal tree",
		Long: `Opens a window with a fractal tree whose branch angle swings over time.
Press R to reload the config file.`,
		Args: cobra.ExactArgs(0),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.New(os.Stderr, logging.Level(flags.verbose))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fatal(cmd.Context(), flags, runWindow(cmd.Context(), flags, chime))
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath, "tree config file (TOML)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().BoolVar(&flags.dialogs, "dialogs", true, "show fatal errors in a desktop dialog")
	cmd.PersistentFlags().IntVar(&flags.tps, "tps", 60, "animation updates per second")
	cmd.Flags().BoolVar(&chime, "chime", false, "play a tone after each reload")

	cmd.AddCommand(snapshotCmd(&flags))

	return cmd
}

func runWindow(ctx context.Context, flags rootFlags, chime bool) error {
	logger := logging.FromContext(ctx)

	start, end := game.RootAnchors(config.ScreenWidth, config.ScreenHeight)
	d, err := game.NewDriver(config.FileSource{Path: flags.configPath}, start, end, logger)
	if err != nil {
		return err
	}
	logger.Debug("Loaded config", "path", flags.configPath, "segments", d.Tree().Count())

	g := game.New(d, game.Options{TPS: flags.tps, Chime: chime, Logger: logger})
	return game.Run(g, flags.tps)
}

// fatal logs err and, if enabled, shows it in a dialog before the process exits.
func fatal(ctx context.Context, flags rootFlags, err error) error {
	if err == nil {
		return nil
	}
	logger := logging.FromContext(ctx)
	logger.Error("Fatal", "err", err)
	if flags.dialogs {
		if derr := game.ShowFatal(err); derr != nil {
			logger.Debug("Could not show error dialog", "err", derr)
		}
	}
	return err
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
