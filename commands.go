package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"kerf-view/config"
	"kerf-view/drawing"
	"kerf-view/trace"
	"kerf-view/viewport"
)

type globalFlags struct {
	configPath string
	verbose    bool
	logJSON    bool
}

// setup configures logging and loads the configuration.
func (g *globalFlags) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	log := newLogger(cmd.ErrOrStderr(), g.verbose, g.logJSON)
	slog.SetDefault(log)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "kerf-view [file]",
		Short: "Pan and zoom viewer for 2D cutting drawings",
		Long: `kerf-view renders a line/arc/circle drawing (.yaml or .star) in a
resizable window. Drag with the left or middle button to pan, use the wheel
or +/- to zoom, 0 to reset, F to fit the drawing, R to reload, O to export an offset copy and F12
for a screenshot.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, g, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "YAML config file layered over the defaults")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&g.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(newViewCommand(g))
	root.AddCommand(newReplayCommand(g))
	root.AddCommand(newConvertCommand(g))
	root.AddCommand(newOffsetCommand(g))
	root.AddCommand(newConfigCommand(g))
	return root
}

func newViewCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Open the viewer window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, g, args)
		},
	}
}

func newReplayCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <events.csv>",
		Short: "Replay a recorded input trace and print camera frames as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			events, err := trace.ReadEvents(f)
			if err != nil {
				return err
			}

			frames := trace.Replay(viewport.New(cfg.Camera.Params()), events)
			log.Debug("replayed trace", "path", args[0], "events", len(events))
			return trace.WriteFrames(cmd.OutOrStdout(), frames)
		},
	}
}

func newConvertCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in.star|in.yaml> <out.yaml>",
		Short: "Evaluate a drawing source and write it as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := g.setup(cmd)
			if err != nil {
				return err
			}

			d, err := drawing.Load(args[0])
			if err != nil {
				return err
			}
			if err := drawing.Save(args[1], d); err != nil {
				return err
			}
			log.Info("converted drawing", "from", args[0], "to", args[1], "entities", len(d.Entities))
			return nil
		},
	}
}

func newOffsetCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "offset <file> [distance]",
		Short: "Run the offset program on a drawing and write <name>-offset<ext>",
		Long: `Runs the configured offset program on a drawing. The distance defaults
to offset.distance from the config. Put negative distances after "--".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd)
			if err != nil {
				return err
			}

			distance := cfg.Offset.Distance
			if len(args) == 2 {
				distance, err = strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid distance %q: %w", args[1], err)
				}
			}

			out, err := exportOffset(cmd.Context(), newAdjuster(cfg, log), args[0], distance)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newConfigCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the viewer configuration",
	}
	cmd.AddCommand(newConfigInitCommand(g))
	return cmd
}

func newConfigInitCommand(g *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd.ErrOrStderr(), g.verbose, g.logJSON)

			path := DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			if err := config.Default().WriteYAML(path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			log.Info("wrote default config", "path", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
