// Package cli implements the mindscape command-line interface.
//
// # Commands
//
//   - run: open a window and drive a scene's input, dispatch and render loop
//   - layout: print the rectangles a scene's grids produce for a window size
//
// Both commands take an optional scene file; without one they use the built-in
// demo scene. All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/mindscape/config"
)

// Version is overridden at link time.
var Version = "dev"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Errors are returned, not printed.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "mindscape",
		Short: "Mindscape lays out and runs grid-based widget scenes",
		Long: `Mindscape renders scenes of containers and labels tiled on weighted grids,
and dispatches keyboard and mouse events through the widget tree.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.layoutCommand())

	return root
}

// Execute runs the command line args and returns the process exit code: 0 on
// success, 130 when ctx was cancelled and 1 for any other error, which is logged.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	root := c.RootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		c.Logger.Warn("interrupted")
		return 130
	}
	c.Logger.Error("command failed", "err", err)
	return 1
}

// loadScene reads the scene named by the optional first argument.
func loadScene(args []string) (*config.Scene, error) {
	if len(args) == 0 {
		return config.Default(), nil
	}
	return config.Load(args[0])
}
