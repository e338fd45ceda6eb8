// Package cli implements the gridflow command-line interface.
//
// This package provides commands for laying out flowchart diagrams, routing
// their edges through the grid, and managing named diagram snapshots. The CLI
// is built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute the layer/row placement for every node of a diagram
//   - route: Compute routed polylines for every edge of a diagram
//   - snapshot: Save, show, list, and remove named diagram snapshots
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gridflow-dev/gridflow/pkg/buildinfo"
	apperrors "github.com/gridflow-dev/gridflow/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "gridflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config loaded
// from the default location (missing config files fall back to defaults).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := LoadConfig("")
	if err != nil {
		// A broken config file must not make the CLI unusable; report it
		// and continue with defaults.
		c.Logger.Warn("ignoring config file", "err", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// ReportError prints a command failure to stderr in the CLI's error style,
// using the coded error's user message when one is available.
func (c *CLI) ReportError(err error) {
	c.printError("%s", apperrors.UserMessage(err))
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridflow lays out flowchart diagrams on a routing grid",
		Long:         `Gridflow is a CLI tool for computing deterministic layered layouts and collision-avoiding orthogonal edge routes for flowchart diagrams.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.completionCommand())

	return root
}
