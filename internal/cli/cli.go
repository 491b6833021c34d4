// Package cli implements the ductcalc command-line interface.
//
// Every command prints JSON by default; --format text renders tables with
// values rounded for reading. Rounding happens only here, never in the
// calculators.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"Ducted/internal/config"
	"Ducted/internal/standards"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type app struct {
	stdout        io.Writer
	stderr        io.Writer
	format        string
	verbose       bool
	standardsPath string
	limits        *standards.Limits
}

// NewRootCommand builds the command tree writing results to stdout and logs
// to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "ductcalc",
		Short:         "Size HVAC ducts and compute system pressure loss",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(a.stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			if a.format != formatJSON && a.format != formatText {
				return fmt.Errorf("unknown format %q (want json or text)", a.format)
			}
			limits, err := config.Config{StandardsPath: a.standardsPath}.Limits()
			if err != nil {
				return err
			}
			a.limits = limits
			logger.Debug("standards loaded", "version", limits.Version())
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.format, "format", "f", formatJSON, "output format: json or text")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&a.standardsPath, "standards", os.Getenv(config.EnvStandards), "YAML file overriding the built-in standards table")

	root.AddCommand(a.newSizeCmd())
	root.AddCommand(a.newFittingCmd())
	root.AddCommand(a.newSystemCmd())
	root.AddCommand(a.newStandardsCmd())
	root.AddCommand(a.newServeCmd())
	return root
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}
