// Package cli implements the cobra-based CLI commands for docpub.
//
// Each subcommand (deploy, humansize, humantime, urlgrep, hash) is
// defined in its own file within this package. This file defines the
// root command and the error-to-exit-code translation.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zmwangx/docpub/internal/colorout"
	"github.com/zmwangx/docpub/internal/model"
	"github.com/zmwangx/docpub/internal/version"
)

// verbose is bound to the persistent --verbose flag and shared by all
// subcommands.
var verbose bool

// NewRootCommand creates and configures the root cobra command.
//
// The root command performs no action of its own; functionality lives
// in the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docpub",
		Short: "Publish built documentation to GitHub Pages, plus scripting utilities",
		Long: `docpub publishes a pre-built documentation tree to a GitHub Pages
branch with a single command, and bundles a few day-to-day scripting
utilities (size and duration formatting, URL extraction, file hashing)
as subcommands.`,

		// Errors are formatted by Execute; keep cobra quiet.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.Date),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewDeployCommand())
	rootCmd.AddCommand(NewHumansizeCommand())
	rootCmd.AddCommand(NewHumantimeCommand())
	rootCmd.AddCommand(NewURLGrepCommand())
	rootCmd.AddCommand(NewHashCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process
// exit codes. Displaying usage — whether requested with -h/--help or
// triggered by bad arguments — exits non-zero: nothing was done.
func Execute(rootCmd *cobra.Command) {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		if cmd != nil && helpRequested(cmd) {
			os.Exit(int(model.ExitFailure))
		}
		return
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		colorout.Error("%s", cliErr.Error())
		os.Exit(int(cliErr.Code))
	}

	colorout.Error("%s", err)
	os.Exit(int(model.ExitFailure))
}

// helpRequested reports whether the help flag was set on the executed
// command. A bare "docpub" invocation also prints help (the root
// command has no run function), but without the flag set it exits 0;
// only explicitly asking for help is treated as a failed run.
func helpRequested(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("help")
	return f != nil && f.Changed
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled.
func VerboseLog(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
