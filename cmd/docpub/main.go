// Package main is the entry point for the docpub CLI.
//
// The binary publishes pre-built documentation to a GitHub Pages
// branch and bundles a few day-to-day scripting utilities. All
// functionality is delegated to the internal/cli package.
package main

import (
	"github.com/zmwangx/docpub/internal/cli"
	"github.com/zmwangx/docpub/internal/version"
)

// Build-time identification, injected via ldflags by the release
// process. During development they keep these defaults.
var (
	ver    = "dev"
	commit = "none"
	date   = "unknown"
)

func main() {
	version.Version = ver
	version.Commit = commit
	version.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
