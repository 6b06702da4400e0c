package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zmwangx/docpub/internal/colorout"
	"github.com/zmwangx/docpub/internal/config"
	"github.com/zmwangx/docpub/internal/deploy"
	"github.com/zmwangx/docpub/internal/ezlog"
	"github.com/zmwangx/docpub/internal/git"
	"github.com/zmwangx/docpub/internal/model"
)

// configFile is the user config file, relative to the XDG config home.
// Command line flags take precedence over its values, which in turn
// take precedence over the built-in defaults:
//
//	deploy:
//	  dir: ../site-build/html
//	  remote: upstream
//	  branch: gh-pages
//	  source: main
//	  sign: false
const configFile = "docpub/config.yaml"

// deployFlags holds the flag values for the deploy command.
type deployFlags struct {
	dir          string // --dir: documentation build directory
	remote       string // --remote: push target remote
	branch       string // --branch: push target branch
	sourceBranch string // --source-branch: branch the docs were built from
	noSign       bool   // -n/--no-sign: skip commit signing
}

// NewDeployCommand creates the "deploy" cobra command.
func NewDeployCommand() *cobra.Command {
	flags := &deployFlags{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Publish the built documentation tree to GitHub Pages",
		Long: `Publish the pre-built documentation tree to the GitHub Pages branch.

The build directory must be a git working tree checked out on the pages
branch (typically a second clone or worktree of the repository). The
command drops a .nojekyll sentinel, stages and commits everything with
a message naming the docs version and the source branch's latest
commit, verifies the tree is clean, and pushes.

The publish commit is GPG-signed unless -n is given. Flag defaults can
be set in ` + "`~/.config/" + configFile + "`" + ` under the "deploy" key.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.noSign, "no-sign", "n", false, "Do not GPG-sign the publish commit")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Documentation build directory (default: <repo root>/"+deploy.DefaultBuildDir+")")
	cmd.Flags().StringVar(&flags.remote, "remote", deploy.DefaultRemote, "Remote to push to")
	cmd.Flags().StringVar(&flags.branch, "branch", deploy.DefaultBranch, "Branch to push to")
	cmd.Flags().StringVar(&flags.sourceBranch, "source-branch", deploy.DefaultSourceBranch, "Branch the documentation was generated from")

	return cmd
}

func runDeploy(cmd *cobra.Command, flags *deployFlags) error {
	ctx := cmd.Context()
	g := git.NewRunner()

	applyConfig(cmd, flags)

	dir := flags.dir
	if dir == "" {
		resolved, err := defaultBuildDir(cmd, g)
		if err != nil {
			return err
		}
		dir = resolved
	}
	VerboseLog("documentation build directory: %s", dir)

	log := setupLog()
	d := deploy.New(g, deploy.Options{
		Dir:          dir,
		Remote:       flags.remote,
		Branch:       flags.branch,
		SourceBranch: flags.sourceBranch,
		NoSign:       flags.noSign,
	}, func(format string, args ...any) {
		colorout.Progress(format, args...)
		log.Info(fmt.Sprintf(format, args...))
	})

	if err := d.Run(ctx); err != nil {
		log.Error("deployment failed", "error", err)
		return err
	}
	return nil
}

// applyConfig fills in flags not set on the command line from the user
// config file. Config problems are never fatal: deployment proceeds
// with the built-in defaults.
func applyConfig(cmd *cobra.Command, flags *deployFlags) {
	conf, err := config.Load(configFile, config.WithEnvPrefix("DOCPUB_"))
	if err != nil {
		VerboseLog("no usable config: %v", err)
		return
	}

	set := func(flagName, key string, dst *string) {
		if !cmd.Flags().Changed(flagName) && conf.Exists(key) {
			*dst = conf.String(key)
			VerboseLog("%s = %q (from config)", flagName, *dst)
		}
	}
	set("dir", "deploy.dir", &flags.dir)
	set("remote", "deploy.remote", &flags.remote)
	set("branch", "deploy.branch", &flags.branch)
	set("source-branch", "deploy.source", &flags.sourceBranch)

	if !cmd.Flags().Changed("no-sign") && conf.Exists("deploy.sign") {
		flags.noSign = !conf.Bool("deploy.sign")
	}
}

// setupLog opens the deployment log file under the XDG data home. A
// failure degrades to no file logging rather than blocking deployment.
func setupLog() *slog.Logger {
	log, err := ezlog.Setup("docpub", ezlog.WithoutConsole())
	if err != nil {
		VerboseLog("file logging disabled: %v", err)
		return slog.New(slog.DiscardHandler)
	}
	return log
}

// defaultBuildDir resolves the conventional build directory relative to
// the root of the repository enclosing the working directory.
func defaultBuildDir(cmd *cobra.Command, g *git.Runner) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", model.WrapCLIError(model.ExitFailure, "failed to get current directory", err)
	}
	root, err := g.RepoRoot(cmd.Context(), cwd)
	if err != nil {
		return "", model.WrapCLIError(model.ExitFailure, "not inside a git repository; pass --dir explicitly", err)
	}
	return filepath.Join(root, deploy.DefaultBuildDir), nil
}
