// Package deploy publishes a pre-built documentation tree to a GitHub
// Pages branch.
//
// The workflow is a strict sequence of git operations on the
// documentation build directory, which must itself be a git working
// tree checked out on the pages branch:
//
//  1. drop the .nojekyll sentinel so GitHub Pages skips its Jekyll
//     pipeline,
//  2. stage everything,
//  3. commit with a message naming the docs version and the source
//     branch's latest commit,
//  4. verify the tree is clean,
//  5. push to the pages branch on the remote.
//
// The first failing step aborts the run; there are no retries and no
// rollback.
package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zmwangx/docpub/internal/git"
	"github.com/zmwangx/docpub/internal/logger"
	"github.com/zmwangx/docpub/internal/model"
	"github.com/zmwangx/docpub/internal/version"
)

// SentinelFile is the marker file that tells GitHub Pages to serve the
// tree as-is instead of running it through Jekyll.
const SentinelFile = ".nojekyll"

// Default publishing targets.
const (
	DefaultRemote       = "origin"
	DefaultBranch       = "gh-pages"
	DefaultSourceBranch = "master"
	DefaultBuildDir     = "build/html"
)

// Options configures a deployment.
type Options struct {
	// Dir is the documentation build directory: a pre-generated static
	// HTML tree that is also a git working tree on the pages branch.
	Dir string

	// Remote and Branch name the push target. Defaults: origin,
	// gh-pages.
	Remote string
	Branch string

	// SourceBranch is the branch the documentation was generated from;
	// its latest commit is referenced in the publish commit message.
	// Default: master.
	SourceBranch string

	// NoSign disables GPG signing of the publish commit.
	NoSign bool
}

// Deployer runs the publishing sequence.
type Deployer struct {
	git  *git.Runner
	opts Options
	logf logger.Logf
}

// New creates a Deployer. Unset option fields get their defaults; a
// nil logf discards progress output.
func New(g *git.Runner, opts Options, logf logger.Logf) *Deployer {
	if opts.Remote == "" {
		opts.Remote = DefaultRemote
	}
	if opts.Branch == "" {
		opts.Branch = DefaultBranch
	}
	if opts.SourceBranch == "" {
		opts.SourceBranch = DefaultSourceBranch
	}
	if logf == nil {
		logf = logger.Discard
	}
	return &Deployer{git: g, opts: opts, logf: logf}
}

// Run executes the publishing sequence. The returned error is always a
// *model.CLIError naming the step that failed.
func (d *Deployer) Run(ctx context.Context) error {
	if err := d.git.Available(); err != nil {
		return model.WrapCLIError(model.ExitFailure, "git is required for deployment", err)
	}

	dir, err := filepath.Abs(d.opts.Dir)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to resolve documentation build directory", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return model.NewCLIError(model.ExitFailure, fmt.Sprintf("documentation build directory %q not found; generate the docs first", dir))
	}
	if !d.git.IsWorkTree(ctx, dir) {
		return model.NewCLIError(model.ExitFailure, fmt.Sprintf("%q is not a git working tree", dir))
	}

	d.logf("dropping %s sentinel", SentinelFile)
	if err := os.WriteFile(filepath.Join(dir, SentinelFile), nil, 0o644); err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to create sentinel file", err)
	}

	d.logf("staging changes")
	if err := d.git.AddAll(ctx, dir); err != nil {
		return model.WrapCLIError(model.ExitFailure, "git add failed", err)
	}

	message, err := d.commitMessage(ctx, dir)
	if err != nil {
		return err
	}

	d.logf("committing: %s", message)
	if err := d.git.Commit(ctx, dir, message, !d.opts.NoSign); err != nil {
		return model.WrapCLIError(model.ExitFailure, "git commit failed", err)
	}

	clean, err := d.git.IsClean(ctx, dir)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "git status failed", err)
	}
	if !clean {
		return model.NewCLIError(model.ExitFailure, fmt.Sprintf("uncommitted changes remain after commit; please inspect %s manually", dir))
	}

	d.logf("pushing to %s %s", d.opts.Remote, d.opts.Branch)
	if err := d.git.Push(ctx, dir, d.opts.Remote, d.opts.Branch); err != nil {
		return model.WrapCLIError(model.ExitFailure, "git push failed", err)
	}

	d.logf("published to %s/%s", d.opts.Remote, d.opts.Branch)
	return nil
}

// commitMessage assembles the publish commit message from the docs
// version and the source branch's latest commit.
func (d *Deployer) commitMessage(ctx context.Context, dir string) (string, error) {
	ver := version.Resolve(ctx, d.git, dir)
	hash, err := d.git.ShortHash(ctx, dir, d.opts.SourceBranch)
	if err != nil {
		return "", model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("failed to resolve source branch %q", d.opts.SourceBranch), err)
	}
	return fmt.Sprintf("Publish docs %s (source: %s@%s)", ver, d.opts.SourceBranch, hash), nil
}
