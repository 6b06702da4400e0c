// Package git wraps the git CLI for the deployment workflow.
//
// Commands are shelled out via os/exec rather than a Go git library:
// publishing relies on the user's own git setup (remotes, credentials,
// signing keys), which only the real git binary honors. Every call is
// scoped, blocking, and fatal on failure — there is no retry layer.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git commands in a given working tree.
type Runner struct {
	// gitPath is the binary to invoke. Defaults to "git", resolved via
	// PATH.
	gitPath string
}

// NewRunner creates a Runner using the git binary from PATH.
func NewRunner() *Runner {
	return &Runner{gitPath: "git"}
}

// Available checks that the git binary can be found. Deployment cannot
// proceed without it.
func (r *Runner) Available() error {
	if _, err := exec.LookPath(r.gitPath); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", r.gitPath, err)
	}
	return nil
}

// Run executes a git command in dir and returns its stdout. On a
// non-zero exit the returned error carries the command line and
// whatever git wrote to stderr.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, r.gitPath, fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
		return "", fmt.Errorf("%s: %w", msg, err)
	}
	return stdout.String(), nil
}

// IsWorkTree reports whether dir is inside a git working tree.
func (r *Runner) IsWorkTree(ctx context.Context, dir string) bool {
	out, err := r.Run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// RepoRoot returns the top-level directory of the working tree
// containing dir.
func (r *Runner) RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := r.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the short name of the checked-out branch, or
// "HEAD" in a detached state.
func (r *Runner) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := r.Run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ShortHash returns the abbreviated commit hash of ref.
func (r *Runner) ShortHash(ctx context.Context, dir, ref string) (string, error) {
	out, err := r.Run(ctx, dir, "rev-parse", "--short", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Describe returns the output of git describe for dir's HEAD.
func (r *Runner) Describe(ctx context.Context, dir string) (string, error) {
	out, err := r.Run(ctx, dir, "describe")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// AddAll stages every change in the working tree, including removals
// and untracked files.
func (r *Runner) AddAll(ctx context.Context, dir string) error {
	_, err := r.Run(ctx, dir, "add", "--all")
	return err
}

// Commit records the staged changes. When sign is true the commit is
// GPG-signed (-S); otherwise the signing option is omitted entirely.
func (r *Runner) Commit(ctx context.Context, dir, message string, sign bool) error {
	_, err := r.Run(ctx, dir, commitArgs(message, sign)...)
	return err
}

// commitArgs builds the git commit argument list. Split out so the
// signing behavior is testable without a GPG setup.
func commitArgs(message string, sign bool) []string {
	args := []string{"commit"}
	if sign {
		args = append(args, "-S")
	}
	return append(args, "-m", message)
}

// IsClean reports whether the working tree has no pending changes.
func (r *Runner) IsClean(ctx context.Context, dir string) (bool, error) {
	out, err := r.Run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

// Push pushes the named branch to the remote.
func (r *Runner) Push(ctx context.Context, dir, remote, branch string) error {
	_, err := r.Run(ctx, dir, "push", remote, branch)
	return err
}
