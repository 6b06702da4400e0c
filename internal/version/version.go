// Package version resolves the version string reported by docpub and
// embedded in publish commit messages.
package version

import (
	"context"
	"strings"

	"github.com/zmwangx/docpub/internal/git"
)

// Base is the fallback version used when git describe is unavailable
// (e.g. a tarball checkout with no tags).
const Base = "0.2.0"

// Build-time identification, injected via ldflags by the release
// process. During development they keep these defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolve derives a version string from git describe in dir:
// the tag-distance separator becomes "." and the remaining separators
// become "+", so v1.2-4-gabc1234 turns into v1.2.4+gabc1234. When git
// describe fails, Base is returned.
func Resolve(ctx context.Context, g *git.Runner, dir string) string {
	described, err := g.Describe(ctx, dir)
	if err != nil {
		return Base
	}
	return Normalize(described)
}

// Normalize converts git describe output to version form.
func Normalize(described string) string {
	s := strings.Replace(described, "-", ".", 1)
	return strings.ReplaceAll(s, "-", "+")
}
