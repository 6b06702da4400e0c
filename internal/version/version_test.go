package version

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmwangx/docpub/internal/git"
)

// TestNormalize verifies the git describe to version transformation:
// the first separator (tag-distance) becomes a dot, the rest become
// plus signs.
func TestNormalize(t *testing.T) {
	tests := []struct {
		described string
		expected  string
	}{
		{"v1.2", "v1.2"},
		{"v1.2-4-gabc1234", "v1.2.4+gabc1234"},
		{"v1.2-4-gabc1234-dirty", "v1.2.4+gabc1234+dirty"},
		{"0.9", "0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.described, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.described))
		})
	}
}

// TestResolve verifies version resolution against a real repository:
// an exact tag resolves to itself, commits past the tag grow the
// distance-and-hash suffix, and a repo with no tags falls back to the
// base version.
func TestResolve(t *testing.T) {
	dir := t.TempDir()
	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	g := git.NewRunner()
	ctx := context.Background()

	write("a.txt", "one\n")
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "first")

	// No tags yet: fall back to the base version.
	assert.Equal(t, Base, Resolve(ctx, g, dir))

	runTestGit(t, dir, "tag", "-a", "v0.1", "-m", "release v0.1")
	assert.Equal(t, "v0.1", Resolve(ctx, g, dir))

	write("a.txt", "two\n")
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "second")

	resolved := Resolve(ctx, g, dir)
	assert.True(t, strings.HasPrefix(resolved, "v0.1.1+g"),
		"one commit past the tag should resolve to v0.1.1+g<hash>, got %q", resolved)
}

// TestResolveOutsideRepo verifies the fallback outside any repository.
func TestResolveOutsideRepo(t *testing.T) {
	assert.Equal(t, Base, Resolve(context.Background(), git.NewRunner(), t.TempDir()))
}

func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}
