package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmwangx/docpub/internal/deploy"
	"github.com/zmwangx/docpub/internal/ezlog"
)

// setupDocsRepo creates a documentation build directory that is a git
// working tree on gh-pages with a master branch and a bare origin
// remote, plus a fresh docs change ready to publish. It also points the
// XDG directories at temporary locations so the command's config lookup
// and log file stay out of the real home directory.
func setupDocsRepo(t *testing.T) (docs, remote string) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	docs = t.TempDir()
	runTestGit(t, docs, "init")
	runTestGit(t, docs, "config", "user.email", "test@example.com")
	runTestGit(t, docs, "config", "user.name", "Test User")

	err := os.WriteFile(filepath.Join(docs, "index.html"), []byte("<html></html>\n"), 0644)
	require.NoError(t, err)
	runTestGit(t, docs, "add", ".")
	runTestGit(t, docs, "commit", "-m", "initial commit")
	runTestGit(t, docs, "branch", "-m", "gh-pages")
	runTestGit(t, docs, "branch", "master")

	remote = t.TempDir()
	runTestGit(t, remote, "init", "--bare")
	runTestGit(t, docs, "remote", "add", "origin", remote)
	runTestGit(t, docs, "push", "origin", "gh-pages")

	err = os.WriteFile(filepath.Join(docs, "page.html"), []byte("<p>new</p>\n"), 0644)
	require.NoError(t, err)

	return docs, remote
}

// runTestGit runs a git command in the specified directory and fails
// the test immediately on a non-zero exit.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// TestDeployCommand verifies an end-to-end publish through the CLI:
// the sentinel lands, the remote is updated, and the run is recorded in
// the deployment log file.
func TestDeployCommand(t *testing.T) {
	docs, remote := setupDocsRepo(t)

	_, err := executeCommand(t, "", "deploy", "--dir", docs, "-n")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(docs, deploy.SentinelFile))

	localHead := strings.TrimSpace(runTestGit(t, docs, "rev-parse", "HEAD"))
	remoteHead := strings.TrimSpace(runTestGit(t, remote, "rev-parse", "gh-pages"))
	assert.Equal(t, localHead, remoteHead)

	logPath, err := ezlog.Path("docpub", ezlog.Data)
	require.NoError(t, err)
	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "pushing to origin gh-pages")
}

// TestDeployCommandConfigDefaults verifies that the user config file
// supplies flag defaults and that explicit flags still win over it.
func TestDeployCommandConfigDefaults(t *testing.T) {
	docs, remote := setupDocsRepo(t)

	confDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "docpub")
	require.NoError(t, os.MkdirAll(confDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(`
deploy:
  remote: nowhere
  sign: false
`), 0644))

	// The config's remote does not exist, so the push fails — proof the
	// config was honored (and sign: false got us past the commit).
	_, err := executeCommand(t, "", "deploy", "--dir", docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git push failed")

	// An explicit --remote beats the config; this run publishes. A new
	// docs change is needed because the failed run already committed.
	require.NoError(t, os.WriteFile(filepath.Join(docs, "extra.html"), []byte("<p>more</p>\n"), 0644))
	_, err = executeCommand(t, "", "deploy", "--dir", docs, "--remote", "origin")
	require.NoError(t, err)

	remoteHead := strings.TrimSpace(runTestGit(t, remote, "rev-parse", "gh-pages"))
	localHead := strings.TrimSpace(runTestGit(t, docs, "rev-parse", "HEAD"))
	assert.Equal(t, localHead, remoteHead)
}
