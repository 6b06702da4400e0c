package xdg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvOverride verifies that the XDG environment variables take
// precedence when set.
func TestEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")

	dir, err := ConfigHome()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config", dir)

	dir, err = DataHome()
	require.NoError(t, err)
	assert.Equal(t, "/custom/data", dir)

	dir, err = CacheHome()
	require.NoError(t, err)
	assert.Equal(t, "/custom/cache", dir)
}

// TestHomeFallback verifies the conventional locations under $HOME when
// the XDG variables are unset. An empty variable counts as unset.
func TestHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := ConfigHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config"), dir)

	dir, err = DataHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share"), dir)

	dir, err = CacheHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cache"), dir)
}
