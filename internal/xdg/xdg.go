// Package xdg resolves XDG base directories.
//
// Only the three directories docpub actually uses are covered: the
// config home (used by config), and the data and cache homes (used by
// ezlog). Each falls back to the conventional location under $HOME
// when the corresponding environment variable is unset.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigHome returns $XDG_CONFIG_HOME, or ~/.config if unset.
func ConfigHome() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// DataHome returns $XDG_DATA_HOME, or ~/.local/share if unset.
func DataHome() (string, error) {
	return resolve("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// CacheHome returns $XDG_CACHE_HOME, or ~/.cache if unset.
func CacheHome() (string, error) {
	return resolve("XDG_CACHE_HOME", ".cache")
}

func resolve(envvar, fallback string) (string, error) {
	if dir := os.Getenv(envvar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}
