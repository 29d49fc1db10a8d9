// Package config holds small configuration helpers shared by the CLI
// commands.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user-supplied file path, such as the
// --headers-file flag, into an absolute form: a leading ~ expands to
// the home directory and $VAR references expand from the environment.
// An empty path stays empty so callers can fall back to their default.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
