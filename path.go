package jopaint

import (
	"os"
	"path/filepath"
	"strings"
)

// fullpath expands a leading tilde and any environment variables in path
// and makes it absolute.
func fullpath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// splitPath splits path into its directory, base name without extension
// and extension including the leading dot.
func splitPath(path string) (dir, base, ext string) {
	dir = filepath.Dir(path)
	ext = filepath.Ext(path)
	base = strings.TrimSuffix(filepath.Base(path), ext)
	return dir, base, ext
}
