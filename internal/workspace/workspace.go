// Package workspace computes workspace-relative display paths for
// dispatched files.
package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

// markers identify a workspace root, checked in order at each level of
// the upward walk.
var markers = []string{".git", "ampl.yaml"}

// Root walks upward from start until it finds a directory containing a
// workspace marker. Returns false when the filesystem root is reached
// without a hit.
func Root(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		for _, m := range markers {
			if fileExists(filepath.Join(dir, m)) {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Rel returns path relative to the workspace containing it. When no
// workspace root is found, or the path cannot be expressed inside one,
// the original path is returned unchanged.
func Rel(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	root, ok := Root(filepath.Dir(abs))
	if !ok {
		return path
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
