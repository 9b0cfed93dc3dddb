// Package pathsearch locates the AMPL executable by scanning the PATH
// environment variable. The scan is deterministic (left to right, first
// hit wins) and never fails: a malformed or empty PATH is simply zero
// directories.
package pathsearch

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Executable names tried by the resolution chain. Both are attempted
// regardless of the host platform, so a Windows-installed binary is
// still found from a unix-flavored shell and vice versa.
const (
	WindowsExecutable = "ampl.exe"
	Executable        = "ampl"
)

// Searcher scans a PATH-style variable for a named executable file.
// Getenv and Stat are injectable for tests.
type Searcher struct {
	Getenv  func(key string) string
	Stat    func(name string) (os.FileInfo, error)
	Windows bool
}

// New returns a Searcher backed by the real environment and filesystem.
func New() *Searcher {
	return &Searcher{
		Getenv:  os.Getenv,
		Stat:    os.Stat,
		Windows: runtime.GOOS == "windows",
	}
}

// FindExecutable returns the first PATH directory joined with name that
// exists as a file, scanning entries left to right. The separator is ';'
// on Windows and ':' otherwise. Duplicate directories are not
// de-duplicated (a repeat is a harmless repeated stat); an entry that
// cannot be stat'd is treated as not-found and the scan continues.
func (s *Searcher) FindExecutable(name string) (string, bool) {
	sep := ":"
	if s.Windows {
		sep = ";"
	}
	for _, dir := range strings.Split(s.Getenv("PATH"), sep) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if _, err := s.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
