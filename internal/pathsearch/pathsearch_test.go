package pathsearch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeStat returns a Stat func that reports only the given paths as existing.
func fakeStat(existing ...string) func(string) (os.FileInfo, error) {
	set := make(map[string]bool, len(existing))
	for _, p := range existing {
		set[p] = true
	}
	return func(path string) (os.FileInfo, error) {
		if set[path] {
			return nil, nil
		}
		return nil, os.ErrNotExist
	}
}

func searcher(pathVar string, windows bool, existing ...string) *Searcher {
	return &Searcher{
		Getenv: func(key string) string {
			if key == "PATH" {
				return pathVar
			}
			return ""
		},
		Stat:    fakeStat(existing...),
		Windows: windows,
	}
}

func TestFindExecutable_EmptyPath(t *testing.T) {
	s := searcher("", false)

	got, ok := s.FindExecutable("ampl")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestFindExecutable_SingleHit(t *testing.T) {
	want := filepath.Join("/opt/ampl", "ampl")
	s := searcher("/opt/ampl", false, want)

	got, ok := s.FindExecutable("ampl")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFindExecutable_EarlierDirectoryWins(t *testing.T) {
	first := filepath.Join("/first", "ampl")
	second := filepath.Join("/second", "ampl")
	s := searcher("/first:/second", false, first, second)

	got, ok := s.FindExecutable("ampl")
	assert.True(t, ok)
	assert.Equal(t, first, got)
}

func TestFindExecutable_SkipsMissAndContinues(t *testing.T) {
	hit := filepath.Join("/b", "ampl")
	s := searcher("/a:/b", false, hit)

	got, ok := s.FindExecutable("ampl")
	assert.True(t, ok)
	assert.Equal(t, hit, got)
}

func TestFindExecutable_WindowsSeparator(t *testing.T) {
	hit := filepath.Join(`C:\ampl\bin`, "ampl.exe")
	s := searcher(`C:\other;C:\ampl\bin`, true, hit)

	got, ok := s.FindExecutable("ampl.exe")
	assert.True(t, ok)
	assert.Equal(t, hit, got)
}

func TestFindExecutable_ColonNotSplitOnWindows(t *testing.T) {
	// With the ';' separator a unix-style PATH is one (useless) entry,
	// not several.
	s := searcher("/a:/b", true, filepath.Join("/b", "ampl"))

	_, ok := s.FindExecutable("ampl")
	assert.False(t, ok)
}

func TestFindExecutable_EmptyEntriesSkipped(t *testing.T) {
	hit := filepath.Join("/bin", "ampl")
	s := searcher("::/bin:", false, hit)

	got, ok := s.FindExecutable("ampl")
	assert.True(t, ok)
	assert.Equal(t, hit, got)
}

func TestFindExecutable_DuplicateDirectoriesHarmless(t *testing.T) {
	hit := filepath.Join("/dup", "ampl")
	s := searcher("/dup:/dup", false, hit)

	got, ok := s.FindExecutable("ampl")
	assert.True(t, ok)
	assert.Equal(t, hit, got)
}

func TestFindExecutable_InvalidEntryDoesNotAbortScan(t *testing.T) {
	hit := filepath.Join("/real", "ampl")
	s := searcher("\x00garbage:/real", false, hit)

	got, ok := s.FindExecutable("ampl")
	assert.True(t, ok)
	assert.Equal(t, hit, got)
}

func TestNew_UsesRealEnvironment(t *testing.T) {
	s := New()
	assert.NotNil(t, s.Getenv)
	assert.NotNil(t, s.Stat)
}
