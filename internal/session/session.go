// Package session owns the AMPL terminal session lifecycle: resolving
// which executable backs a session, deciding when the host's active
// session can be reused, and dispatching model, data and script files
// into it as one-line directives.
//
// The terminal and document surfaces are injected collaborators (Host
// and Editor), so the reuse decision is deterministic under test and
// the production host stays a thin tmux adapter.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/meganerd/amplrun/internal/config"
	"github.com/meganerd/amplrun/internal/pathsearch"
)

// Session is a handle to a host terminal session.
type Session struct {
	Name        string
	ProcessPath string
	Args        []string
}

// RunRequest describes a single run invocation. FilePath is whatever
// file the front-end considers focused; empty means none. It is built
// and consumed within one invocation, never persisted.
type RunRequest struct {
	FilePath        string
	UseRelativePath bool
}

// Host is the terminal surface the manager drives.
type Host interface {
	// Active returns the session the host currently considers active.
	// This pointer is the sole source of truth for reuse; no registry
	// is kept here.
	Active() (*Session, bool)

	// Create materializes a new terminal session running processPath
	// with args.
	Create(name, processPath string, args []string) (*Session, error)

	// Show brings the session into view. stealFocus selects whether
	// the user's input focus moves to it.
	Show(s *Session, stealFocus bool) error

	// Send dispatches one line of text into the session.
	Send(s *Session, line string) error
}

// Editor is the document surface: persisting the focused file and
// computing its workspace-relative display form.
type Editor interface {
	// Save requests that the file be persisted. Best-effort: the
	// dispatch is not delayed for it, so the sent command may race a
	// still-in-progress save.
	Save(path string) error

	// Rel returns the workspace-relative display form of path.
	Rel(path string) string
}

// Manager decides between reusing and creating the AMPL session and
// dispatches files into it.
type Manager struct {
	host   Host
	editor Editor

	// loadConfig is called fresh on every session creation, so
	// configuration and PATH changes apply to the next new session
	// while an already-open session keeps its original process.
	loadConfig func() *config.Config

	lookPath     func(name string) (string, bool)
	defaultShell func() string
}

// New creates a Manager backed by the real PATH searcher and platform
// default shell.
func New(host Host, editor Editor, loadConfig func() *config.Config) *Manager {
	return &Manager{
		host:         host,
		editor:       editor,
		loadConfig:   loadConfig,
		lookPath:     pathsearch.New().FindExecutable,
		defaultShell: DefaultShell,
	}
}

// DefaultShell returns the shell a session falls back to when no AMPL
// executable resolves.
func DefaultShell() string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// resolveExecutable evaluates the resolution strategies in order: the
// configured explicit path, then the Windows-suffixed name on PATH,
// then the bare name. Both PATH names are tried on every platform so
// either convention is honored regardless of where the shell runs.
func (m *Manager) resolveExecutable(cfg *config.Config) (string, bool) {
	strategies := []func() (string, bool){
		func() (string, bool) { return cfg.PathToExecutable, cfg.PathToExecutable != "" },
		func() (string, bool) { return m.lookPath(pathsearch.WindowsExecutable) },
		func() (string, bool) { return m.lookPath(pathsearch.Executable) },
	}
	for _, resolve := range strategies {
		if path, ok := resolve(); ok {
			return path, true
		}
	}
	return "", false
}

// CreateSession resolves the executable configuration and asks the host
// for a new terminal session, shown without stealing focus. Configured
// arguments are only passed when an executable resolved; the default
// shell takes none.
func (m *Manager) CreateSession() (*Session, error) {
	cfg := m.loadConfig()

	processPath, resolved := m.resolveExecutable(cfg)
	var args []string
	if resolved {
		args = cfg.ExeArgs
	} else {
		processPath = m.defaultShell()
	}

	s, err := m.host.Create(cfg.SessionName, processPath, args)
	if err != nil {
		return nil, fmt.Errorf("create session %q: %w", cfg.SessionName, err)
	}
	if err := m.host.Show(s, false); err != nil {
		return nil, fmt.Errorf("show session %q: %w", cfg.SessionName, err)
	}
	return s, nil
}

// GetOrCreateSession returns the host's active session when its display
// name matches the configured session name exactly (case-sensitive),
// creating a new session otherwise. Reuse is by name, not identity: a
// closed terminal is only noticed here, lazily, when the host no longer
// reports it active.
func (m *Manager) GetOrCreateSession() (*Session, error) {
	name := m.loadConfig().SessionName
	if s, ok := m.host.Active(); ok && s.Name == name {
		return s, nil
	}
	return m.CreateSession()
}

// directiveFor maps a file extension to the AMPL command verb that
// loads files of that kind.
func directiveFor(ext string) (string, bool) {
	switch ext {
	case ".dat":
		return "data", true
	case ".mod":
		return "model", true
	case ".run":
		return "include", true
	}
	return "", false
}

// RunFile saves the focused file and dispatches the matching directive
// into the AMPL session. A missing file or unrecognized extension is a
// silent no-op that touches no session; only host failures surface as
// errors.
func (m *Manager) RunFile(req RunRequest) error {
	if req.FilePath == "" {
		return nil
	}
	verb, ok := directiveFor(filepath.Ext(req.FilePath))
	if !ok {
		return nil
	}

	s, err := m.GetOrCreateSession()
	if err != nil {
		return err
	}

	// Best-effort: the dispatch below may race an in-flight save.
	_ = m.editor.Save(req.FilePath)

	name := req.FilePath
	if req.UseRelativePath {
		name = m.editor.Rel(req.FilePath)
	}

	// The name is quoted, not escaped: a double quote inside a
	// filename yields a malformed command.
	return m.host.Send(s, fmt.Sprintf("%s \"%s\";", verb, name))
}
