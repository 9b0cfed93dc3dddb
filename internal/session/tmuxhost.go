package session

import (
	"fmt"
	"strings"

	"github.com/meganerd/amplrun/internal/tmux"
)

// TmuxHost implements Host on top of a tmux.Runner. The host's "active
// session" maps to the tmux client's current session, so reuse happens
// only while the user is attached to the named session.
type TmuxHost struct {
	runner  tmux.Runner
	workDir string
}

// NewTmuxHost creates a TmuxHost. workDir is the starting directory for
// newly created sessions; empty means tmux's default.
func NewTmuxHost(runner tmux.Runner, workDir string) *TmuxHost {
	return &TmuxHost{runner: runner, workDir: workDir}
}

// Active returns the client's current tmux session. No attached client
// means no active session.
func (h *TmuxHost) Active() (*Session, bool) {
	name, err := h.runner.ActiveSession()
	if err != nil || name == "" {
		return nil, false
	}
	return &Session{Name: name}, true
}

// Create materializes a detached tmux session running processPath with
// args. A same-named session that exists but is not the client's
// current one is re-targeted rather than failed on: tmux would refuse
// the duplicate, and sending into the survivor matches what the user
// sees.
func (h *TmuxHost) Create(name, processPath string, args []string) (*Session, error) {
	if !h.runner.HasSession(name) {
		command := processPath
		if len(args) > 0 {
			command += " " + strings.Join(args, " ")
		}
		if err := h.runner.NewSession(name, command, h.workDir); err != nil {
			return nil, fmt.Errorf("tmux host: %w", err)
		}
	}
	return &Session{Name: name, ProcessPath: processPath, Args: args}, nil
}

// Show attaches the client to the session when stealFocus is set. tmux
// has no reveal-without-focus, so the non-focusing form is a no-op: a
// detached session is already discoverable via list-sessions.
func (h *TmuxHost) Show(s *Session, stealFocus bool) error {
	if !stealFocus {
		return nil
	}
	return h.runner.Attach(s.Name)
}

// Send dispatches one line into the session.
func (h *TmuxHost) Send(s *Session, line string) error {
	return h.runner.SendLine(s.Name, line)
}

// Compile-time interface compliance.
var _ Host = (*TmuxHost)(nil)
