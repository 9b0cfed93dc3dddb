// Package tmux drives the tmux binary behind a Runner interface so the
// AMPL terminal session can be created, targeted and written to without
// a pty dependency. Command execution is injectable for tests.
package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner abstracts the tmux operations the AMPL session host needs.
type Runner interface {
	// NewSession creates a new detached session with the given name.
	// The command is executed inside the session. workDir sets the
	// starting directory.
	NewSession(name, command, workDir string) error

	// SendLine sends one line of text to the named session, followed
	// by Enter.
	SendLine(name, text string) error

	// CapturePane captures the visible content of the named session's
	// pane.
	CapturePane(name string) (string, error)

	// ListSessions returns the names of all active tmux sessions.
	ListSessions() ([]string, error)

	// HasSession checks whether a session with the given name exists.
	HasSession(name string) bool

	// ActiveSession returns the name of the client's current session.
	// Errors when no server is running or no client is attached.
	ActiveSession() (string, error)

	// Attach attaches the controlling terminal to the named session,
	// switching the client instead when already inside tmux.
	Attach(name string) error
}

// CmdFunc is the signature for creating an *exec.Cmd. It matches exec.Command.
type CmdFunc func(name string, args ...string) *exec.Cmd

// TmuxRunner implements Runner by calling the tmux binary via os/exec.
// The runCmd field is injectable for testing.
type TmuxRunner struct {
	runCmd CmdFunc
}

// NewTmuxRunner creates a TmuxRunner that calls the real tmux binary.
func NewTmuxRunner() *TmuxRunner {
	return &TmuxRunner{
		runCmd: exec.Command,
	}
}

// NewTmuxRunnerWithCmd creates a TmuxRunner with a custom command function for testing.
func NewTmuxRunnerWithCmd(fn CmdFunc) *TmuxRunner {
	return &TmuxRunner{
		runCmd: fn,
	}
}

// output runs a tmux subcommand and returns its combined output, with
// the subcommand name folded into any error.
func (r *TmuxRunner) output(args ...string) (string, error) {
	cmd := r.runCmd("tmux", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// NewSession creates a new detached tmux session.
func (r *TmuxRunner) NewSession(name, command, workDir string) error {
	args := []string{"new-session", "-d", "-s", name}
	if workDir != "" {
		args = append(args, "-c", workDir)
	}
	if command != "" {
		args = append(args, command)
	}
	if _, err := r.output(args...); err != nil {
		return fmt.Errorf("session %q: %w", name, err)
	}
	return nil
}

// SendLine sends text to the named tmux session followed by Enter.
func (r *TmuxRunner) SendLine(name, text string) error {
	if _, err := r.output("send-keys", "-t", name, text, "Enter"); err != nil {
		return fmt.Errorf("session %q: %w", name, err)
	}
	return nil
}

// CapturePane captures the visible content of the session's current pane.
func (r *TmuxRunner) CapturePane(name string) (string, error) {
	out, err := r.output("capture-pane", "-t", name, "-p")
	if err != nil {
		return "", fmt.Errorf("session %q: %w", name, err)
	}
	return out, nil
}

// ListSessions returns the names of all active tmux sessions.
func (r *TmuxRunner) ListSessions() ([]string, error) {
	out, err := r.output("list-sessions", "-F", "#{session_name}")
	if err != nil {
		// tmux returns an error when no sessions exist — treat as empty.
		if strings.Contains(out, "no server running") ||
			strings.Contains(out, "no sessions") {
			return nil, nil
		}
		return nil, err
	}

	var sessions []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			sessions = append(sessions, line)
		}
	}
	return sessions, nil
}

// HasSession checks whether a tmux session with the given name exists.
func (r *TmuxRunner) HasSession(name string) bool {
	cmd := r.runCmd("tmux", "has-session", "-t", name)
	return cmd.Run() == nil
}

// ActiveSession returns the name of the client's current session.
func (r *TmuxRunner) ActiveSession() (string, error) {
	out, err := r.output("display-message", "-p", "#{session_name}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Attach attaches the controlling terminal to the named session. Inside
// tmux, switch-client is used since nesting attach is refused.
func (r *TmuxRunner) Attach(name string) error {
	sub := "attach-session"
	if os.Getenv("TMUX") != "" {
		sub = "switch-client"
	}
	cmd := r.runCmd("tmux", sub, "-t", name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux %s %q: %w", sub, name, err)
	}
	return nil
}

// Compile-time interface compliance.
var _ Runner = (*TmuxRunner)(nil)
