package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/meganerd/amplrun/internal/tmux"
)

// cmdSession implements the "amplrun session" subcommand with
// list/attach/send/peek. There is deliberately no kill: the session
// lifecycle belongs to the terminal host, not to this tool.
func cmdSession(args []string) error {
	if len(args) < 1 {
		printSessionUsage()
		return nil
	}

	subcmd := args[0]
	switch subcmd {
	case "list", "ls":
		return cmdSessionList(args[1:])
	case "attach":
		return cmdSessionAttach(args[1:])
	case "send":
		return cmdSessionSend(args[1:])
	case "peek":
		return cmdSessionPeek(args[1:])
	case "--help", "-h", "help":
		printSessionUsage()
		return nil
	default:
		return fmt.Errorf("unknown session command: %s\n\n%s", subcmd, sessionUsageText())
	}
}

func printSessionUsage() {
	fmt.Fprint(os.Stderr, sessionUsageText())
}

func sessionUsageText() string {
	return `amplrun session - Inspect or interact with the AMPL tmux session

Usage:
  amplrun session list [--config path]
  amplrun session attach [--config path]
  amplrun session send [--config path] "text"
  amplrun session peek [--config path]

Commands:
  list     List tmux sessions, marking the AMPL one
  attach   Attach this terminal to the AMPL session
  send     Send a raw line of text to the AMPL session
  peek     Print the AMPL session's visible pane content
`
}

// sessionName resolves the configured session name for the session
// subcommands.
func sessionName(fs *flag.FlagSet, args []string, configPath *string) (string, []string, error) {
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	return configLoader(*configPath)().SessionName, fs.Args(), nil
}

// cmdSessionList lists tmux sessions, marking the AMPL one and the
// client's current one.
func cmdSessionList(args []string) error {
	fs := flag.NewFlagSet("session list", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name, _, err := sessionName(fs, args, configPath)
	if err != nil {
		return err
	}

	runner := tmux.NewAutoRunner()
	sessions, err := runner.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No active tmux sessions.")
		return nil
	}

	active, _ := runner.ActiveSession()
	for _, s := range sessions {
		marks := ""
		if s == name {
			marks += " [ampl]"
		}
		if s == active {
			marks += " *"
		}
		fmt.Printf("%s%s\n", s, marks)
	}
	return nil
}

// cmdSessionAttach attaches the terminal to the AMPL session.
func cmdSessionAttach(args []string) error {
	fs := flag.NewFlagSet("session attach", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name, _, err := sessionName(fs, args, configPath)
	if err != nil {
		return err
	}

	runner := tmux.NewAutoRunner()
	if !runner.HasSession(name) {
		return fmt.Errorf("no session %q; run a file first", name)
	}
	return runner.Attach(name)
}

// cmdSessionSend sends a raw line of text to the AMPL session.
func cmdSessionSend(args []string) error {
	fs := flag.NewFlagSet("session send", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name, rest, err := sessionName(fs, args, configPath)
	if err != nil {
		return err
	}
	text := strings.Join(rest, " ")
	if text == "" {
		return fmt.Errorf("text required\n\nUsage: amplrun session send \"text\"")
	}

	runner := tmux.NewAutoRunner()
	if err := runner.SendLine(name, text); err != nil {
		return fmt.Errorf("send to session %q: %w", name, err)
	}
	fmt.Printf("Sent to %s: %s\n", name, truncate(text, 80))
	return nil
}

// cmdSessionPeek prints the visible pane content of the AMPL session.
func cmdSessionPeek(args []string) error {
	fs := flag.NewFlagSet("session peek", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name, _, err := sessionName(fs, args, configPath)
	if err != nil {
		return err
	}

	runner := tmux.NewAutoRunner()
	out, err := runner.CapturePane(name)
	if err != nil {
		return fmt.Errorf("peek session %q: %w", name, err)
	}
	fmt.Print(out)
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
