// amplrun runs AMPL model, data and script files in a reusable terminal
// session, resolving the ampl executable from configuration or PATH.
//
// Usage:
//
//	amplrun run [--config path] [--relative] [--dir path] <file>
//	amplrun which [--config path]
//	amplrun session <list|attach|send|peek> [args]
//	amplrun version
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/meganerd/amplrun/internal/config"
	"github.com/meganerd/amplrun/internal/pathsearch"
	"github.com/meganerd/amplrun/internal/session"
	"github.com/meganerd/amplrun/internal/tmux"
	"github.com/meganerd/amplrun/internal/workspace"
)

var version = "dev"

func main() {
	// Layer a working-directory .env (license variables, solver paths)
	// into the environment the session inherits. Missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	subcmd := os.Args[1]
	switch subcmd {
	case "run":
		if err := cmdRun(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "which":
		if err := cmdWhich(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "session":
		if err := cmdSession(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("amplrun %s\n", version)
	case "--help", "-h", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", subcmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `amplrun - run AMPL files in a reusable terminal session

Usage:
  amplrun run [--config path] [--relative] [--dir path] <file>
  amplrun which [--config path]
  amplrun session <list|attach|send|peek> [args]
  amplrun version

Commands:
  run      Dispatch a .mod/.dat/.run file into the AMPL session
  which    Print the executable the resolution chain selects
  session  Inspect or interact with the AMPL tmux session
  version  Print version information

Flags (run):
  --config    Path to config file (default: ./ampl.yaml, then $HOME/ampl.yaml)
  --relative  Dispatch the file by its workspace-relative path
  --dir       Working directory for a newly created session

Run 'amplrun session --help' for session details.
`)
}

// configLoader returns the fresh-per-call config loader the session
// manager requires. Load failures degrade to defaults with a warning;
// a broken config should not block a run any more than a missing one.
func configLoader(explicit string) func() *config.Config {
	return func() *config.Config {
		path, err := config.Find(explicit)
		if err == nil {
			cfg, loadErr := config.Load(path)
			if loadErr == nil {
				return cfg
			}
			err = loadErr
		}
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
		return config.Default()
	}
}

// cliEditor implements session.Editor for the command line. The focused
// file is the run argument and already lives on disk, so Save reduces
// to an existence check.
type cliEditor struct{}

func (cliEditor) Save(path string) error {
	_, err := os.Stat(path)
	return err
}

func (cliEditor) Rel(path string) string {
	return workspace.Rel(path)
}

// cmdRun implements the "amplrun run" subcommand.
func cmdRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default: ./ampl.yaml, then $HOME/ampl.yaml)")
	relative := fs.Bool("relative", false, "dispatch the file by its workspace-relative path")
	workDir := fs.String("dir", "", "working directory for a newly created session")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one file required\n\nUsage: amplrun run [--config path] [--relative] <file>")
	}
	file := fs.Arg(0)

	loadConfig := configLoader(*configPath)
	cfg := loadConfig()

	host := session.NewTmuxHost(tmux.NewAutoRunner(), *workDir)
	mgr := session.New(host, cliEditor{}, loadConfig)

	return mgr.RunFile(session.RunRequest{
		FilePath:        file,
		UseRelativePath: cfg.UseRelativePath || *relative,
	})
}

// cmdWhich prints the executable the resolution chain selects, walking
// the same strategy order CreateSession uses.
func cmdWhich(args []string) error {
	fs := flag.NewFlagSet("which", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default: ./ampl.yaml, then $HOME/ampl.yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := configLoader(*configPath)()
	if cfg.PathToExecutable != "" {
		fmt.Println(cfg.PathToExecutable)
		return nil
	}

	searcher := pathsearch.New()
	for _, name := range []string{pathsearch.WindowsExecutable, pathsearch.Executable} {
		if path, ok := searcher.FindExecutable(name); ok {
			fmt.Println(path)
			return nil
		}
	}

	fmt.Printf("ampl not found; sessions will fall back to %s\n", session.DefaultShell())
	return nil
}
