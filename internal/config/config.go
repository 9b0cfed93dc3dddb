// Package config loads the amplrun YAML configuration. Every key is
// optional: the zero config is a working configuration, and callers
// re-read it on each session creation so edits take effect on the next
// new session without a restart.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in the working directory
// and then in $HOME.
const FileName = "ampl.yaml"

// DefaultSessionName is the display name of the reusable terminal
// session. Reuse is recognized by exact, case-sensitive match against
// this name (or the configured override).
const DefaultSessionName = "AMPL"

// Config holds the user-facing settings.
type Config struct {
	// PathToExecutable overrides PATH discovery with an explicit
	// executable path. A value starting with '$' is resolved from the
	// environment.
	PathToExecutable string `yaml:"path_to_executable"`

	// ExeArgs are extra arguments passed to the AMPL executable. They
	// are dropped when no executable resolves, since arguments to a
	// fallback shell are meaningless.
	ExeArgs []string `yaml:"exe_args"`

	// UseRelativePath dispatches files by their workspace-relative
	// path instead of the absolute one.
	UseRelativePath bool `yaml:"use_relative_path"`

	// SessionName overrides the terminal session name, e.g. to keep
	// separate sessions for concurrent projects.
	SessionName string `yaml:"session_name"`
}

// Default returns the zero configuration with defaults applied.
func Default() *Config {
	return &Config{SessionName: DefaultSessionName}
}

// Load reads and parses the config at path. An empty path yields the
// default config.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML bytes into a Config and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.SessionName == "" {
		cfg.SessionName = DefaultSessionName
	}
	// Resolve environment variable references in the executable path.
	if strings.HasPrefix(cfg.PathToExecutable, "$") {
		cfg.PathToExecutable = os.Getenv(cfg.PathToExecutable[1:])
	}
	return &cfg, nil
}

// Find resolves the config file location: the explicit flag value, then
// ./ampl.yaml, then $HOME/ampl.yaml. Only an explicit path that does
// not exist is an error; finding no config at all returns "" so callers
// fall back to defaults.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config %s: %w", explicit, err)
		}
		return explicit, nil
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	p := filepath.Join(home, FileName)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	return "", nil
}
