// Package config handles loading and saving rv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/rv/config.yaml
//
// Values resolve with the precedence flags > environment > config file >
// built-in defaults (see Resolve).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in defaults.
const (
	DefaultRanks         = 2
	DefaultSaveFile      = "save.json"
	DefaultCandidateFile = "candidates.txt"
)

// Environment variables consulted by Resolve.
const (
	EnvRanks         = "RV_RANKS"
	EnvSaveFile      = "RV_SAVE_FILE"
	EnvCandidateFile = "RV_CANDIDATE_FILE"
)

// VotingConfig holds session file locations and ballot size.
type VotingConfig struct {
	Ranks         int    `yaml:"ranks,omitempty"`          // 2-4, 0 means unset
	SaveFile      string `yaml:"save_file,omitempty"`      // Snapshot path
	CandidateFile string `yaml:"candidate_file,omitempty"` // Candidate list path
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ShowHelp *bool `yaml:"show_help,omitempty"` // Key help footer, default on
}

// Config is the top-level configuration for rv.
type Config struct {
	Voting VotingConfig `yaml:"voting,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// DefaultConfig returns an empty Config; defaults are applied by Resolve so
// that an explicitly configured rank count can be told apart from the
// built-in one.
func DefaultConfig() Config {
	return Config{}
}

// ConfigDir returns the XDG config directory for rv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Voting.SaveFile = expandHome(cfg.Voting.SaveFile)
	cfg.Voting.CandidateFile = expandHome(cfg.Voting.CandidateFile)
	return cfg, nil
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Overrides are the command-line values; zero values mean "not given".
type Overrides struct {
	Ranks         int
	SaveFile      string
	CandidateFile string
}

// Resolved is the effective configuration for one run.
type Resolved struct {
	Ranks         int
	RanksExplicit bool
	SaveFile      string
	CandidateFile string
	ShowHelp      bool
}

// Resolve merges flags, environment, config file and defaults.
func (c Config) Resolve(o Overrides) (Resolved, error) {
	r := Resolved{
		Ranks:         DefaultRanks,
		SaveFile:      DefaultSaveFile,
		CandidateFile: DefaultCandidateFile,
		ShowHelp:      true,
	}
	if c.UI.ShowHelp != nil {
		r.ShowHelp = *c.UI.ShowHelp
	}

	if c.Voting.Ranks != 0 {
		r.Ranks, r.RanksExplicit = c.Voting.Ranks, true
	}
	if v := strings.TrimSpace(os.Getenv(EnvRanks)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return r, fmt.Errorf("invalid %s %q: %w", EnvRanks, v, err)
		}
		r.Ranks, r.RanksExplicit = n, true
	}
	if o.Ranks != 0 {
		r.Ranks, r.RanksExplicit = o.Ranks, true
	}

	r.SaveFile = firstNonEmpty(o.SaveFile, os.Getenv(EnvSaveFile), c.Voting.SaveFile, r.SaveFile)
	r.CandidateFile = firstNonEmpty(o.CandidateFile, os.Getenv(EnvCandidateFile), c.Voting.CandidateFile, r.CandidateFile)
	return r, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
