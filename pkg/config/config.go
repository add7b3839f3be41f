// Package config loads linuxterm settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/Lesliedc339/linux-terminal/pkg/dispatch"
)

const (
	LocalFileName = "linuxterm.yaml"
	UserFilePath  = "~/.linuxterm/config.yaml"
	EnvFileName   = ".env"

	EnvPrompt            = "LINUXTERM_PROMPT"
	EnvWelcome           = "LINUXTERM_WELCOME"
	EnvCurrentDir        = "LINUXTERM_CURRENT_DIR"
	EnvHistoryFile       = "LINUXTERM_HISTORY_FILE"
	EnvHistorySize       = "LINUXTERM_HISTORY_SIZE"
	EnvCountdownInterval = "LINUXTERM_COUNTDOWN_INTERVAL"
)

// ErrInvalidCanned is returned when a canned entry has no input.
var ErrInvalidCanned = errors.New("canned entry has empty input")

// Config holds the settings a host needs to build a terminal.
type Config struct {
	Prompt            string                 `yaml:"prompt"`
	WelcomeMessage    string                 `yaml:"welcome_message"`
	CurrentDir        string                 `yaml:"current_dir"`
	HistoryFile       string                 `yaml:"history_file"`
	HistorySize       int                    `yaml:"history_size"`
	CountdownInterval time.Duration          `yaml:"countdown_interval"`
	Canned            []dispatch.CannedEntry `yaml:"canned"`

	// Source is the file the config was read from, empty when only defaults
	// and the environment were used.
	Source string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:            "$ ",
		WelcomeMessage:    "Welcome!",
		CurrentDir:        "/",
		HistorySize:       500,
		CountdownInterval: time.Second,
	}
}

// Load reads .env, then the first config file found, then applies env
// overrides. An explicit path must exist; otherwise ./linuxterm.yaml and
// ~/.linuxterm/config.yaml are tried in that order and may both be missing.
func Load(explicitPath string) (*Config, error) {
	if err := godotenv.Load(EnvFileName); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFileName, err)
	}

	cfg := Default()
	if explicitPath != "" {
		if err := cfg.readFile(explicitPath); err != nil {
			return nil, err
		}
	} else if err := cfg.readFirst(LocalFileName, UserFilePath); err != nil {
		return nil, err
	}

	cfg.applyEnv(NewManager())
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults without touching files or the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CannedTable converts the canned entries into a dispatcher lookup table.
func (c *Config) CannedTable() dispatch.Canned {
	return dispatch.NewCanned(c.Canned)
}

func (c *Config) readFirst(candidates ...string) error {
	for _, candidate := range candidates {
		path, err := homedir.Expand(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return c.readFile(path)
	}
	return nil
}

func (c *Config) readFile(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv(m Manager) {
	c.Prompt = m.GetStringWithDefault(EnvPrompt, c.Prompt)
	c.WelcomeMessage = m.GetStringWithDefault(EnvWelcome, c.WelcomeMessage)
	c.CurrentDir = m.GetStringWithDefault(EnvCurrentDir, c.CurrentDir)
	c.HistoryFile = m.GetStringWithDefault(EnvHistoryFile, c.HistoryFile)
	c.HistorySize = m.GetIntWithDefault(EnvHistorySize, c.HistorySize)
	c.CountdownInterval = m.GetDurationWithDefault(EnvCountdownInterval, c.CountdownInterval)
}

func (c *Config) normalize() error {
	defaults := Default()
	if c.Prompt == "" {
		c.Prompt = defaults.Prompt
	}
	if c.CurrentDir == "" {
		c.CurrentDir = defaults.CurrentDir
	}
	if c.CountdownInterval <= 0 {
		c.CountdownInterval = defaults.CountdownInterval
	}
	if c.HistorySize < 0 {
		c.HistorySize = 0
	}
	if c.HistoryFile != "" {
		path, err := homedir.Expand(c.HistoryFile)
		if err != nil {
			return fmt.Errorf("failed to expand history file %s: %w", c.HistoryFile, err)
		}
		c.HistoryFile = path
	}
	for i, entry := range c.Canned {
		if entry.Input == "" {
			return fmt.Errorf("canned entry %d: %w", i, ErrInvalidCanned)
		}
	}
	return nil
}
