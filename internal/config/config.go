// Package config loads taskboard settings from YAML or TOML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/taskboard/internal/config/colors"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workflow"
)

// Environment variables that override file settings.
const (
	EnvConfigFile = "TASKBOARD_CONFIG"
	EnvDatabase   = "TASKBOARD_DB"
	EnvLogLevel   = "TASKBOARD_LOG_LEVEL"
	EnvWorkflow   = "TASKBOARD_WORKFLOW"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database" toml:"database"`
	Log         LogConfig          `yaml:"log" toml:"log"`
	Workflow    WorkflowConfig     `yaml:"workflow" toml:"workflow"`
	Board       BoardConfig        `yaml:"board" toml:"board"`
	KeyMappings KeyMappings        `yaml:"key_mappings" toml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme" toml:"theme"`
}

type DatabaseConfig struct {
	// Path to the SQLite file. Empty uses the XDG data directory.
	Path string `yaml:"path" toml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File receives JSON log lines. Empty uses the XDG state directory.
	File string `yaml:"file" toml:"file"`
}

// WorkflowConfig selects the transition policy.
//
//	workflow:
//	  mode: guarded
//	  require_subtasks_for_done: true
//	  transitions:
//	    done: [review]
type WorkflowConfig struct {
	Mode                   string              `yaml:"mode" toml:"mode"`
	Transitions            map[string][]string `yaml:"transitions" toml:"transitions"`
	RequireSubtasksForDone bool                `yaml:"require_subtasks_for_done" toml:"require_subtasks_for_done"`
}

type BoardConfig struct {
	ColumnWidth    int    `yaml:"column_width" toml:"column_width"`
	DefaultProject string `yaml:"default_project" toml:"default_project"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config from TASKBOARD_CONFIG or the user's config directory,
// then applies environment overrides and defaults. A missing file is not an
// error.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigFile)
	if path == "" {
		var err error
		path, err = findConfigFile()
		if err != nil {
			cfg := Default()
			cfg.applyEnv()
			return cfg, nil
		}
	}
	return LoadFile(path)
}

// LoadFile reads path, choosing the decoder by extension. A path that does
// not exist yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config as YAML to the user's config directory
func (c *Config) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644)
}

// Policy builds the transition policy described by the workflow section.
// Validate should be called first; invalid status names are skipped here.
func (w WorkflowConfig) Policy() workflow.TransitionPolicy {
	if w.Mode != workflow.ModeGuarded {
		return workflow.Free{}
	}

	rules := make(map[models.Status][]models.Status, len(w.Transitions))
	for from, tos := range w.Transitions {
		fs, err := models.ParseStatus(from)
		if err != nil {
			continue
		}
		list := make([]models.Status, 0, len(tos))
		for _, to := range tos {
			if ts, err := models.ParseStatus(to); err == nil {
				list = append(list, ts)
			}
		}
		rules[fs] = list
	}
	return workflow.NewGuarded(rules, w.RequireSubtasksForDone)
}

// configDir returns $XDG_CONFIG_HOME/taskboard or ~/.config/taskboard.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskboard"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "taskboard"), nil
}

// findConfigFile prefers config.yaml, then config.yml, then config.toml. When
// none exist it returns the config.yaml path so LoadFile falls back to defaults.
func findConfigFile() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvWorkflow); v != "" {
		c.Workflow.Mode = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Workflow.Mode == "" {
		c.Workflow.Mode = workflow.ModeFree
	}
	if c.Board.ColumnWidth <= 0 {
		c.Board.ColumnWidth = 32
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
