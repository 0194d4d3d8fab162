// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDataFile = "todos.json"
	DefaultName     = "Todos"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	ProjectFileName = "todo.toml"
)

var (
	Themes    = []string{"classic", "neon", "mono"}
	LogLevels = []string{"debug", "info", "warn", "error"}
)

// Config holds the settings for the todo CLI.
type Config struct {
	DataFile string `toml:"data_file"`
	Name     string `toml:"name"`
	Theme    string `toml:"theme"`
	Group    bool   `toml:"group"`
	LogLevel string `toml:"log_level"`

	// Files that contributed, lowest precedence first. Not persisted.
	Files []string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		Name:     DefaultName,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Sources says where to look. Empty paths are skipped; a nil Getenv
// disables the environment layer.
type Sources struct {
	UserFile    string
	ProjectFile string
	Getenv      func(string) string
}

// DefaultSources uses the user config dir, ./todo.toml and os.Getenv.
func DefaultSources() Sources {
	return Sources{
		UserFile:    userConfigFile(),
		ProjectFile: ProjectFileName,
		Getenv:      os.Getenv,
	}
}

// Load merges defaults, the user file, the project file and the
// environment, in that order. Flags are applied by the caller afterwards.
func Load(src Sources) (*Config, error) {
	cfg := Default()
	for _, path := range []string{src.UserFile, src.ProjectFile} {
		if path == "" {
			continue
		}
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if src.Getenv != nil {
		cfg.mergeEnv(src.Getenv)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	c.Files = append(c.Files, path)
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("TODO_FILE")); v != "" {
		c.DataFile = v
	}
	if v := getenv("TODO_NAME"); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(getenv("TODO_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(getenv("TODO_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("TODO_GROUP")); v != "" {
		c.Group = boolFromString(v)
	}
}

// Validate normalizes and checks enumerated fields.
func (c *Config) Validate() error {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if !contains(Themes, c.Theme) {
		return fmt.Errorf("invalid theme %q: must be one of %v", c.Theme, Themes)
	}
	if !contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q: must be one of %v", c.LogLevel, LogLevels)
	}
	c.DataFile = expandPath(c.DataFile)
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func userConfigFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "todo", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todo", "config.toml")
}

// expandPath resolves a leading "~/".
func expandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
