// Package config loads the optional clean settings file and locates the
// home directory holding the global clean configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taigrr/clean/internal/cleanfile"
	"github.com/taigrr/clean/internal/logger"
	"github.com/taigrr/clean/internal/types"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the settings file location.
const EnvConfigPath = "CLEAN_CONFIG"

// Settings controls a clean run.
type Settings struct {
	// FileName is the per-directory configuration file name.
	FileName string `yaml:"file_name"`
	// ProbeTools enables the tool prober.
	ProbeTools bool `yaml:"probe_tools"`
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// DisabledTools lists tool names that are never probed.
	DisabledTools []string `yaml:"disabled_tools"`
}

// Default returns the settings used when no settings file exists.
func Default() *Settings {
	return &Settings{
		FileName:   cleanfile.DefaultFileName,
		ProbeTools: true,
		LogLevel:   "info",
	}
}

// DefaultPath returns the settings file location: $CLEAN_CONFIG when set,
// otherwise clean/config.yaml under the user configuration directory.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, "clean", "config.yaml"), nil
}

// Load reads settings from path. A missing file yields Default().
func Load(path string) (*Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	// Pointers distinguish "unset" from zero values so defaults survive.
	type yamlSettings struct {
		FileName      *string  `yaml:"file_name"`
		ProbeTools    *bool    `yaml:"probe_tools"`
		LogLevel      *string  `yaml:"log_level"`
		DisabledTools []string `yaml:"disabled_tools"`
	}

	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	if raw.FileName != nil {
		cfg.FileName = *raw.FileName
	}
	if raw.ProbeTools != nil {
		cfg.ProbeTools = *raw.ProbeTools
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	cfg.DisabledTools = raw.DisabledTools

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for values the cleaner cannot use.
func (s *Settings) Validate() error {
	if s.FileName == "" {
		return errors.New("file_name must not be empty")
	}
	if strings.ContainsAny(s.FileName, `/\`) || s.FileName == "." || s.FileName == ".." {
		return fmt.Errorf("file_name %q must be a plain file name", s.FileName)
	}
	if !logger.ValidLevel(s.LogLevel) {
		return fmt.Errorf("log_level %q must be one of trace, debug, info, warn, error", s.LogLevel)
	}
	known := types.DefaultTools()
	for _, name := range s.DisabledTools {
		if !slices.ContainsFunc(known, func(t types.Tool) bool { return t.Name == name }) {
			return fmt.Errorf("disabled_tools: unknown tool %q", name)
		}
	}
	return nil
}

// Tools returns the built-in tool table without the disabled tools.
func (s *Settings) Tools() []types.Tool {
	return slices.DeleteFunc(types.DefaultTools(), func(t types.Tool) bool {
		return slices.Contains(s.DisabledTools, t.Name)
	})
}

// HomeDir returns the user's home directory, falling back to $HOME when
// the platform lookup fails.
func HomeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return "", errors.New("home directory not found")
}
