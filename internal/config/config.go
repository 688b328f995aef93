// Package config holds the well-known names of the language (slot names,
// file extensions) and the optional numpad.yaml workspace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WorkspaceConfig represents the top-level numpad.yaml configuration.
type WorkspaceConfig struct {
	// LibDir is the shared unit directory used when a unit is not found
	// next to the entry file. Relative paths are resolved against the
	// working directory. Defaults to "lib".
	LibDir string `yaml:"lib_dir,omitempty"`

	// Extensions are the source file extensions tried during unit
	// resolution, in order. Defaults to [".npd", ".txt"].
	Extensions []string `yaml:"extensions,omitempty"`

	// ParamDelimiter separates the values passed via --param.
	// Defaults to ",".
	ParamDelimiter string `yaml:"param_delimiter,omitempty"`

	// Trace enables trace logging for every run in this workspace, as if
	// --verbose had been passed.
	Trace bool `yaml:"trace,omitempty"`
}

// DefaultConfig returns the configuration used when no numpad.yaml is
// found.
func DefaultConfig() *WorkspaceConfig {
	cfg := &WorkspaceConfig{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a numpad.yaml file from the given path.
func LoadConfig(path string) (*WorkspaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses numpad.yaml content from bytes. The path argument is
// used only for error messages.
func ParseConfig(data []byte, path string) (*WorkspaceConfig, error) {
	var cfg WorkspaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for numpad.yaml starting from dir and walking up to
// parent directories. Returns the path to the config file and nil error
// if found, or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "numpad.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "numpad.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *WorkspaceConfig) validate(path string) error {
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%s: extensions[%d]: %q must start with '.'", path, i, ext)
		}
	}
	return nil
}

func (c *WorkspaceConfig) setDefaults() {
	if c.LibDir == "" {
		c.LibDir = DefaultLibDir
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), SourceFileExtensions...)
	}
	if c.ParamDelimiter == "" {
		c.ParamDelimiter = DefaultParamDelimiter
	}
}
