package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tinygo-tools/targetctl/internal/fs"
)

const (
	// ConfigDir is the directory name for targetctl configuration.
	ConfigDir = ".config/targetctl"
	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.yaml"
	// WorkspaceMarker is the file whose nearest enclosing directory is the
	// workspace root.
	WorkspaceMarker = "go.mod"
)

// Config represents the tool configuration.
type Config struct {
	// Toolchain is the TinyGo binary name or path.
	Toolchain string `yaml:"toolchain"`
	// StatusName is the toolchain name shown in status output.
	StatusName string `yaml:"statusName"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Toolchain:  "tinygo",
		StatusName: "TinyGo",
	}
}

// Store manages config file persistence.
type Store struct {
	fs fs.System
}

// NewStore creates a new Store.
func NewStore(fsys fs.System) *Store {
	return &Store{fs: fsys}
}

// Load loads the configuration from a file. An empty path means the global
// config path.
func (s *Store) Load(path string) (*Config, error) {
	var err error
	if path == "" {
		path, err = s.GlobalConfigPath()
	} else {
		path, err = ExpandPath(s.fs, path)
	}
	if err != nil {
		return nil, err
	}

	if !s.fs.Exists(path) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Toolchain == "" {
		cfg.Toolchain = Default().Toolchain
	}
	if cfg.StatusName == "" {
		cfg.StatusName = Default().StatusName
	}
	return cfg, nil
}

// Save saves the configuration to a specific path.
func (s *Store) Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := s.fs.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GlobalConfigPath returns the path to the global config file.
func (s *Store) GlobalConfigPath() (string, error) {
	home, err := s.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return s.fs.Join(home, ConfigDir, ConfigFileName), nil
}

// FindWorkspaceRoot searches for the workspace root by looking for go.mod,
// starting from the current working directory.
func (s *Store) FindWorkspaceRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return s.FindWorkspaceRootFrom(cwd)
}

// FindWorkspaceRootFrom searches for the workspace root starting from the
// given directory.
func (s *Store) FindWorkspaceRootFrom(startDir string) (string, error) {
	dir := startDir
	for {
		marker := s.fs.Join(dir, WorkspaceMarker)
		if s.fs.Exists(marker) && !s.fs.IsDir(marker) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("workspace root not found (no %s in any parent directory)", WorkspaceMarker)
		}
		dir = parent
	}
}

// ExpandPath expands ~ in a path to the home directory.
func ExpandPath(fsys fs.System, path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] == '~' {
		home, err := fsys.UserHomeDir()
		if err != nil {
			return "", err
		}
		return home + path[1:], nil
	}

	return path, nil
}
