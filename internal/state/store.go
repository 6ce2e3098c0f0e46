// Package state persists the target history and the per-workspace active
// target across sessions.
package state

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tinygo-tools/targetctl/internal/fs"
	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

const (
	// StateDir is the directory under the home directory holding
	// cross-session state.
	StateDir = ".config/targetctl"
	// StateFileName is the name of the global state file.
	StateFileName = "state.yaml"
	// WorkspaceFileName is the name of the per-workspace state file.
	WorkspaceFileName = ".targetctl.yaml"
)

// globalState is the on-disk shape of the global state file.
type globalState struct {
	// History lists previously chosen targets, most recent first.
	History []string `yaml:"history"`
}

// workspaceState is the on-disk shape of the per-workspace state file.
type workspaceState struct {
	Target string `yaml:"target"`
}

// Store manages state file persistence.
type Store struct {
	fs fs.System
}

// NewStore creates a new Store.
func NewStore(fsys fs.System) *Store {
	return &Store{fs: fsys}
}

// History returns the persisted target history, most recent first. A
// missing state file is an empty history, not an error.
func (s *Store) History() ([]string, error) {
	path, err := s.globalStatePath()
	if err != nil {
		return nil, err
	}
	if !s.fs.Exists(path) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st globalState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return st.History, nil
}

// SaveHistory writes the target history, creating the state directory when
// needed.
func (s *Store) SaveHistory(history []string) error {
	path, err := s.globalStatePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(globalState{History: history})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.fs.MkdirAll(s.fs.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// ActiveTarget returns the workspace's active target. A missing workspace
// file means no target has been applied: the default sentinel.
func (s *Store) ActiveTarget(root string) (string, error) {
	path := s.fs.Join(root, WorkspaceFileName)
	if !s.fs.Exists(path) {
		return toolchain.DefaultTarget, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read workspace state: %w", err)
	}

	var st workspaceState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return "", fmt.Errorf("failed to parse workspace state: %w", err)
	}
	if st.Target == "" {
		return toolchain.DefaultTarget, nil
	}
	return st.Target, nil
}

// SaveActiveTarget records the workspace's active target.
func (s *Store) SaveActiveTarget(root, target string) error {
	data, err := yaml.Marshal(workspaceState{Target: target})
	if err != nil {
		return fmt.Errorf("failed to marshal workspace state: %w", err)
	}

	path := s.fs.Join(root, WorkspaceFileName)
	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workspace state: %w", err)
	}
	return nil
}

func (s *Store) globalStatePath() (string, error) {
	home, err := s.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return s.fs.Join(home, StateDir, StateFileName), nil
}
