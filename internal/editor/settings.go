// Package editor applies target environments to the workspace's gopls
// configuration in .vscode/settings.json.
package editor

import (
	"encoding/json"
	"fmt"

	"github.com/tinygo-tools/targetctl/internal/fs"
	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

const (
	// SettingsDir is the editor settings directory under the workspace root.
	SettingsDir = ".vscode"
	// SettingsFileName is the editor settings file name.
	SettingsFileName = "settings.json"

	goplsKey = "gopls"
	envKey   = "env"
)

// envVars are the only gopls environment entries this tool manages. All
// other settings content passes through untouched.
var envVars = []string{"GOOS", "GOARCH", "GOROOT", "GOFLAGS"}

// Store reads and writes the workspace settings file.
type Store struct {
	fs fs.System
}

// NewStore creates a new Store.
func NewStore(fsys fs.System) *Store {
	return &Store{fs: fsys}
}

// Get loads the workspace settings. A missing settings file is an empty
// mapping, not an error.
func (s *Store) Get(root string) (map[string]any, error) {
	path := s.fs.Join(root, SettingsDir, SettingsFileName)
	if !s.fs.Exists(path) {
		return map[string]any{}, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor settings: %w", err)
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse editor settings: %w", err)
	}
	return settings, nil
}

// Set writes the workspace settings, creating the settings directory when
// needed.
func (s *Store) Set(root string, settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal editor settings: %w", err)
	}
	data = append(data, '\n')

	dir := s.fs.Join(root, SettingsDir)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := s.fs.WriteFile(s.fs.Join(dir, SettingsFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write editor settings: %w", err)
	}
	return nil
}

// ApplyEnv merges the target's environment into the settings mapping and
// returns it. Only the managed gopls env entries are touched: non-empty
// values are set, empty ones are removed rather than written as empty
// strings. Emptied env/gopls blocks are dropped entirely.
func ApplyEnv(settings map[string]any, md toolchain.Metadata) map[string]any {
	env := md.Env()

	gopls := subMap(settings, goplsKey)
	goplsEnv := subMap(gopls, envKey)

	for _, name := range envVars {
		if value, ok := env[name]; ok {
			goplsEnv[name] = value
		} else {
			delete(goplsEnv, name)
		}
	}

	if len(goplsEnv) == 0 {
		delete(gopls, envKey)
	} else {
		gopls[envKey] = goplsEnv
	}
	if len(gopls) == 0 {
		delete(settings, goplsKey)
	} else {
		settings[goplsKey] = gopls
	}
	return settings
}

// subMap returns m[key] as a mapping, starting fresh when the key is absent
// or holds something that is not a mapping.
func subMap(m map[string]any, key string) map[string]any {
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return map[string]any{}
}
