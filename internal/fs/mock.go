package fs

import (
	"os"
	"path/filepath"
	"time"
)

// MockSystem implements System for testing purposes.
type MockSystem struct {
	Files   map[string][]byte
	Dirs    map[string]bool
	HomeDir string
}

// NewMock returns a new MockSystem.
func NewMock() *MockSystem {
	return &MockSystem{
		Files:   make(map[string][]byte),
		Dirs:    make(map[string]bool),
		HomeDir: "/home/test",
	}
}

func (m *MockSystem) ReadFile(path string) ([]byte, error) {
	path = m.normalizePath(path)
	if data, ok := m.Files[path]; ok {
		return data, nil
	}
	return nil, os.ErrNotExist
}

func (m *MockSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	path = m.normalizePath(path)
	m.Files[path] = data
	return nil
}

func (m *MockSystem) Stat(path string) (os.FileInfo, error) {
	path = m.normalizePath(path)
	if _, ok := m.Files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), isDir: false}, nil
	}
	if m.Dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), isDir: true}, nil
	}
	return nil, os.ErrNotExist
}

func (m *MockSystem) MkdirAll(path string, _ os.FileMode) error {
	path = m.normalizePath(path)
	for path != "/" && path != "." {
		m.Dirs[path] = true
		path = filepath.Dir(path)
	}
	return nil
}

func (m *MockSystem) Exists(path string) bool {
	path = m.normalizePath(path)
	if _, ok := m.Files[path]; ok {
		return true
	}
	return m.Dirs[path]
}

func (m *MockSystem) IsDir(path string) bool {
	path = m.normalizePath(path)
	return m.Dirs[path]
}

func (m *MockSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (m *MockSystem) Dir(path string) string {
	return filepath.Dir(path)
}

func (m *MockSystem) UserHomeDir() (string, error) {
	return m.HomeDir, nil
}

func (m *MockSystem) normalizePath(path string) string {
	return filepath.Clean(path)
}

// mockFileInfo implements os.FileInfo for MockSystem entries.
type mockFileInfo struct {
	name  string
	isDir bool
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return 0 }
func (fi *mockFileInfo) Mode() os.FileMode  { return 0o644 }
func (fi *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() any           { return nil }
