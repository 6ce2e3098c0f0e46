package fs

import (
	"os"
	"path/filepath"
)

// System provides an abstraction over file system operations.
// This allows for easy mocking in tests.
type System interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)

	// Directory operations
	MkdirAll(path string, perm os.FileMode) error

	// Path checks
	Exists(path string) bool
	IsDir(path string) bool

	// Path utilities
	Join(elem ...string) string
	Dir(path string) string

	// Home directory
	UserHomeDir() (string, error)
}

// RealSystem implements System using the real file system.
type RealSystem struct{}

// New returns a new RealSystem.
func New() *RealSystem {
	return &RealSystem{}
}

func (r *RealSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (r *RealSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (r *RealSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (r *RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (r *RealSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (r *RealSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (r *RealSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (r *RealSystem) Dir(path string) string {
	return filepath.Dir(path)
}

func (r *RealSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}
