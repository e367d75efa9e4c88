package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "flourish"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// LogsDir is the session log directory name under the config directory
	LogsDir = "logs"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// OSFileSystem implements FileSystem using the real OS
type OSFileSystem struct{}

func (OSFileSystem) UserHomeDir() (string, error) { return os.UserHomeDir() }

func (OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (OSFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: OSFileSystem{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Path returns the config file path, or "" if the home directory is unknown.
func (l *Loader) Path() string {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
}

// LogsPath returns the session log directory, or "" if the home directory is
// unknown.
func (l *Loader) LogsPath() string {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", ConfigDir, LogsDir)
}

// Load reads configuration from ~/.config/flourish/config.json and merges it
// with defaults. Returns default config (seeded blacklist) if the file does
// not exist. When a file exists, keys present in it override defaults and the
// policy lists default to empty rather than the seeded blacklist, so an
// explicitly emptied list stays empty. Unknown keys are ignored. Returns an
// error only for permission issues or malformed JSON.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path := l.Path()
	if path == "" {
		return cfg, nil // Use defaults if can't get home dir
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// A persisted policy exists: missing list keys mean empty lists, not the
	// seeded defaults.
	cfg.Allowlist = []string{}
	cfg.Blacklist = []string{}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
