package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
)

// Store persists configuration mutations synchronously. It implements
// policy.Saver so the policy store can write through to the config file on
// every list mutation.
type Store struct {
	mu   sync.Mutex
	fs   FileSystem
	path string
	cfg  *Config
}

// NewStore creates a Store over the loaded config. path is the config file
// location; an empty path makes every save fail, which callers surface as a
// persistence fault.
func NewStore(fs FileSystem, path string, cfg *Config) *Store {
	return &Store{fs: fs, path: path, cfg: cfg}
}

// SavePolicy writes the given policy lists into the config file, preserving
// all other settings.
func (s *Store) SavePolicy(allowlist, blacklist []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Allowlist = allowlist
	s.cfg.Blacklist = blacklist
	return s.save()
}

// SetModel updates the configured model and persists.
func (s *Store) SetModel(model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Model = model
	return s.save()
}

func (s *Store) save() error {
	if s.path == "" {
		return fmt.Errorf("config path unknown")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
