// Package session owns the mutable state of one interactive session: the
// working directory, the policy store, the gate and the audit streams. State
// lives on an explicit object passed to every caller rather than in
// process-wide globals; a single session per process is assumed.
package session

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/flourish-sh/flourish/internal/auditlog"
	"github.com/flourish-sh/flourish/internal/gate"
	"github.com/flourish-sh/flourish/internal/gitutil"
	"github.com/flourish-sh/flourish/internal/policy"
)

// DirChecker validates candidate working directories.
type DirChecker interface {
	Stat(path string) (os.FileInfo, error)
}

// OSDirChecker implements DirChecker against the real filesystem.
type OSDirChecker struct{}

func (OSDirChecker) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// Session wires one interactive session together.
type Session struct {
	mu    sync.Mutex
	id    string
	cwd   string
	store *policy.Store
	gate  *gate.Gate
	audit *auditlog.Logger
	dirs  DirChecker
}

// New creates a Session rooted at cwd. A nil dirs defaults to the real
// filesystem.
func New(cwd string, store *policy.Store, g *gate.Gate, audit *auditlog.Logger, dirs DirChecker) *Session {
	if dirs == nil {
		dirs = OSDirChecker{}
	}
	return &Session{
		id:    uuid.NewString(),
		cwd:   cwd,
		store: store,
		gate:  g,
		audit: audit,
		dirs:  dirs,
	}
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string { return s.id }

// Describe summarizes the session environment for the agent prompt: working
// directory plus git context when available.
func (s *Session) Describe() string {
	desc := "Working directory: " + s.Cwd()
	if info, ok := gitutil.Describe(s.Cwd()); ok {
		desc += "\nGit repository: " + info.Root
		if info.Branch != "" {
			desc += " (branch " + info.Branch + ")"
		}
	}
	return desc
}

// Start records the session boundary in the audit log, including git context
// when the working directory is inside a repository.
func (s *Session) Start() {
	meta := map[string]any{"session_id": s.id, "cwd": s.Cwd()}
	if info, ok := gitutil.Describe(s.Cwd()); ok {
		meta["git_root"] = info.Root
		if info.Branch != "" {
			meta["git_branch"] = info.Branch
		}
	}
	s.audit.SessionStart(meta)
}

// End records the session end boundary.
func (s *Session) End() {
	s.audit.SessionEnd()
}

// Cwd returns the current working directory for command execution.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// SetCwd validates that path is an existing directory and makes it the
// working directory for subsequent executions.
func (s *Session) SetCwd(path string) error {
	info, err := s.dirs.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("Invalid directory: %s", path)
	}

	s.mu.Lock()
	s.cwd = path
	s.mu.Unlock()
	return nil
}

// Policy returns the session's policy store.
func (s *Session) Policy() *policy.Store { return s.store }

// Gate returns the session's command gate.
func (s *Session) Gate() *gate.Gate { return s.gate }

// Audit returns the session's audit logger.
func (s *Session) Audit() *auditlog.Logger { return s.audit }
