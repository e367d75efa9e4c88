package policy

import (
	"fmt"
	"slices"
	"sync"
)

// Saver persists the current policy lists to durable storage.
type Saver interface {
	SavePolicy(allowlist, blacklist []string) error
}

// NopSaver discards policy mutations. Used when the lists are overridden for
// a single invocation and must not touch the persisted config.
type NopSaver struct{}

func (NopSaver) SavePolicy(allowlist, blacklist []string) error { return nil }

// Store owns the allowlist and blacklist for one session. Mutations persist
// synchronously through the injected Saver before returning. The store is a
// single-session object; it is mutex-guarded but not meant to be shared
// across concurrent sessions.
type Store struct {
	mu    sync.RWMutex
	allow []string
	black []string
	saver Saver
}

// NewStore creates a Store seeded with the given lists. Nil slices are
// treated as empty. A nil saver defaults to NopSaver.
func NewStore(allowlist, blacklist []string, saver Saver) *Store {
	if saver == nil {
		saver = NopSaver{}
	}
	return &Store{
		allow: slices.Clone(allowlist),
		black: slices.Clone(blacklist),
		saver: saver,
	}
}

// Allowlist returns a copy of the current allowlist.
func (s *Store) Allowlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.allow...)
}

// Blacklist returns a copy of the current blacklist.
func (s *Store) Blacklist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.black...)
}

// Add appends entry to the given list. Adding an existing entry is a no-op
// that still succeeds. The mutation is persisted before returning; a
// persistence failure is reported as ErrPersist but the in-memory change
// stands for the rest of the session.
func (s *Store) Add(entry string, list List) error {
	s.mu.Lock()
	target := s.target(list)
	if slices.Contains(*target, entry) {
		s.mu.Unlock()
		return nil
	}
	*target = append(*target, entry)
	allow, black := slices.Clone(s.allow), slices.Clone(s.black)
	s.mu.Unlock()

	if err := s.saver.SavePolicy(allow, black); err != nil {
		return fmt.Errorf("%w: add %q to %s: %v", ErrPersist, entry, list, err)
	}
	return nil
}

// Remove deletes entry from the given list. Removing a non-member is a no-op
// that still succeeds. Persistence semantics match Add.
func (s *Store) Remove(entry string, list List) error {
	s.mu.Lock()
	target := s.target(list)
	idx := slices.Index(*target, entry)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	*target = slices.Delete(*target, idx, idx+1)
	allow, black := slices.Clone(s.allow), slices.Clone(s.black)
	s.mu.Unlock()

	if err := s.saver.SavePolicy(allow, black); err != nil {
		return fmt.Errorf("%w: remove %q from %s: %v", ErrPersist, entry, list, err)
	}
	return nil
}

// MatchAllow returns the first allowlist entry matching base, if any.
func (s *Store) MatchAllow(base string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Match(s.allow, base)
}

// MatchBlack returns the first blacklist entry matching base, if any.
// Blacklist matches take precedence over allowlist matches at every check
// point; callers must consult this before MatchAllow.
func (s *Store) MatchBlack(base string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Match(s.black, base)
}

func (s *Store) target(list List) *[]string {
	if list == ListBlack {
		return &s.black
	}
	return &s.allow
}
