// Package policy holds the allowlist and blacklist that gate shell command
// execution, and the matching rules used to compare commands against them.
package policy

import "strings"

// List identifies which policy list an operation targets.
type List string

const (
	ListAllow List = "allowlist"
	ListBlack List = "blacklist"
)

// BaseCommand extracts the base command token from a raw command string.
// The base command is the first whitespace-delimited field after trimming.
// Returns "" for empty or all-whitespace input.
func BaseCommand(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Matches reports whether a policy entry matches a base command.
// Matching is substring-based in both directions: an entry matches when it
// contains the base command or the base command contains the entry. This means
// "git" matches "gitk" and a single-letter entry like "r" matches "rm".
func Matches(entry, base string) bool {
	return strings.Contains(base, entry) || strings.Contains(entry, base)
}

// Match returns the first entry in entries matching base, preserving list order.
func Match(entries []string, base string) (string, bool) {
	for _, entry := range entries {
		if Matches(entry, base) {
			return entry, true
		}
	}
	return "", false
}

// DefaultBlacklist returns the destructive-command tokens seeded into the
// blacklist when no persisted policy exists.
func DefaultBlacklist() []string {
	return []string{"rm", "dd", "format", "mkfs", "chmod 777"}
}
