package auditlog

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParsedEntry is one log line read back into structured form.
type ParsedEntry struct {
	Timestamp string         `json:"timestamp"`
	Event     Kind           `json:"event"`
	Fields    map[string]any `json:"-"`
}

// ReadEntries parses JSONL audit entries from r. Malformed or truncated lines
// are skipped; degraded plain-text fallback records do not parse as JSON and
// are skipped the same way.
func ReadEntries(r io.Reader) []ParsedEntry {
	var entries []ParsedEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fields map[string]any
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			continue
		}

		entry := ParsedEntry{Fields: fields}
		if ts, ok := fields["timestamp"].(string); ok {
			entry.Timestamp = ts
		}
		if ev, ok := fields["event"].(string); ok {
			entry.Event = Kind(ev)
		}
		entries = append(entries, entry)
	}
	return entries
}

// LatestSessionLog returns the path of the most recent session_*.log file
// under dir, or "" if none exists.
func LatestSessionLog(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "session_*.log"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}

// ReadSessionFile parses all entries from the log file at path.
func ReadSessionFile(path string) ([]ParsedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEntries(f), nil
}
