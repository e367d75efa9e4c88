// Package history reads recent tool calls back out of session audit logs so
// a user (or the agent itself) can review what was done on the machine.
package history

import (
	"fmt"

	"github.com/flourish-sh/flourish/internal/auditlog"
)

const (
	// DefaultLimit is the number of entries returned when none is requested.
	DefaultLimit = 20
	// MaxLimit bounds a single read.
	MaxLimit = 100
)

// ToolCall is one recorded tool invocation.
type ToolCall struct {
	Timestamp  string         `json:"timestamp"`
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Result     string         `json:"result,omitempty"`
	Success    bool           `json:"success"`
}

// Service reads tool-call history from a session log directory.
type Service struct {
	logsDir string
}

// NewService creates a Service over logsDir.
func NewService(logsDir string) *Service {
	return &Service{logsDir: logsDir}
}

// RecentToolCalls returns up to limit tool calls from the most recent session
// log, newest last. Malformed log lines are skipped. limit is clamped to
// [1, MaxLimit]; zero means DefaultLimit.
func (s *Service) RecentToolCalls(limit int) ([]ToolCall, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	path := auditlog.LatestSessionLog(s.logsDir)
	if path == "" {
		return nil, nil
	}

	entries, err := auditlog.ReadSessionFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}

	var calls []ToolCall
	for _, entry := range entries {
		if entry.Event != auditlog.KindToolCall {
			continue
		}
		calls = append(calls, toolCallFromEntry(entry))
	}

	if len(calls) > limit {
		calls = calls[len(calls)-limit:]
	}
	return calls, nil
}

func toolCallFromEntry(entry auditlog.ParsedEntry) ToolCall {
	call := ToolCall{Timestamp: entry.Timestamp}
	if tool, ok := entry.Fields["tool"].(string); ok {
		call.Tool = tool
	}
	if params, ok := entry.Fields["parameters"].(map[string]any); ok {
		call.Parameters = params
	}
	if result, ok := entry.Fields["result"].(string); ok {
		call.Result = result
	}
	if success, ok := entry.Fields["success"].(bool); ok {
		call.Success = success
	}
	return call
}
