// Package auditlog records every gate decision and execution outcome for one
// session as append-only JSONL. Two independent streams are kept: the
// conversation/tool-call stream and the raw terminal I/O stream, so a review
// of what the agent did is never mixed with what the user typed manually.
package auditlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes structured audit entries. All record methods are safe to call
// at any point and never return an error: a payload that cannot be serialized
// degrades to a plain-text line, and write failures are dropped rather than
// crashing the caller.
type Logger struct {
	mu       sync.Mutex
	session  io.Writer
	terminal io.Writer
	closers  []io.Closer
	now      func() time.Time
}

// NewLogger creates a Logger over the given streams. Either writer may be nil,
// in which case that stream's records are discarded.
func NewLogger(session, terminal io.Writer) *Logger {
	return &Logger{session: session, terminal: terminal, now: time.Now}
}

// OpenSession creates a Logger backed by fresh per-session files under dir:
// session_<timestamp>.log and terminal_<timestamp>.log.
func OpenSession(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	stamp := time.Now().Format("2006-01-02_15-04-05")
	sessionFile, err := os.OpenFile(filepath.Join(dir, "session_"+stamp+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	terminalFile, err := os.OpenFile(filepath.Join(dir, "terminal_"+stamp+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		_ = sessionFile.Close()
		return nil, fmt.Errorf("open terminal log: %w", err)
	}

	l := NewLogger(sessionFile, terminalFile)
	l.closers = []io.Closer{sessionFile, terminalFile}
	return l, nil
}

// Close flushes and closes any file-backed streams.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.closers = nil
	return firstErr
}

// SessionStart records the explicit beginning of a session. meta carries
// optional context such as the working directory or git branch.
func (l *Logger) SessionStart(meta map[string]any) {
	entry := map[string]any{"message": "session started"}
	for k, v := range meta {
		entry[k] = v
	}
	l.write(l.session, KindSessionStart, entry)
}

// SessionEnd records the explicit end of a session.
func (l *Logger) SessionEnd() {
	l.write(l.session, KindSessionEnd, map[string]any{"message": "session ended"})
}

// ToolCall records one tool invocation with its parameters and outcome.
// The result is stringified and capped at MaxToolResultLen characters.
func (l *Logger) ToolCall(tool string, params map[string]any, result any, success bool) {
	resultStr := stringify(result)
	l.write(l.session, KindToolCall, map[string]any{
		"tool":       tool,
		"parameters": params,
		"result":     Truncate(resultStr, MaxToolResultLen),
		"success":    success,
	})
}

// Conversation records a user or agent message, capped at MaxConversationLen.
func (l *Logger) Conversation(role, content string, metadata map[string]any) {
	entry := map[string]any{
		"role":    role,
		"content": Truncate(content, MaxConversationLen),
	}
	if len(metadata) > 0 {
		entry["metadata"] = metadata
	}
	l.write(l.session, KindConversation, entry)
}

// TerminalOutput records the raw outcome of an executed command on the
// terminal stream.
func (l *Logger) TerminalOutput(command, stdout, stderr string, exitCode int, cwd string) {
	l.write(l.terminal, KindTerminalOutput, map[string]any{
		"command":   command,
		"stdout":    Truncate(stdout, MaxToolResultLen),
		"stderr":    Truncate(stderr, MaxToolResultLen),
		"exit_code": exitCode,
		"cwd":       cwd,
	})
}

// TerminalError records a command that failed to launch.
func (l *Logger) TerminalError(command, errMsg, cwd string) {
	l.write(l.terminal, KindTerminalError, map[string]any{
		"command": command,
		"error":   errMsg,
		"cwd":     cwd,
	})
}

// write serializes one entry as a self-contained JSON line. Serialization
// failures fall back to a degraded plain-text record; logging must never
// crash the caller.
func (l *Logger) write(w io.Writer, kind Kind, payload map[string]any) {
	if w == nil {
		return
	}

	entry := map[string]any{
		"timestamp": l.now().Format(time.RFC3339),
		"event":     string(kind),
	}
	for k, v := range payload {
		entry[k] = v
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(w, "%s %s (unserializable payload: %v)\n", entry["timestamp"], kind, err)
		return
	}
	_, _ = w.Write(append(data, '\n'))
}

// stringify renders a tool result for logging. JSON-serializable results are
// rendered as JSON, everything else through fmt.
func stringify(result any) string {
	switch v := result.(type) {
	case string:
		return v
	case nil:
		return ""
	}
	if data, err := json.Marshal(result); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", result)
}
