package auditlog

// Kind is the event discriminant written into every log line.
type Kind string

const (
	KindSessionStart   Kind = "session_start"
	KindSessionEnd     Kind = "session_end"
	KindToolCall       Kind = "tool_call"
	KindConversation   Kind = "conversation"
	KindTerminalOutput Kind = "terminal_output"
	KindTerminalError  Kind = "terminal_error"
)

// Truncation caps. These are a hard bound on log growth, not a tunable; any
// consumer parsing the logs back relies on the exact thresholds and marker.
const (
	MaxToolResultLen   = 1000
	MaxConversationLen = 2000
	TruncationMarker   = "... [truncated]"
)

// Truncate caps s at max characters, appending the truncation marker when
// anything was cut. A string of exactly max characters is returned unmodified.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + TruncationMarker
}
