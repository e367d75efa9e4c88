package gate

// Status is the primary discriminant consumed by the agent runtime. The
// string values are a wire contract and must not change.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusBlocked   Status = "blocked"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending_confirmation"
)

// Result is produced once per execution attempt and is immutable after
// creation. It is consumed by both the audit log and the agent runtime's
// tool-result channel.
type Result struct {
	Status         Status `json:"status"`
	Message        string `json:"message,omitempty"`
	Stdout         string `json:"stdout,omitempty"`
	Stderr         string `json:"stderr,omitempty"`
	ExitCode       int    `json:"exit_code"`
	Command        string `json:"cmd,omitempty"`
	MatchedEntry   string `json:"matched_entry,omitempty"`
	ConfirmationID string `json:"confirmation_id,omitempty"`

	// executed records whether the command reached the executor and ran to
	// completion. Carried explicitly because Message may hold a persistence
	// warning alongside a real execution outcome; not part of the wire
	// format.
	executed bool
}

// Executed reports whether the command actually ran to completion. Blocked,
// cancelled, pending and faulted attempts never reach the executor.
func (r *Result) Executed() bool { return r.executed }
