package tool

import "github.com/flourish-sh/flourish/internal/history"

// Tool names as exposed to the model. The set is closed; the agent can only
// reach the machine through these.
const (
	NameExecuteBash         = "execute_bash"
	NameResolveConfirmation = "resolve_confirmation"
	NameSetCwd              = "set_cwd"
	NameAddToAllowlist      = "add_to_allowlist"
	NameRemoveFromAllowlist = "remove_from_allowlist"
	NameAddToBlacklist      = "add_to_blacklist"
	NameRemoveFromBlacklist = "remove_from_blacklist"
	NameListAllowlist       = "list_allowlist"
	NameListBlacklist       = "list_blacklist"
	NameIsInAllowlist       = "is_in_allowlist"
	NameIsInBlacklist       = "is_in_blacklist"
	NameReadToolHistory     = "read_tool_history"
)

// ExecuteBashRequest asks the gate to run a shell command.
type ExecuteBashRequest struct {
	Command string `mapstructure:"command"`
}

// ResolveConfirmationRequest completes a pending confirmation.
type ResolveConfirmationRequest struct {
	ConfirmationID string `mapstructure:"confirmation_id"`
	Approved       bool   `mapstructure:"approved"`
}

// SetCwdRequest changes the working directory for subsequent commands.
type SetCwdRequest struct {
	Path string `mapstructure:"path"`
}

// PolicyEntryRequest names a policy entry to add or remove.
type PolicyEntryRequest struct {
	Command string `mapstructure:"command"`
}

// CommandQueryRequest names a command to check against a policy list.
type CommandQueryRequest struct {
	Command string `mapstructure:"command"`
}

// ReadToolHistoryRequest bounds a history read.
type ReadToolHistoryRequest struct {
	Limit int `mapstructure:"limit"`
}

// StatusResult is the minimal tool response: an outcome and a message.
type StatusResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PolicyMutationResult reports a list change along with the updated list.
type PolicyMutationResult struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Allowlist []string `json:"allowlist,omitempty"`
	Blacklist []string `json:"blacklist,omitempty"`
}

// PolicyListResult reports the full contents of one policy list.
type PolicyListResult struct {
	Status    string   `json:"status"`
	Allowlist []string `json:"allowlist,omitempty"`
	Blacklist []string `json:"blacklist,omitempty"`
	Count     int      `json:"count"`
}

// AllowlistMembership reports whether a command matches the allowlist.
type AllowlistMembership struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	Command      string `json:"command,omitempty"`
	BaseCommand  string `json:"base_command,omitempty"`
	InAllowlist  bool   `json:"in_allowlist"`
	MatchedEntry string `json:"matched_entry,omitempty"`
}

// BlacklistMembership reports whether a command matches the blacklist.
type BlacklistMembership struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	Command      string `json:"command,omitempty"`
	BaseCommand  string `json:"base_command,omitempty"`
	InBlacklist  bool   `json:"in_blacklist"`
	MatchedEntry string `json:"matched_entry,omitempty"`
}

// HistoryResult reports recent tool calls from the session logs.
type HistoryResult struct {
	Status  string             `json:"status"`
	Message string             `json:"message,omitempty"`
	Entries []history.ToolCall `json:"entries"`
	Count   int                `json:"count"`
}
