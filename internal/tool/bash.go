// Package tool is the agent-facing surface over the session: command
// execution through the gate, working-directory control, policy mutation and
// introspection, and tool-history reads. Every call is written to the audit
// log before its result is returned, so the log always leads the model's view
// of the world.
package tool

import (
	"context"

	"github.com/flourish-sh/flourish/internal/gate"
	"github.com/flourish-sh/flourish/internal/history"
	"github.com/flourish-sh/flourish/internal/policy"
	"github.com/flourish-sh/flourish/internal/session"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// BashTools implements the tool surface for one session.
type BashTools struct {
	session *session.Session
	history *history.Service
}

// New creates the tool surface over sess. hist may be nil when no log
// directory exists; read_tool_history then reports an error result.
func New(sess *session.Session, hist *history.Service) *BashTools {
	return &BashTools{session: sess, history: hist}
}

// ExecuteBash runs a command through the gate and records both the tool call
// and, when the command actually ran, its terminal output.
func (t *BashTools) ExecuteBash(ctx context.Context, req ExecuteBashRequest) (*gate.Result, error) {
	cwd := t.session.Cwd()
	result := t.session.Gate().Execute(ctx, req.Command, cwd)

	t.recordExecution(req.Command, cwd, result)
	t.audit(NameExecuteBash, map[string]any{"command": req.Command}, result)
	return result, nil
}

// ResolveConfirmation completes a pending confirmation by token. Approval
// still passes the blacklist check before execution.
func (t *BashTools) ResolveConfirmation(ctx context.Context, req ResolveConfirmationRequest) (*gate.Result, error) {
	cwd := t.session.Cwd()
	result := t.session.Gate().Resolve(ctx, req.ConfirmationID, req.Approved, cwd)

	t.recordExecution(result.Command, cwd, result)
	t.audit(NameResolveConfirmation, map[string]any{
		"confirmation_id": req.ConfirmationID,
		"approved":        req.Approved,
	}, result)
	return result, nil
}

// SetCwd changes the working directory for subsequent commands.
func (t *BashTools) SetCwd(ctx context.Context, req SetCwdRequest) (*StatusResult, error) {
	result := &StatusResult{Status: statusSuccess, Message: "Changed working directory to " + req.Path}
	if err := t.session.SetCwd(req.Path); err != nil {
		result = &StatusResult{Status: statusError, Message: err.Error()}
	}

	t.audit(NameSetCwd, map[string]any{"path": req.Path}, result)
	return result, nil
}

// AddToAllowlist adds the base command of req.Command to the allowlist.
func (t *BashTools) AddToAllowlist(ctx context.Context, req PolicyEntryRequest) (*PolicyMutationResult, error) {
	return t.mutate(NameAddToAllowlist, req.Command, policy.ListAllow, true), nil
}

// RemoveFromAllowlist removes the base command of req.Command from the
// allowlist.
func (t *BashTools) RemoveFromAllowlist(ctx context.Context, req PolicyEntryRequest) (*PolicyMutationResult, error) {
	return t.mutate(NameRemoveFromAllowlist, req.Command, policy.ListAllow, false), nil
}

// AddToBlacklist adds the base command of req.Command to the blacklist.
func (t *BashTools) AddToBlacklist(ctx context.Context, req PolicyEntryRequest) (*PolicyMutationResult, error) {
	return t.mutate(NameAddToBlacklist, req.Command, policy.ListBlack, true), nil
}

// RemoveFromBlacklist removes the base command of req.Command from the
// blacklist.
func (t *BashTools) RemoveFromBlacklist(ctx context.Context, req PolicyEntryRequest) (*PolicyMutationResult, error) {
	return t.mutate(NameRemoveFromBlacklist, req.Command, policy.ListBlack, false), nil
}

// ListAllowlist returns the full allowlist.
func (t *BashTools) ListAllowlist(ctx context.Context, req struct{}) (*PolicyListResult, error) {
	entries := t.session.Policy().Allowlist()
	result := &PolicyListResult{Status: statusSuccess, Allowlist: entries, Count: len(entries)}
	t.audit(NameListAllowlist, nil, result)
	return result, nil
}

// ListBlacklist returns the full blacklist.
func (t *BashTools) ListBlacklist(ctx context.Context, req struct{}) (*PolicyListResult, error) {
	entries := t.session.Policy().Blacklist()
	result := &PolicyListResult{Status: statusSuccess, Blacklist: entries, Count: len(entries)}
	t.audit(NameListBlacklist, nil, result)
	return result, nil
}

// IsInAllowlist checks a command against the allowlist using the same fuzzy
// match the gate applies.
func (t *BashTools) IsInAllowlist(ctx context.Context, req CommandQueryRequest) (*AllowlistMembership, error) {
	base := policy.BaseCommand(req.Command)
	result := &AllowlistMembership{Status: statusError, Message: "Empty command"}
	if base != "" {
		entry, ok := t.session.Policy().MatchAllow(base)
		result = &AllowlistMembership{
			Status:       statusSuccess,
			Command:      req.Command,
			BaseCommand:  base,
			InAllowlist:  ok,
			MatchedEntry: entry,
		}
	}

	t.audit(NameIsInAllowlist, map[string]any{"command": req.Command}, result)
	return result, nil
}

// IsInBlacklist checks a command against the blacklist using the same fuzzy
// match the gate applies.
func (t *BashTools) IsInBlacklist(ctx context.Context, req CommandQueryRequest) (*BlacklistMembership, error) {
	base := policy.BaseCommand(req.Command)
	result := &BlacklistMembership{Status: statusError, Message: "Empty command"}
	if base != "" {
		entry, ok := t.session.Policy().MatchBlack(base)
		result = &BlacklistMembership{
			Status:       statusSuccess,
			Command:      req.Command,
			BaseCommand:  base,
			InBlacklist:  ok,
			MatchedEntry: entry,
		}
	}

	t.audit(NameIsInBlacklist, map[string]any{"command": req.Command}, result)
	return result, nil
}

// ReadToolHistory returns recent tool calls from the latest session log.
func (t *BashTools) ReadToolHistory(ctx context.Context, req ReadToolHistoryRequest) (*HistoryResult, error) {
	result := &HistoryResult{Status: statusError, Message: "Tool history is not available", Entries: []history.ToolCall{}}
	if t.history != nil {
		entries, err := t.history.RecentToolCalls(req.Limit)
		if err != nil {
			result = &HistoryResult{Status: statusError, Message: err.Error(), Entries: []history.ToolCall{}}
		} else {
			if entries == nil {
				entries = []history.ToolCall{}
			}
			result = &HistoryResult{Status: statusSuccess, Entries: entries, Count: len(entries)}
		}
	}

	t.audit(NameReadToolHistory, map[string]any{"limit": req.Limit}, result)
	return result, nil
}

func (t *BashTools) mutate(name, command string, list policy.List, add bool) *PolicyMutationResult {
	result := t.applyMutation(command, list, add)
	t.audit(name, map[string]any{"command": command}, result)
	return result
}

func (t *BashTools) applyMutation(command string, list policy.List, add bool) *PolicyMutationResult {
	base := policy.BaseCommand(command)
	if base == "" {
		return &PolicyMutationResult{Status: statusError, Message: "Empty command"}
	}

	store := t.session.Policy()
	var err error
	if add {
		err = store.Add(base, list)
	} else {
		err = store.Remove(base, list)
	}

	verb, preposition := "Added", "to"
	if !add {
		verb, preposition = "Removed", "from"
	}
	listName := "allowlist"
	if list == policy.ListBlack {
		listName = "blacklist"
	}

	result := &PolicyMutationResult{
		Status:  statusSuccess,
		Message: verb + " '" + base + "' " + preposition + " " + listName,
	}
	if err != nil {
		// The in-memory change stands; only persistence failed.
		result.Message += " (warning: " + err.Error() + ")"
	}
	if list == policy.ListAllow {
		result.Allowlist = store.Allowlist()
	} else {
		result.Blacklist = store.Blacklist()
	}
	return result
}

// recordExecution writes the terminal streams for attempts that reached the
// executor, and a terminal error for launch faults. Blocked, cancelled and
// pending attempts leave no terminal record; nothing ran.
func (t *BashTools) recordExecution(command, cwd string, result *gate.Result) {
	audit := t.session.Audit()
	switch {
	case result.Executed():
		audit.TerminalOutput(result.Command, result.Stdout, result.Stderr, result.ExitCode, cwd)
	case result.Status == gate.StatusError && result.Command != "":
		audit.TerminalError(result.Command, result.Message, cwd)
	}
}

func (t *BashTools) audit(name string, params map[string]any, result any) {
	success := false
	switch r := result.(type) {
	case *gate.Result:
		success = r.Status == gate.StatusSuccess
	case *StatusResult:
		success = r.Status == statusSuccess
	case *PolicyMutationResult:
		success = r.Status == statusSuccess
	case *PolicyListResult:
		success = r.Status == statusSuccess
	case *AllowlistMembership:
		success = r.Status == statusSuccess
	case *BlacklistMembership:
		success = r.Status == statusSuccess
	case *HistoryResult:
		success = r.Status == statusSuccess
	}
	t.session.Audit().ToolCall(name, params, result, success)
}
