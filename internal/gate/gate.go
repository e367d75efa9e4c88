// Package gate is the authorization decision engine standing between the
// agent and real process execution. Every command passes through the same
// state machine: blacklist check, allowlist check, unseen-command strategy,
// then a second blacklist check immediately before execution.
package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/flourish-sh/flourish/internal/executor"
	"github.com/flourish-sh/flourish/internal/policy"
)

// Strategy selects how the gate treats a command matching neither list.
type Strategy string

const (
	// StrategyConfirmFirst parks the command behind a confirmation token and
	// waits for an explicit Resolve call. Safe default.
	StrategyConfirmFirst Strategy = "confirm_first"
	// StrategyAutoAllow adds the base command to the allowlist and proceeds.
	// Trades safety for workflow fluidity; the pre-execution blacklist check
	// still applies.
	StrategyAutoAllow Strategy = "auto_allow"
)

// Executor runs an approved command. Satisfied by *executor.ShellExecutor.
type Executor interface {
	Run(ctx context.Context, command, dir string) (*executor.Result, error)
}

// Gate authorizes and executes shell commands against the session policy.
// The authorization decision for a command is made exactly once, before any
// output is released.
type Gate struct {
	policy   *policy.Store
	exec     Executor
	strategy Strategy

	mu       sync.Mutex
	pending  map[string]string // confirmation token -> raw command
	newToken func() string
}

// New creates a Gate. strategy defaults to StrategyConfirmFirst when empty.
func New(store *policy.Store, exec Executor, strategy Strategy) *Gate {
	if strategy == "" {
		strategy = StrategyConfirmFirst
	}
	return &Gate{
		policy:   store,
		exec:     exec,
		strategy: strategy,
		pending:  make(map[string]string),
		newToken: uuid.NewString,
	}
}

// Execute runs the full authorization state machine for command and, when
// approved, executes it in cwd. It never returns a Go error; every outcome
// is a structured Result.
func (g *Gate) Execute(ctx context.Context, command, cwd string) *Result {
	base := policy.BaseCommand(command)
	if base == "" {
		return &Result{Status: StatusError, Message: "Empty command"}
	}

	// Blacklist first. The allowlist can never bypass it.
	if entry, ok := g.policy.MatchBlack(base); ok {
		return blockedResult(base, entry)
	}

	if _, ok := g.policy.MatchAllow(base); ok {
		return g.run(ctx, command, base, cwd, "")
	}

	switch g.strategy {
	case StrategyAutoAllow:
		// The in-memory allow decision stands even when persistence fails;
		// the fault travels as a warning on the execution result.
		var warning string
		if err := g.policy.Add(base, policy.ListAllow); err != nil {
			warning = err.Error()
		}
		return g.run(ctx, command, base, cwd, warning)
	default:
		token := g.newToken()
		g.mu.Lock()
		g.pending[token] = command
		g.mu.Unlock()
		return &Result{
			Status:         StatusPending,
			ConfirmationID: token,
			Command:        command,
			Message: fmt.Sprintf(
				"Command '%s' is not in the allowlist. Waiting for confirmation to execute: %s\n"+
					"Tip: Use 'add_to_allowlist' tool to add '%s' to allowlist and avoid confirmation prompts in the future.",
				base, command, base),
		}
	}
}

// Resolve completes a pending confirmation. Denial yields a cancelled result.
// Approval re-enters the blacklist check before executing: policy may have
// changed while the command was parked.
func (g *Gate) Resolve(ctx context.Context, token string, approved bool, cwd string) *Result {
	g.mu.Lock()
	command, ok := g.pending[token]
	if ok {
		delete(g.pending, token)
	}
	g.mu.Unlock()

	if !ok {
		return &Result{Status: StatusError, Message: fmt.Sprintf("Unknown confirmation token: %s", token)}
	}
	if !approved {
		return &Result{
			Status:  StatusCancelled,
			Command: command,
			Message: fmt.Sprintf("Execution of '%s' was cancelled by user", command),
		}
	}

	base := policy.BaseCommand(command)
	if entry, ok := g.policy.MatchBlack(base); ok {
		return blockedResult(base, entry)
	}
	return g.run(ctx, command, base, cwd, "")
}

// Pending reports whether token refers to a parked command.
func (g *Gate) Pending(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[token]
	return ok
}

// run performs the final blacklist check and hands off to the executor.
// The recheck is unconditional: policy may have been mutated between the
// first pass and now (auto-allow add, concurrent tool call, restored state).
// warning carries a non-fatal fault from the authorization step, such as a
// failed policy persist, into the result message.
func (g *Gate) run(ctx context.Context, command, base, cwd, warning string) *Result {
	if entry, ok := g.policy.MatchBlack(base); ok {
		return blockedResult(base, entry)
	}

	result, err := g.exec.Run(ctx, command, cwd)
	if err != nil {
		return &Result{
			Status:   StatusError,
			Message:  joinMessages(fmt.Sprintf("Error executing command: %v", err), warning),
			Command:  command,
			ExitCode: -1,
		}
	}

	status := StatusSuccess
	if result.ExitCode != 0 {
		status = StatusError
	}
	return &Result{
		Status:   status,
		Message:  warning,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		ExitCode: result.ExitCode,
		Command:  command,
		executed: true,
	}
}

func blockedResult(base, entry string) *Result {
	return &Result{
		Status:       StatusBlocked,
		MatchedEntry: entry,
		Message:      fmt.Sprintf("Command '%s' is blacklisted and cannot be executed (matched '%s')", base, entry),
	}
}

func joinMessages(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "; " + b
}
