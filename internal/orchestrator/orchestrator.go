// Package orchestrator runs the agent loop: prompt the model, execute the
// tool calls it requests, feed results back, repeat. Commands parked behind a
// confirmation are resolved through the user interface before the loop
// continues.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flourish-sh/flourish/internal/auditlog"
	"github.com/flourish-sh/flourish/internal/gate"
	"github.com/flourish-sh/flourish/internal/orchestrator/adapter"
	provider "github.com/flourish-sh/flourish/internal/provider/models"
	"github.com/flourish-sh/flourish/internal/tool"
	"github.com/flourish-sh/flourish/internal/ui"
)

// DefaultMaxIterations bounds tool-call rounds within one user turn.
const DefaultMaxIterations = 20

// Options configures an Orchestrator.
type Options struct {
	// MaxIterations bounds tool-call rounds per user turn. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	// SystemInstruction steers the model for the whole session.
	SystemInstruction string
}

// Orchestrator manages the agent loop, tool execution and conversation
// history.
type Orchestrator struct {
	provider provider.Provider
	registry *adapter.Registry
	ui       ui.UserInterface
	audit    *auditlog.Logger

	maxIterations     int
	systemInstruction string
	history           []provider.Message
}

// New creates an Orchestrator.
func New(p provider.Provider, registry *adapter.Registry, userInterface ui.UserInterface, audit *auditlog.Logger, opts Options) *Orchestrator {
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Orchestrator{
		provider:          p,
		registry:          registry,
		ui:                userInterface,
		audit:             audit,
		maxIterations:     maxIterations,
		systemInstruction: opts.SystemInstruction,
	}
}

// History returns the conversation so far.
func (o *Orchestrator) History() []provider.Message {
	out := make([]provider.Message, len(o.history))
	copy(out, o.history)
	return out
}

// Ask runs one user turn to completion and returns the model's final text.
// Tool calls issued along the way are executed; pending confirmations are
// resolved through the user interface.
func (o *Orchestrator) Ask(ctx context.Context, prompt string) (string, error) {
	o.history = append(o.history, provider.Message{Role: "user", Content: prompt})
	o.audit.Conversation("user", prompt, nil)

	for range o.maxIterations {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		o.ui.WriteStatus("thinking", "Generating response...")
		resp, err := o.provider.Generate(ctx, &provider.GenerateRequest{
			History:           o.history,
			Tools:             adapter.Definitions(o.registry.Tools()),
			SystemInstruction: o.systemInstruction,
		})
		if err != nil {
			return "", fmt.Errorf("provider error: %w", err)
		}

		switch resp.Type {
		case provider.ResponseTypeToolCall:
			o.history = append(o.history, provider.Message{
				Role:      "model",
				Content:   resp.Text,
				ToolCalls: resp.ToolCalls,
			})

			results := make([]provider.ToolResult, 0, len(resp.ToolCalls))
			for _, call := range resp.ToolCalls {
				results = append(results, o.executeToolCall(ctx, call))
			}
			o.history = append(o.history, provider.Message{
				Role:        "function",
				ToolResults: results,
			})

		case provider.ResponseTypeText:
			o.history = append(o.history, provider.Message{Role: "model", Content: resp.Text})
			o.audit.Conversation("model", resp.Text, nil)
			return resp.Text, nil

		default:
			return "", fmt.Errorf("unknown response type %q", resp.Type)
		}
	}

	return "", fmt.Errorf("max iterations (%d) reached without a final response", o.maxIterations)
}

// Run drives an interactive conversation until the user quits or the
// context is cancelled.
func (o *Orchestrator) Run(ctx context.Context, goal string) error {
	prompt := goal
	for {
		answer, err := o.Ask(ctx, prompt)
		if err != nil {
			return err
		}
		o.ui.WriteMessage(answer)

		input, err := o.ui.ReadInput(ctx, "You: ")
		if err != nil {
			return err
		}
		switch input {
		case "exit", "quit", "":
			return nil
		}
		prompt = input
	}
}

// executeToolCall executes a single tool call and returns the result.
func (o *Orchestrator) executeToolCall(ctx context.Context, call provider.ToolCall) provider.ToolResult {
	adapted, ok := o.registry.Lookup(call.Name)
	if !ok {
		return provider.ToolResult{
			ID:    call.ID,
			Name:  call.Name,
			Error: fmt.Sprintf("unknown tool '%s'", call.Name),
		}
	}

	o.ui.WriteStatus("tool", describeCall(call))
	content, err := adapted.Execute(ctx, call.Args)
	if err != nil {
		return provider.ToolResult{ID: call.ID, Name: call.Name, Error: err.Error()}
	}

	if resolved, handled := o.resolvePending(ctx, content); handled {
		content = resolved
	}

	return provider.ToolResult{ID: call.ID, Name: call.Name, Content: content}
}

// resolvePending checks a tool result for a parked command and, when found,
// asks the user and completes the confirmation. The resolved result replaces
// the pending one so the model only ever sees the final outcome.
func (o *Orchestrator) resolvePending(ctx context.Context, content string) (string, bool) {
	var probe struct {
		Status         string `json:"status"`
		Command        string `json:"cmd"`
		ConfirmationID string `json:"confirmation_id"`
	}
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return "", false
	}
	if probe.Status != string(gate.StatusPending) || probe.ConfirmationID == "" {
		return "", false
	}

	approved, err := o.ui.Confirm(ctx, fmt.Sprintf("Execute '%s'?", probe.Command))
	if err != nil {
		approved = false
	}

	resolver, ok := o.registry.Lookup(tool.NameResolveConfirmation)
	if !ok {
		return "", false
	}
	resolved, err := resolver.Execute(ctx, map[string]any{
		"confirmation_id": probe.ConfirmationID,
		"approved":        approved,
	})
	if err != nil {
		return fmt.Sprintf(`{"status":"error","message":%q}`, err.Error()), true
	}
	return resolved, true
}

func describeCall(call provider.ToolCall) string {
	if cmd, ok := call.Args["command"].(string); ok && cmd != "" {
		return fmt.Sprintf("%s '%s'", call.Name, cmd)
	}
	if path, ok := call.Args["path"].(string); ok && path != "" {
		return fmt.Sprintf("%s %s", call.Name, path)
	}
	return call.Name
}
