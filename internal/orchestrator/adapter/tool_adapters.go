// Package adapter bridges typed tools to the loosely-typed tool-call surface
// the model speaks.
package adapter

import (
	provider "github.com/flourish-sh/flourish/internal/provider/models"
	"github.com/flourish-sh/flourish/internal/tool"
)

func commandSchema(description string) *provider.ParameterSchema {
	return &provider.ParameterSchema{
		Type: "object",
		Properties: map[string]provider.PropertySchema{
			"command": {Type: "string", Description: description},
		},
		Required: []string{"command"},
	}
}

// All returns the full tool surface as provider-facing adapters.
func All(tools *tool.BashTools) []Tool {
	return []Tool{
		NewBaseAdapter(
			tool.NameExecuteBash,
			"Executes a bash command in the current working directory. Commands on the blacklist are refused. Commands not on the allowlist may require user confirmation before running.",
			commandSchema("The bash command to execute"),
			tools.ExecuteBash,
		),
		NewBaseAdapter(
			tool.NameResolveConfirmation,
			"Completes a pending command confirmation. Call this after the user has approved or rejected a command that was waiting for confirmation.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"confirmation_id": {Type: "string", Description: "The confirmation id returned by execute_bash"},
					"approved":        {Type: "boolean", Description: "Whether the user approved the command"},
				},
				Required: []string{"confirmation_id", "approved"},
			},
			tools.ResolveConfirmation,
		),
		NewBaseAdapter(
			tool.NameSetCwd,
			"Changes the working directory for subsequent commands. The path must be an existing directory.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"path": {Type: "string", Description: "Absolute path of the new working directory"},
				},
				Required: []string{"path"},
			},
			tools.SetCwd,
		),
		NewBaseAdapter(
			tool.NameAddToAllowlist,
			"Adds the base command to the allowlist so it runs without confirmation in the future.",
			commandSchema("The command whose base command should be allowlisted"),
			tools.AddToAllowlist,
		),
		NewBaseAdapter(
			tool.NameRemoveFromAllowlist,
			"Removes the base command from the allowlist.",
			commandSchema("The command whose base command should be removed from the allowlist"),
			tools.RemoveFromAllowlist,
		),
		NewBaseAdapter(
			tool.NameAddToBlacklist,
			"Adds the base command to the blacklist so it can never be executed.",
			commandSchema("The command whose base command should be blacklisted"),
			tools.AddToBlacklist,
		),
		NewBaseAdapter(
			tool.NameRemoveFromBlacklist,
			"Removes the base command from the blacklist.",
			commandSchema("The command whose base command should be removed from the blacklist"),
			tools.RemoveFromBlacklist,
		),
		NewBaseAdapter(
			tool.NameListAllowlist,
			"Lists all commands currently on the allowlist.",
			nil,
			tools.ListAllowlist,
		),
		NewBaseAdapter(
			tool.NameListBlacklist,
			"Lists all commands currently on the blacklist.",
			nil,
			tools.ListBlacklist,
		),
		NewBaseAdapter(
			tool.NameIsInAllowlist,
			"Checks whether a command matches the allowlist, using the same fuzzy matching the executor applies.",
			commandSchema("The command to check"),
			tools.IsInAllowlist,
		),
		NewBaseAdapter(
			tool.NameIsInBlacklist,
			"Checks whether a command matches the blacklist, using the same fuzzy matching the executor applies.",
			commandSchema("The command to check"),
			tools.IsInBlacklist,
		),
		NewBaseAdapter(
			tool.NameReadToolHistory,
			"Reads recent tool calls from the current session log.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"limit": {Type: "integer", Description: "Maximum number of entries to return"},
				},
			},
			tools.ReadToolHistory,
		),
	}
}

// Definitions extracts the provider tool definitions from adapters.
func Definitions(adapters []Tool) []provider.ToolDefinition {
	defs := make([]provider.ToolDefinition, 0, len(adapters))
	for _, a := range adapters {
		defs = append(defs, a.Definition())
	}
	return defs
}

// Registry indexes adapters by tool name.
type Registry struct {
	byName map[string]Tool
	order  []Tool
}

// NewRegistry builds a Registry from adapters.
func NewRegistry(adapters []Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool, len(adapters)), order: adapters}
	for _, a := range adapters {
		r.byName[a.Name()] = a
	}
	return r
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Tools returns all adapters in registration order.
func (r *Registry) Tools() []Tool { return r.order }
