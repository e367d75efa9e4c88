package adapter

import (
	"context"

	provider "github.com/flourish-sh/flourish/internal/provider/models"
)

// Tool represents a capability the agent can use.
// Each tool must be safe for concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description
	Description() string

	// Definition returns the structured tool definition for the provider
	Definition() provider.ToolDefinition

	// Execute runs the tool with the given arguments.
	// Args is a map of argument names to values, as provided by the model.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
