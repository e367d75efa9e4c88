package ui

import "context"

// UserInterface defines the contract for all user interactions.
//
// All blocking methods accept a context for cancellation. If the user
// cancels (Ctrl+C), implementations return immediately with the context's
// error.
type UserInterface interface {
	// ReadInput prompts the user for general text input
	ReadInput(ctx context.Context, prompt string) (string, error)

	// Confirm prompts the user for a yes/no decision
	Confirm(ctx context.Context, prompt string) (bool, error)

	// WriteStatus displays ephemeral status updates (e.g. "Thinking...")
	WriteStatus(phase string, message string)

	// WriteMessage displays the agent's actual text responses
	WriteMessage(content string)
}
