package models

import "context"

// Provider is the interface an LLM backend implements.
type Provider interface {
	// Generate sends one turn to the model and returns its reply.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// SetModel changes the active model at runtime.
	SetModel(model string) error

	// GetModel returns the currently active model name.
	GetModel() string
}
