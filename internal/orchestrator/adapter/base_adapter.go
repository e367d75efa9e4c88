package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	provider "github.com/flourish-sh/flourish/internal/provider/models"
)

// Validator is implemented by request types that support validation.
type Validator interface {
	Validate() error
}

// ToolFunc executes a tool with a typed request and response.
type ToolFunc[Req, Resp any] func(context.Context, Req) (Resp, error)

// BaseAdapter bridges one typed tool function to the Tool interface.
// It centralizes argument decoding, validation, execution and response
// marshaling so individual adapters carry only a name, a description and a
// parameter schema.
type BaseAdapter[Req, Resp any] struct {
	name        string
	description string
	definition  provider.ToolDefinition
	fn          ToolFunc[Req, Resp]
}

// NewBaseAdapter creates an adapter for fn.
func NewBaseAdapter[Req, Resp any](
	name string,
	description string,
	paramSchema *provider.ParameterSchema,
	fn ToolFunc[Req, Resp],
) *BaseAdapter[Req, Resp] {
	return &BaseAdapter[Req, Resp]{
		name:        name,
		description: description,
		definition: provider.ToolDefinition{
			Name:        name,
			Description: description,
			Parameters:  paramSchema,
		},
		fn: fn,
	}
}

// Name implements Tool.
func (b *BaseAdapter[Req, Resp]) Name() string { return b.name }

// Description implements Tool.
func (b *BaseAdapter[Req, Resp]) Description() string { return b.description }

// Definition implements Tool.
func (b *BaseAdapter[Req, Resp]) Definition() provider.ToolDefinition { return b.definition }

// Execute implements Tool. The args map is decoded into the typed request,
// validated when the request implements Validator, and the typed response is
// marshaled back to JSON.
func (b *BaseAdapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req Req
	if err := mapstructure.Decode(args, &req); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	resp, err := b.fn(ctx, req)
	if err != nil {
		return "", err
	}

	bytes, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(bytes), nil
}
