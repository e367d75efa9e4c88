// Package models defines the provider-neutral types exchanged between the
// agent runtime and an LLM backend.
package models

// Message is a single entry in the conversation history.
type Message struct {
	Role    string // "user", "model" or "function"
	Content string

	// For model messages that requested tool calls
	ToolCalls []ToolCall

	// For function messages carrying tool results
	ToolResults []ToolResult
}

// ToolCall is a structured tool invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolResult is the outcome of one tool execution, sent back to the model.
type ToolResult struct {
	ID      string // matches ToolCall.ID
	Name    string
	Content string
	Error   string // non-empty when the tool itself failed
}

// ToolDefinition declares a tool the model may invoke.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ParameterSchema // nil means no parameters
}

// ParameterSchema maps directly to standard JSON Schema.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}

// GenerateRequest carries one generation turn to the backend.
type GenerateRequest struct {
	// Prompt is the user's input for this turn. Empty when the turn only
	// feeds tool results back.
	Prompt string

	// History is the conversation so far, including tool traffic.
	History []Message

	// Tools the model may call during this turn.
	Tools []ToolDefinition

	// SystemInstruction steers the model for the whole session.
	SystemInstruction string
}

// ResponseType discriminates what the model produced.
type ResponseType string

const (
	ResponseTypeText     ResponseType = "text"
	ResponseTypeToolCall ResponseType = "tool_call"
)

// GenerateResponse is the model's reply to one GenerateRequest.
type GenerateResponse struct {
	Type ResponseType

	// For Type = ResponseTypeText
	Text string

	// For Type = ResponseTypeToolCall
	ToolCalls []ToolCall
}
