package gemini

import (
	"fmt"

	"google.golang.org/genai"

	provider "github.com/flourish-sh/flourish/internal/provider/models"
)

// toGeminiContents converts a prompt and history to Gemini Content format.
func toGeminiContents(prompt string, history []provider.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		if content := messageToGeminiContent(msg); content != nil {
			contents = append(contents, content)
		}
	}

	if prompt != "" {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		})
	}

	return contents
}

// messageToGeminiContent converts a single message. Empty messages map to nil.
func messageToGeminiContent(msg provider.Message) *genai.Content {
	role := "user"
	if msg.Role == "assistant" || msg.Role == "model" {
		role = "model"
	}

	parts := make([]*genai.Part, 0)

	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}

	for _, toolCall := range msg.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: toolCall.Name,
				Args: toolCall.Args,
			},
		})
	}

	for _, result := range msg.ToolResults {
		responseContent := result.Content
		if result.Error != "" {
			responseContent = fmt.Sprintf("Error: %s", result.Error)
		}
		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name: result.Name,
				Response: map[string]interface{}{
					"content": responseContent,
				},
			},
		})
	}

	if len(parts) == 0 {
		return nil
	}
	return &genai.Content{Role: role, Parts: parts}
}

// toGeminiConfig builds the generation config for one request.
func toGeminiConfig(req *provider.GenerateRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)},
		}
	}
	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}
	return config
}

// toGeminiTools converts tool definitions to Gemini function declarations.
func toGeminiTools(tools []provider.ToolDefinition) []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))

	for _, tool := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if tool.Parameters != nil {
			fd.Parameters = toGeminiSchema(tool.Parameters)
		}
		declarations = append(declarations, fd)
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// toGeminiSchema converts a ParameterSchema to a Gemini Schema.
func toGeminiSchema(params *provider.ParameterSchema) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeObject}

	if params.Properties != nil {
		schema.Properties = make(map[string]*genai.Schema)
		for name, prop := range params.Properties {
			converted := &genai.Schema{
				Type:        toGeminiType(prop.Type),
				Description: prop.Description,
			}
			if len(prop.Enum) > 0 {
				converted.Enum = prop.Enum
			}
			if prop.Items != nil {
				converted.Items = &genai.Schema{
					Type:        toGeminiType(prop.Items.Type),
					Description: prop.Items.Description,
				}
			}
			schema.Properties[name] = converted
		}
	}

	if len(params.Required) > 0 {
		schema.Required = params.Required
	}
	return schema
}

func toGeminiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts a Gemini response to provider format.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*provider.GenerateResponse, error) {
	if len(resp.Candidates) == 0 {
		return nil, provider.ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, provider.ErrEmptyResponse
	}

	var text string
	var toolCalls []provider.ToolCall
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
		if part.FunctionCall != nil {
			toolCalls = append(toolCalls, provider.ToolCall{
				// Gemini does not assign call IDs; names correlate results.
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}

	if len(toolCalls) > 0 {
		return &provider.GenerateResponse{
			Type:      provider.ResponseTypeToolCall,
			Text:      text,
			ToolCalls: toolCalls,
		}, nil
	}
	return &provider.GenerateResponse{
		Type: provider.ResponseTypeText,
		Text: text,
	}, nil
}

// mapGeminiError maps SDK errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 401, 403:
			return &provider.ProviderError{Provider: "gemini", Message: "authentication failed", Underlying: provider.ErrAuthentication}
		case 429:
			return &provider.ProviderError{Provider: "gemini", Message: "rate limit exceeded", Underlying: provider.ErrRateLimit}
		case 404:
			return &provider.ProviderError{Provider: "gemini", Message: fmt.Sprintf("unknown model: %s", apiErr.Message), Underlying: provider.ErrInvalidModel}
		default:
			return &provider.ProviderError{Provider: "gemini", Message: apiErr.Message, Underlying: err}
		}
	}

	return &provider.ProviderError{Provider: "gemini", Message: "request failed", Underlying: err}
}
