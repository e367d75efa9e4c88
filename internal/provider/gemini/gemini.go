// Package gemini implements the Provider interface on top of the official
// Google GenAI SDK.
package gemini

import (
	"context"
	"strings"
	"sync"

	provider "github.com/flourish-sh/flourish/internal/provider/models"
)

// GeminiProvider implements provider.Provider for Google Gemini.
type GeminiProvider struct {
	client GeminiClient

	mu        sync.RWMutex
	modelName string
}

// New creates a GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	return &GeminiProvider{client: client, modelName: modelName}
}

// Generate sends one turn to the Gemini API and returns the response.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	p.mu.RLock()
	model := p.modelName
	p.mu.RUnlock()

	contents := toGeminiContents(req.Prompt, req.History)
	config := toGeminiConfig(req)

	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return fromGeminiResponse(resp)
}

// SetModel changes the active model at runtime.
func (p *GeminiProvider) SetModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return provider.ErrInvalidModel
	}
	p.mu.Lock()
	p.modelName = model
	p.mu.Unlock()
	return nil
}

// GetModel returns the currently active model name.
func (p *GeminiProvider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelName
}
