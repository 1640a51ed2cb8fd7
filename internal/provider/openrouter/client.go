// Package openrouter adapts the OpenRouter API to ai.CompletionProvider.
//
// OpenRouter exposes an OpenAI-compatible chat completions endpoint, so
// this adapter is the openai adapter pointed at the OpenRouter base URL
// and attributed to the openrouter variant.
package openrouter

import (
	ai "github.com/keyurgolani/babynest-ai"
	"github.com/keyurgolani/babynest-ai/internal/provider/openai"
)

// DefaultBaseURL is the OpenRouter API endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// New creates a new OpenRouter client with the given API key and model.
// An empty baseURL falls back to the hosted OpenRouter endpoint.
func New(apiKey, model, baseURL string) *openai.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return openai.New(apiKey, model,
		openai.WithBaseURL(baseURL),
		openai.WithVariant(ai.ProviderOpenRouter),
	)
}
