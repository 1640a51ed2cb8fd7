// Package ollama adapts a local Ollama server to ai.CompletionProvider.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	ai "github.com/keyurgolani/babynest-ai"
	"github.com/ollama/ollama/api"
)

// DefaultBaseURL is the loopback endpoint a local Ollama server listens on.
const DefaultBaseURL = "http://localhost:11434"

// Client wraps the Ollama API client to implement ai.CompletionProvider.
type Client struct {
	client *api.Client
	model  string
}

// New creates a client for a local Ollama server. An empty baseURL falls
// back to the loopback default. Ollama requires no API key.
func New(baseURL, model string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL: %w", err)
	}
	return &Client{
		client: api.NewClient(parsed, http.DefaultClient),
		model:  model,
	}, nil
}

// Complete sends a conversation and returns a complete response.
func (c *Client) Complete(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if len(messages) == 0 {
		return nil, ai.ErrEmptyInput
	}
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	stream := false
	req := &api.ChatRequest{
		Model:    model,
		Messages: convertMessages(messages),
		Stream:   &stream,
		Options:  convertOptions(options),
	}

	// With streaming disabled the callback fires once with the final response.
	var last api.ChatResponse
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		last = resp
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return &ai.Response{
		Text:         last.Message.Content,
		FinishReason: convertFinishReason(last.DoneReason),
		Usage: ai.Usage{
			InputTokens:  last.Metrics.PromptEvalCount,
			OutputTokens: last.Metrics.EvalCount,
		},
	}, nil
}

// CompleteVision fails: the local variant is registered without vision
// support, so the backend is never contacted.
func (c *Client) CompleteVision(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return nil, &ai.CapabilityError{Provider: ai.ProviderOllama, Capability: "vision"}
}

// Capabilities returns the local variant's capability record.
func (c *Client) Capabilities() ai.Capabilities {
	return ai.CapabilitiesOf(ai.ProviderOllama)
}

var _ ai.CompletionProvider = (*Client)(nil)
