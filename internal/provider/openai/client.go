// Package openai adapts the OpenAI chat completions API to
// ai.CompletionProvider. The OpenRouter adapter reuses this package with
// a different base URL, since OpenRouter speaks the same wire protocol.
package openai

import (
	"context"

	ai "github.com/keyurgolani/babynest-ai"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client wraps the OpenAI SDK to implement ai.CompletionProvider.
type Client struct {
	client  *openai.Client
	model   string
	variant ai.Provider
	baseURL string
}

// New creates a new OpenAI client with the given API key and model.
func New(apiKey, model string, opts ...ClientOption) *Client {
	c := &Client{
		model:   model,
		variant: ai.ProviderOpenAI,
	}
	for _, opt := range opts {
		opt(c)
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if c.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(requestOpts...)
	c.client = &client
	return c
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, for OpenAI-compatible backends.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithVariant attributes capabilities and capability errors to a different
// OpenAI-compatible variant. Used by the OpenRouter adapter.
func WithVariant(v ai.Provider) ClientOption {
	return func(c *Client) {
		c.variant = v
	}
}

// Complete sends a conversation and returns a complete response.
func (c *Client) Complete(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return c.complete(ctx, messages, opts)
}

// CompleteVision sends a conversation carrying image parts.
func (c *Client) CompleteVision(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if !c.Capabilities().SupportsVision {
		return nil, &ai.CapabilityError{Provider: c.variant, Capability: "vision"}
	}
	return c.complete(ctx, messages, opts)
}

func (c *Client) complete(ctx context.Context, messages []ai.Message, opts []ai.Option) (*ai.Response, error) {
	if len(messages) == 0 {
		return nil, ai.ErrEmptyInput
	}
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	convertedMessages, err := convertMessages(messages)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertedMessages,
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if options.TopP != nil {
		params.TopP = openai.Float(*options.TopP)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewPermanentError("backend returned no choices", 0, nil)
	}

	choice := resp.Choices[0]
	return &ai.Response{
		Text:         choice.Message.Content,
		FinishReason: convertFinishReason(string(choice.FinishReason)),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

// Capabilities returns the capability record for the configured variant.
func (c *Client) Capabilities() ai.Capabilities {
	return ai.CapabilitiesOf(c.variant)
}

func convertFinishReason(reason string) ai.FinishReason {
	switch reason {
	case "stop":
		return ai.FinishStop
	case "length":
		return ai.FinishLength
	case "content_filter":
		return ai.FinishContentFilter
	default:
		return ai.FinishUnknown
	}
}

var _ ai.CompletionProvider = (*Client)(nil)
