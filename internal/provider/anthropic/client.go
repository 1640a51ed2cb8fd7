// Package anthropic adapts the Anthropic Messages API to
// ai.CompletionProvider.
package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	ai "github.com/keyurgolani/babynest-ai"
)

// defaultMaxTokens applies when the caller does not set MaxTokens;
// the Anthropic API requires the field.
const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK to implement ai.CompletionProvider.
type Client struct {
	client  *anthropic.Client
	model   string
	baseURL string
}

// New creates a new Anthropic client with the given API key and model.
func New(apiKey, model string, opts ...ClientOption) *Client {
	c := &Client{model: model}
	for _, opt := range opts {
		opt(c)
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if c.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(c.baseURL))
	}
	client := anthropic.NewClient(requestOpts...)
	c.client = &client
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// Complete sends a conversation and returns a complete response.
func (c *Client) Complete(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return c.complete(ctx, messages, opts)
}

// CompleteVision sends a conversation carrying image parts.
func (c *Client) CompleteVision(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
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

	maxTokens := int64(defaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	msgs, system := convertMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if options.Temperature != nil {
		params.Temperature = anthropic.Float(*options.Temperature)
	}
	if options.TopP != nil {
		params.TopP = anthropic.Float(*options.TopP)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	text := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &ai.Response{
		Text:         text,
		FinishReason: convertFinishReason(string(resp.StopReason)),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

// Capabilities returns the Anthropic variant's capability record.
func (c *Client) Capabilities() ai.Capabilities {
	return ai.CapabilitiesOf(ai.ProviderAnthropic)
}

func convertFinishReason(reason string) ai.FinishReason {
	switch reason {
	case "end_turn", "stop_sequence":
		return ai.FinishStop
	case "max_tokens":
		return ai.FinishLength
	case "refusal":
		return ai.FinishContentFilter
	default:
		return ai.FinishUnknown
	}
}

var _ ai.CompletionProvider = (*Client)(nil)
