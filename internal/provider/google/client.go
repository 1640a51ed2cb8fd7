// Package google adapts the Google Gemini API to ai.CompletionProvider.
package google

import (
	"context"

	ai "github.com/keyurgolani/babynest-ai"
	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK to implement ai.CompletionProvider.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a new Gemini client with the given API key and model.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		model:  model,
	}, nil
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

	contents, err := convertMessages(messages)
	if err != nil {
		return nil, err
	}
	config := &genai.GenerateContentConfig{}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.Temperature != nil {
		temp := float32(*options.Temperature)
		config.Temperature = &temp
	}
	if options.TopP != nil {
		topP := float32(*options.TopP)
		config.TopP = &topP
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, ai.NewUserInputError("request blocked: "+string(resp.PromptFeedback.BlockReason), 0, nil)
	}

	text := ""
	finishReason := ai.FinishUnknown
	if len(resp.Candidates) > 0 {
		if resp.Candidates[0].Content != nil {
			for _, part := range resp.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
		}
		finishReason = convertFinishReason(string(resp.Candidates[0].FinishReason))
	}

	usage := ai.Usage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &ai.Response{
		Text:         text,
		FinishReason: finishReason,
		Usage:        usage,
	}, nil
}

// Capabilities returns the Gemini variant's capability record.
func (c *Client) Capabilities() ai.Capabilities {
	return ai.CapabilitiesOf(ai.ProviderGemini)
}

func convertFinishReason(reason string) ai.FinishReason {
	switch reason {
	case "STOP":
		return ai.FinishStop
	case "MAX_TOKENS":
		return ai.FinishLength
	case "SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST":
		return ai.FinishContentFilter
	default:
		return ai.FinishUnknown
	}
}

var _ ai.CompletionProvider = (*Client)(nil)
