package ai

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ContentPartType represents the type of content in a multimodal message part.
type ContentPartType string

const (
	ContentPartTypeText  ContentPartType = "text"
	ContentPartTypeImage ContentPartType = "image"
)

// ContentPart represents a single part of multimodal content.
// Use either Text (for text parts) or ImageURL/Base64 (for image parts).
type ContentPart struct {
	// Type indicates the content type: "text" or "image".
	Type ContentPartType `json:"type"`
	// Text contains the text content. Only used when Type is "text".
	Text string `json:"text,omitempty"`
	// ImageURL contains a URL to an image. Only used when Type is "image".
	// Mutually exclusive with Base64.
	ImageURL string `json:"imageUrl,omitempty"`
	// Base64 contains base64-encoded image data. Only used when Type is "image".
	// Mutually exclusive with ImageURL.
	Base64 string `json:"base64,omitempty"`
	// MimeType specifies the image format (e.g., "image/jpeg", "image/png").
	// Required when using Base64, optional for ImageURL (may be inferred).
	MimeType string `json:"mimeType,omitempty"`
}

// NewTextPart creates a text content part.
func NewTextPart(text string) ContentPart {
	return ContentPart{
		Type: ContentPartTypeText,
		Text: text,
	}
}

// NewImageURLPart creates an image content part from a URL.
func NewImageURLPart(url string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeImage,
		ImageURL: url,
	}
}

// NewImageBase64Part creates an image content part from base64 data.
func NewImageBase64Part(base64Data, mimeType string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeImage,
		Base64:   base64Data,
		MimeType: mimeType,
	}
}

// Message represents a single message in a conversation. Message order is
// significant; a message slice is immutable input to one completion call.
type Message struct {
	// ID is an optional unique identifier for the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// Parts contains multimodal content parts (text, images).
	// If populated, Content is ignored by adapters that support multimodal.
	Parts []ContentPart `json:"parts,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// HasParts returns true if the message has multimodal content parts.
func (m Message) HasParts() bool {
	return len(m.Parts) > 0
}

// FinishReason indicates why a backend stopped generating.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishContentFilter FinishReason = "content_filter"
	FinishUnknown       FinishReason = "unknown"
)

// Response represents a complete response from a completion call.
// Produced once per call; the core does not retain it.
type Response struct {
	Text         string       `json:"text"`
	FinishReason FinishReason `json:"finishReason"`
	Usage        Usage        `json:"usage"`
}

// Usage contains token usage information for a request. Zero values mean
// the backend did not report usage.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// Total returns the combined input and output token count.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
