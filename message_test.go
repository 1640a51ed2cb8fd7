package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMessageID(t *testing.T) {
	id1 := GenerateMessageID()
	id2 := GenerateMessageID()

	assert.True(t, strings.HasPrefix(id1, "msg-"))
	assert.NotEqual(t, id1, id2, "IDs should be unique")
}

func TestNewTextPart(t *testing.T) {
	part := NewTextPart("hello")
	assert.Equal(t, ContentPartTypeText, part.Type)
	assert.Equal(t, "hello", part.Text)
	assert.Empty(t, part.ImageURL)
	assert.Empty(t, part.Base64)
}

func TestNewImageURLPart(t *testing.T) {
	part := NewImageURLPart("https://example.com/photo.jpg")
	assert.Equal(t, ContentPartTypeImage, part.Type)
	assert.Equal(t, "https://example.com/photo.jpg", part.ImageURL)
	assert.Empty(t, part.Base64)
}

func TestNewImageBase64Part(t *testing.T) {
	part := NewImageBase64Part("aGVsbG8=", "image/png")
	assert.Equal(t, ContentPartTypeImage, part.Type)
	assert.Equal(t, "aGVsbG8=", part.Base64)
	assert.Equal(t, "image/png", part.MimeType)
	assert.Empty(t, part.ImageURL)
}

func TestMessageHasParts(t *testing.T) {
	tests := []struct {
		name     string
		message  Message
		expected bool
	}{
		{
			name:     "message with only content",
			message:  Message{Role: RoleUser, Content: "hello"},
			expected: false,
		},
		{
			name: "message with parts",
			message: Message{
				Role:  RoleUser,
				Parts: []ContentPart{NewTextPart("hello")},
			},
			expected: true,
		},
		{
			name:     "empty message",
			message:  Message{Role: RoleUser},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.message.HasParts())
		})
	}
}

func TestUsageTotal(t *testing.T) {
	u := Usage{InputTokens: 120, OutputTokens: 45}
	assert.Equal(t, 165, u.Total())
	assert.Zero(t, Usage{}.Total())
}
