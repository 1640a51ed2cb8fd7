package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	ai "github.com/keyurgolani/babynest-ai"
)

func TestConvertMessages(t *testing.T) {
	t.Run("roles map to gemini roles", func(t *testing.T) {
		contents, err := convertMessages([]ai.Message{
			{Role: ai.RoleUser, Content: "hello"},
			{Role: ai.RoleAssistant, Content: "hi"},
			{Role: ai.RoleSystem, Content: "be brief"},
		})
		require.NoError(t, err)
		require.Len(t, contents, 3)
		assert.Equal(t, "user", contents[0].Role)
		assert.Equal(t, "model", contents[1].Role)
		assert.Equal(t, "user", contents[2].Role, "system prompts are folded into user turns")
	})

	t.Run("empty messages are skipped", func(t *testing.T) {
		contents, err := convertMessages([]ai.Message{
			{Role: ai.RoleUser, Content: ""},
			{Role: ai.RoleUser, Content: "hello"},
		})
		require.NoError(t, err)
		assert.Len(t, contents, 1)
	})
}

func TestConvertPartsToGenaiParts(t *testing.T) {
	t.Run("text part", func(t *testing.T) {
		parts, err := convertPartsToGenaiParts([]ai.ContentPart{ai.NewTextPart("hello")})
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, "hello", parts[0].Text)
	})

	t.Run("base64 image becomes inline data", func(t *testing.T) {
		parts, err := convertPartsToGenaiParts([]ai.ContentPart{
			ai.NewImageBase64Part("aGVsbG8=", "image/png"),
		})
		require.NoError(t, err)
		require.Len(t, parts, 1)
		require.NotNil(t, parts[0].InlineData)
		assert.Equal(t, "image/png", parts[0].InlineData.MIMEType)
		assert.Equal(t, []byte("hello"), parts[0].InlineData.Data)
	})

	t.Run("invalid base64 yields image error", func(t *testing.T) {
		_, err := convertPartsToGenaiParts([]ai.ContentPart{
			ai.NewImageBase64Part("not base64!!!", "image/png"),
		})

		var imgErr *ai.ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "decode", imgErr.Op)
	})

	t.Run("gcs uri becomes file data", func(t *testing.T) {
		parts, err := convertPartsToGenaiParts([]ai.ContentPart{
			ai.NewImageURLPart("gs://bucket/photo.png"),
		})
		require.NoError(t, err)
		require.Len(t, parts, 1)
		require.NotNil(t, parts[0].FileData)
		assert.Equal(t, "gs://bucket/photo.png", parts[0].FileData.FileURI)
		assert.Equal(t, "image/png", parts[0].FileData.MIMEType)
	})
}

func TestInferMimeTypeFromURL(t *testing.T) {
	assert.Equal(t, "image/jpeg", inferMimeTypeFromURL("gs://bucket/a.jpg"))
	assert.Equal(t, "image/png", inferMimeTypeFromURL("gs://bucket/a.PNG"))
	assert.Equal(t, "image/webp", inferMimeTypeFromURL("gs://bucket/a.webp"))
	assert.Equal(t, "image/jpeg", inferMimeTypeFromURL("gs://bucket/mystery"))
}

func TestConvertFinishReason(t *testing.T) {
	assert.Equal(t, ai.FinishStop, convertFinishReason("STOP"))
	assert.Equal(t, ai.FinishLength, convertFinishReason("MAX_TOKENS"))
	assert.Equal(t, ai.FinishContentFilter, convertFinishReason("SAFETY"))
	assert.Equal(t, ai.FinishContentFilter, convertFinishReason("PROHIBITED_CONTENT"))
	assert.Equal(t, ai.FinishUnknown, convertFinishReason("OTHER"))
}

func TestWrapError(t *testing.T) {
	t.Run("rate limit becomes transient", func(t *testing.T) {
		err := wrapError(genai.APIError{Code: 429, Message: "quota exceeded"})
		assert.True(t, ai.IsTransient(err))
		assert.Equal(t, 429, ai.StatusCodeOf(err))
	})

	t.Run("auth failure becomes permanent", func(t *testing.T) {
		err := wrapError(genai.APIError{Code: 403, Message: "forbidden"})
		assert.True(t, ai.IsPermanent(err))
	})

	t.Run("non-api error passes through", func(t *testing.T) {
		err := assert.AnError
		assert.Equal(t, err, wrapError(err))
	})
}
