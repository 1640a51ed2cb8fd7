package anthropic

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/keyurgolani/babynest-ai"
)

func TestNew(t *testing.T) {
	client := New("sk-ant-test", "claude-sonnet-4-5")
	require.NotNil(t, client)
	assert.True(t, client.Capabilities().SupportsVision)
}

func TestCompleteRejectsEmptyInput(t *testing.T) {
	client := New("sk-ant-test", "claude-sonnet-4-5")
	_, err := client.Complete(context.Background(), nil)
	assert.ErrorIs(t, err, ai.ErrEmptyInput)
}

func TestConvertMessages(t *testing.T) {
	t.Run("system messages move to the system slot", func(t *testing.T) {
		msgs, system := convertMessages([]ai.Message{
			{Role: ai.RoleSystem, Content: "be brief"},
			{Role: ai.RoleUser, Content: "hello"},
			{Role: ai.RoleAssistant, Content: "hi"},
		})

		require.Len(t, system, 1)
		assert.Equal(t, "be brief", system[0].Text)
		require.Len(t, msgs, 2)
		assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
		assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
	})

	t.Run("empty system message is skipped", func(t *testing.T) {
		_, system := convertMessages([]ai.Message{
			{Role: ai.RoleSystem, Content: ""},
			{Role: ai.RoleUser, Content: "hello"},
		})
		assert.Empty(t, system)
	})

	t.Run("multiple system messages accumulate", func(t *testing.T) {
		_, system := convertMessages([]ai.Message{
			{Role: ai.RoleSystem, Content: "one"},
			{Role: ai.RoleSystem, Content: "two"},
		})
		require.Len(t, system, 2)
	})

	t.Run("unknown role falls back to user", func(t *testing.T) {
		msgs, _ := convertMessages([]ai.Message{{Role: "tool", Content: "output"}})
		require.Len(t, msgs, 1)
		assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	})
}

func TestConvertPartsToBlocks(t *testing.T) {
	t.Run("text and image parts", func(t *testing.T) {
		blocks := convertPartsToBlocks([]ai.ContentPart{
			ai.NewTextPart("what is in this photo"),
			ai.NewImageURLPart("https://example.com/a.png"),
			ai.NewImageBase64Part("aGVsbG8=", "image/png"),
		})
		assert.Len(t, blocks, 3)
	})

	t.Run("empty parts are dropped", func(t *testing.T) {
		blocks := convertPartsToBlocks([]ai.ContentPart{
			{Type: ai.ContentPartTypeText},
			{Type: ai.ContentPartTypeImage},
		})
		assert.Empty(t, blocks)
	})
}

func TestConvertFinishReason(t *testing.T) {
	assert.Equal(t, ai.FinishStop, convertFinishReason("end_turn"))
	assert.Equal(t, ai.FinishStop, convertFinishReason("stop_sequence"))
	assert.Equal(t, ai.FinishLength, convertFinishReason("max_tokens"))
	assert.Equal(t, ai.FinishContentFilter, convertFinishReason("refusal"))
	assert.Equal(t, ai.FinishUnknown, convertFinishReason("tool_use"))
}

func TestCategorizeStatusCode(t *testing.T) {
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(429))
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(529))
	assert.Equal(t, ai.ErrorPermanent, categorizeStatusCode(403))
	assert.Equal(t, ai.ErrorUserInput, categorizeStatusCode(404))
}

func TestParseRetryAfter(t *testing.T) {
	t.Run("seconds form", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{"Retry-After": []string{"15"}}}
		assert.Equal(t, 15*time.Second, parseRetryAfter(resp))
	})

	t.Run("nil response", func(t *testing.T) {
		assert.Zero(t, parseRetryAfter(nil))
	})
}
