package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/keyurgolani/babynest-ai"
)

func convertMessages(messages []ai.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var result []anthropic.MessageParam
	var system []anthropic.TextBlockParam

	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleSystem:
			// Skip empty system messages - the API rejects empty text blocks
			if msg.Content != "" {
				system = append(system, anthropic.TextBlockParam{Text: msg.Content})
			}
		case ai.RoleUser:
			if msg.HasParts() {
				blocks := convertPartsToBlocks(msg.Parts)
				if len(blocks) > 0 {
					result = append(result, anthropic.MessageParam{
						Role:    anthropic.MessageParamRoleUser,
						Content: blocks,
					})
				}
			} else if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case ai.RoleAssistant:
			if msg.Content != "" {
				result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		default:
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}

	return result, system
}

func convertPartsToBlocks(parts []ai.ContentPart) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	for _, part := range parts {
		switch part.Type {
		case ai.ContentPartTypeText:
			if part.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(part.Text))
			}
		case ai.ContentPartTypeImage:
			if part.ImageURL != "" {
				blocks = append(blocks, anthropic.NewImageBlock(anthropic.URLImageSourceParam{
					URL: part.ImageURL,
				}))
			} else if part.Base64 != "" {
				mediaType := part.MimeType
				if mediaType == "" {
					mediaType = "image/jpeg" // Default
				}
				blocks = append(blocks, anthropic.NewImageBlockBase64(mediaType, part.Base64))
			}
		}
	}
	return blocks
}
