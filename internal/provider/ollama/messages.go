package ollama

import (
	ai "github.com/keyurgolani/babynest-ai"
	"github.com/ollama/ollama/api"
)

func convertMessages(messages []ai.Message) []api.Message {
	result := make([]api.Message, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if msg.HasParts() {
			// Text parts only; image parts are rejected upstream by the
			// capability check in CompleteVision.
			content = ""
			for _, part := range msg.Parts {
				if part.Type == ai.ContentPartTypeText {
					content += part.Text
				}
			}
		}
		if content == "" {
			continue
		}
		result = append(result, api.Message{
			Role:    string(msg.Role),
			Content: content,
		})
	}
	return result
}

func convertOptions(options *ai.Options) map[string]any {
	out := map[string]any{}
	if options.Temperature != nil {
		out["temperature"] = *options.Temperature
	}
	if options.TopP != nil {
		out["top_p"] = *options.TopP
	}
	if options.MaxTokens > 0 {
		out["num_predict"] = options.MaxTokens
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func convertFinishReason(reason string) ai.FinishReason {
	switch reason {
	case "stop":
		return ai.FinishStop
	case "length":
		return ai.FinishLength
	case "":
		return ai.FinishUnknown
	default:
		return ai.FinishUnknown
	}
}
