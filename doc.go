// Package ai provides a unified interface to the AI backends used by
// the BabyNest backend.
//
// The package abstracts away provider-specific APIs so feature code can
// be written once and switch between a local Ollama server, OpenAI,
// Anthropic, Google Gemini, and OpenRouter with a configuration change.
//
// # Core Pieces
//
//   - [CompletionProvider]: issue chat and vision completions against one backend
//   - [CapabilitiesOf], [MetadataOf], [AllMetadata]: the capability registry,
//     a read-only description of what each backend variant supports
//   - [ProviderConfig]: caller-supplied backend selection, validated by the
//     gateway factory before any provider is constructed
//
// Use the [github.com/keyurgolani/babynest-ai/gateway] package to turn a
// ProviderConfig into a CompletionProvider, and the
// [github.com/keyurgolani/babynest-ai/retry] package to wrap provider and
// persistence calls with backoff.
//
// # Basic Usage
//
//	p, err := gateway.New(ctx, ai.ProviderConfig{
//	    Provider: ai.ProviderOpenAI,
//	    Model:    "gpt-4o",
//	    APIKey:   os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	messages := []ai.Message{
//	    {Role: ai.RoleUser, Content: "Summarize this week's feeding pattern."},
//	}
//
//	resp, err := p.Complete(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Text)
//
// # Error Handling
//
// Provider failures are categorized as transient or permanent via the
// [CategorizedError] interface; only transient failures are eligible for
// retry. See the retry package for the executor that consumes this seam.
package ai
