package ai

import "context"

// Provider identifies an AI backend variant.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported provider variants. The set is closed: every variant listed
// here has a capability record in the registry and a constructor in the
// gateway factory.
const (
	ProviderOllama     Provider = "local-ollama"
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
)

// AllProviders lists every supported variant in declaration order.
// The order is stable and drives AllMetadata.
var AllProviders = []Provider{
	ProviderOllama,
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGemini,
	ProviderOpenRouter,
}

// Known reports whether p is one of the supported variants.
func Known(p Provider) bool {
	_, ok := capabilityTable[p]
	return ok
}

// ProviderConfig selects a backend and carries the credentials needed to
// reach it. It is supplied by the caller, validated once by the gateway
// factory, and never mutated afterwards.
type ProviderConfig struct {
	// Provider selects the backend variant.
	Provider Provider `json:"provider"`
	// Model is the backend-specific model identifier. Required.
	Model string `json:"model"`
	// APIKey authenticates against hosted backends. Required whenever the
	// variant's capabilities declare RequiresAPIKey.
	APIKey string `json:"apiKey,omitempty"`
	// BaseURL overrides the backend's default endpoint. Optional; the
	// local variant defaults to a loopback address when empty.
	BaseURL string `json:"baseUrl,omitempty"`
}

// CompletionProvider is the uniform contract all backend adapters satisfy.
// Implementations hold no per-call state, so a single instance is safe to
// reuse across concurrent calls.
type CompletionProvider interface {
	// Complete sends a conversation and returns the full response.
	Complete(ctx context.Context, messages []Message, opts ...Option) (*Response, error)

	// CompleteVision is Complete for conversations carrying image parts.
	// It fails with a *CapabilityError when the variant does not support
	// vision, without contacting the backend.
	CompleteVision(ctx context.Context, messages []Message, opts ...Option) (*Response, error)

	// Capabilities returns the variant's capability record. Pure, no I/O.
	Capabilities() Capabilities
}
