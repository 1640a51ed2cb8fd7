package ai

// Capabilities is the fixed per-variant record of what a backend supports.
// One record exists per variant, computed once at process start and never
// mutated, so unsynchronized concurrent reads are safe.
type Capabilities struct {
	SupportsChat      bool `json:"supportsChat"`
	SupportsVision    bool `json:"supportsVision"`
	SupportsStreaming bool `json:"supportsStreaming"`
	MaxContextTokens  int  `json:"maxContextTokens"`
	RequiresAPIKey    bool `json:"requiresApiKey"`
}

// Metadata is the display and configuration surface for one variant,
// derived entirely from the capability registry. Read-only after
// construction; used by clients for listing and form validation hints.
type Metadata struct {
	ID               Provider     `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	RequiresAPIKey   bool         `json:"requiresApiKey"`
	Capabilities     Capabilities `json:"capabilities"`
	DocumentationURL string       `json:"documentationUrl"`
}

var capabilityTable = map[Provider]Capabilities{
	ProviderOllama: {
		SupportsChat:      true,
		SupportsVision:    false,
		SupportsStreaming: true,
		MaxContextTokens:  8192,
		RequiresAPIKey:    false,
	},
	ProviderOpenAI: {
		SupportsChat:      true,
		SupportsVision:    true,
		SupportsStreaming: true,
		MaxContextTokens:  128000,
		RequiresAPIKey:    true,
	},
	ProviderAnthropic: {
		SupportsChat:      true,
		SupportsVision:    true,
		SupportsStreaming: true,
		MaxContextTokens:  200000,
		RequiresAPIKey:    true,
	},
	ProviderGemini: {
		SupportsChat:      true,
		SupportsVision:    true,
		SupportsStreaming: true,
		MaxContextTokens:  1048576,
		RequiresAPIKey:    true,
	},
	ProviderOpenRouter: {
		SupportsChat:      true,
		SupportsVision:    true,
		SupportsStreaming: true,
		MaxContextTokens:  200000,
		RequiresAPIKey:    true,
	},
}

var displayTable = map[Provider]struct {
	name        string
	description string
	docsURL     string
}{
	ProviderOllama: {
		name:        "Local Ollama",
		description: "Self-hosted models running on a local Ollama server. Free and private; no data leaves your network.",
		docsURL:     "https://ollama.com",
	},
	ProviderOpenAI: {
		name:        "OpenAI",
		description: "GPT models hosted by OpenAI.",
		docsURL:     "https://platform.openai.com/docs",
	},
	ProviderAnthropic: {
		name:        "Anthropic",
		description: "Claude models hosted by Anthropic.",
		docsURL:     "https://docs.anthropic.com",
	},
	ProviderGemini: {
		name:        "Google Gemini",
		description: "Gemini models hosted by Google AI.",
		docsURL:     "https://ai.google.dev/gemini-api/docs",
	},
	ProviderOpenRouter: {
		name:        "OpenRouter",
		description: "Unified access to many hosted models through the OpenRouter API.",
		docsURL:     "https://openrouter.ai/docs",
	},
}

// CapabilitiesOf returns the capability record for a variant. Every known
// variant has an entry by construction; unknown variants yield the zero
// record, which supports nothing and satisfies nothing.
func CapabilitiesOf(p Provider) Capabilities {
	return capabilityTable[p]
}

// MetadataOf composes a variant's capabilities with its static display text.
func MetadataOf(p Provider) Metadata {
	display := displayTable[p]
	caps := capabilityTable[p]
	return Metadata{
		ID:               p,
		Name:             display.name,
		Description:      display.description,
		RequiresAPIKey:   caps.RequiresAPIKey,
		Capabilities:     caps,
		DocumentationURL: display.docsURL,
	}
}

// AllMetadata returns metadata for every supported variant in declaration
// order. The slice is freshly allocated on each call.
func AllMetadata() []Metadata {
	out := make([]Metadata, len(AllProviders))
	for i, p := range AllProviders {
		out[i] = MetadataOf(p)
	}
	return out
}
