// Package gateway is the entry point of the AI inference gateway: it
// validates caller-supplied provider configuration against the capability
// registry and constructs the matching backend adapter.
//
// The factory is stateless. Every call to [New] yields a fresh,
// independent provider instance; callers may cache instances if they
// want, the gateway never does.
package gateway

import (
	"context"
	"fmt"
	"strings"

	ai "github.com/keyurgolani/babynest-ai"
	"github.com/keyurgolani/babynest-ai/internal/provider/anthropic"
	"github.com/keyurgolani/babynest-ai/internal/provider/google"
	"github.com/keyurgolani/babynest-ai/internal/provider/ollama"
	"github.com/keyurgolani/babynest-ai/internal/provider/openai"
	"github.com/keyurgolani/babynest-ai/internal/provider/openrouter"
)

// UnknownProviderError is returned when the config names a variant
// outside the supported set.
type UnknownProviderError struct {
	Provider ai.Provider
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %s", e.Provider)
}

// MissingAPIKeyError is returned when a variant requires an API key and
// the config carries none.
type MissingAPIKeyError struct {
	Provider ai.Provider
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("API key required for %s", ai.MetadataOf(e.Provider).Name)
}

// MissingModelError is returned when the config carries no model identifier.
type MissingModelError struct {
	Provider ai.Provider
}

func (e *MissingModelError) Error() string {
	return "model is required"
}

// Validate checks a provider configuration against the capability
// registry. Rules are applied in order and the first failure wins:
// the variant must be known, a key-requiring variant must have a
// non-empty API key, and the model must be non-empty.
func Validate(cfg ai.ProviderConfig) error {
	if !ai.Known(cfg.Provider) {
		return &UnknownProviderError{Provider: cfg.Provider}
	}
	if ai.CapabilitiesOf(cfg.Provider).RequiresAPIKey && strings.TrimSpace(cfg.APIKey) == "" {
		return &MissingAPIKeyError{Provider: cfg.Provider}
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return &MissingModelError{Provider: cfg.Provider}
	}
	return nil
}

// Validation is the client-facing result of config validation, shaped for
// direct display: Error carries a stable, human-readable reason.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// CheckConfig runs Validate and folds the result into a Validation value.
func CheckConfig(cfg ai.ProviderConfig) Validation {
	if err := Validate(cfg); err != nil {
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}

// builder constructs one variant's adapter from a validated config.
type builder func(ctx context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error)

// builders maps every supported variant to its adapter constructor.
// Coverage over ai.AllProviders is pinned by a test, so adding a variant
// without a constructor fails loudly instead of falling through a silent
// default branch.
var builders = map[ai.Provider]builder{
	ai.ProviderOllama: func(_ context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error) {
		return ollama.New(cfg.BaseURL, cfg.Model)
	},
	ai.ProviderOpenAI: func(_ context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error) {
		var opts []openai.ClientOption
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(cfg.APIKey, cfg.Model, opts...), nil
	},
	ai.ProviderAnthropic: func(_ context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error) {
		var opts []anthropic.ClientOption
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.New(cfg.APIKey, cfg.Model, opts...), nil
	},
	ai.ProviderGemini: func(ctx context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error) {
		return google.New(ctx, cfg.APIKey, cfg.Model)
	},
	ai.ProviderOpenRouter: func(_ context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error) {
		return openrouter.New(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	},
}

// New validates cfg and constructs a fresh adapter for its variant.
// The context is used only during construction (the Gemini SDK needs one);
// it is not retained by the returned provider.
func New(ctx context.Context, cfg ai.ProviderConfig) (ai.CompletionProvider, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	build, ok := builders[cfg.Provider]
	if !ok {
		// Unreachable after Validate; kept so a registry/builders mismatch
		// surfaces as an error instead of a panic.
		return nil, &UnknownProviderError{Provider: cfg.Provider}
	}
	return build(ctx, cfg)
}
