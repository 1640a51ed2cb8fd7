// Command example lists the available AI backends and, when credentials
// are configured, runs a completion against each one under retry.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	ai "github.com/keyurgolani/babynest-ai"
	"github.com/keyurgolani/babynest-ai/gateway"
	"github.com/keyurgolani/babynest-ai/retry"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	fmt.Println("=== Available providers ===")
	for _, meta := range ai.AllMetadata() {
		key := "no key needed"
		if meta.RequiresAPIKey {
			key = "API key required"
		}
		fmt.Printf("%-12s %-16s %s\n", meta.ID, key, meta.Description)
	}

	configs := []ai.ProviderConfig{
		{Provider: ai.ProviderOllama, Model: envOr("OLLAMA_MODEL", "llama3.1"), BaseURL: os.Getenv("OLLAMA_BASE_URL")},
		{Provider: ai.ProviderOpenAI, Model: "gpt-4o-mini", APIKey: os.Getenv("OPENAI_API_KEY")},
		{Provider: ai.ProviderAnthropic, Model: "claude-sonnet-4-5", APIKey: os.Getenv("ANTHROPIC_API_KEY")},
		{Provider: ai.ProviderGemini, Model: "gemini-2.5-flash", APIKey: os.Getenv("GEMINI_API_KEY")},
		{Provider: ai.ProviderOpenRouter, Model: "meta-llama/llama-3.1-8b-instruct", APIKey: os.Getenv("OPENROUTER_API_KEY")},
	}

	messages := []ai.Message{
		{Role: ai.RoleUser, Content: "In one sentence, what is a typical feeding interval for a newborn?"},
	}

	for _, cfg := range configs {
		if v := gateway.CheckConfig(cfg); !v.Valid {
			fmt.Printf("\n=== %s === skipped: %s\n", cfg.Provider, v.Error)
			continue
		}

		p, err := gateway.New(ctx, cfg)
		if err != nil {
			fmt.Printf("\n=== %s === create failed: %v\n", cfg.Provider, err)
			continue
		}

		opts := retry.DefaultOptions()
		opts.OperationName = "example." + cfg.Provider.String()
		resp, err := retry.Do(ctx, opts, func() (*ai.Response, error) {
			return p.Complete(ctx, messages, ai.WithMaxTokens(100))
		})
		if err != nil {
			fmt.Printf("\n=== %s === failed: %v\n", cfg.Provider, err)
			continue
		}
		fmt.Printf("\n=== %s ===\n%s\n(%d tokens, finish: %s)\n",
			cfg.Provider, resp.Text, resp.Usage.Total(), resp.FinishReason)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
