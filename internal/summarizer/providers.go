package summarizer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingAPIKey   = errors.New("API key is missing")
)

// Provider is one of the interchangeable completion backends. All of them
// speak the OpenAI API, so a backend is fully described by its base URL,
// default model and whether it needs a real key.
type Provider struct {
	Name         string
	Label        string
	BaseURL      string
	DefaultModel string
	Remote       bool
}

var providers = []Provider{
	{
		Name:         ProviderOpenAI,
		Label:        "OpenAI",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
		Remote:       true,
	},
	{
		Name:         ProviderOpenRouter,
		Label:        "OpenRouter",
		BaseURL:      "https://openrouter.ai/api/v1",
		DefaultModel: "nousresearch/nous-hermes-2-mixtral-8x7b-dpo",
		Remote:       true,
	},
	{
		Name:         ProviderOllama,
		Label:        "Ollama (Local)",
		BaseURL:      "http://localhost:11434/v1",
		DefaultModel: "llama2",
		Remote:       false,
	},
}

// Providers returns the supported backends in presentation order.
func Providers() []Provider {
	result := make([]Provider, len(providers))
	copy(result, providers)

	return result
}

func ProviderByName(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, p := range providers {
		if p.Name == name {
			return p, nil
		}
	}

	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}
