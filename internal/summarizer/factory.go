package summarizer

import "strings"

// Keys holds the configured credentials for the backends. A key supplied
// with the request takes precedence over the configured one, mirroring the
// form-override-then-environment resolution order.
type Keys struct {
	OpenAIAPIKey     string
	OpenRouterAPIKey string
	OllamaBaseURL    string
}

type Factory struct {
	keys Keys
}

func NewFactory(keys Keys) *Factory {
	return &Factory{keys: keys}
}

// New builds a summarizer for the named provider. An empty model selects
// the provider's default; an empty keyOverride falls back to the
// configured key.
func (f *Factory) New(
	providerName string,
	model string,
	keyOverride string,
) (*OpenAISummarizer, error) {
	provider, err := ProviderByName(providerName)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(keyOverride)
	if apiKey == "" {
		switch provider.Name {
		case ProviderOpenAI:
			apiKey = strings.TrimSpace(f.keys.OpenAIAPIKey)
		case ProviderOpenRouter:
			apiKey = strings.TrimSpace(f.keys.OpenRouterAPIKey)
		}
	}

	var baseURL string
	if provider.Name == ProviderOllama {
		baseURL = strings.TrimSpace(f.keys.OllamaBaseURL)
	}

	return NewOpenAISummarizer(Options{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	})
}
