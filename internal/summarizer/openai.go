package summarizer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	summaryTemperature      = 0.3
	summaryMaxOutputTokens  = 1000
	localBackendPlaceholder = "ollama-local-key"
)

// Options selects a backend, a model and the credentials for one client.
type Options struct {
	Provider Provider
	// Model overrides the provider's default model when non-empty.
	Model string
	// APIKey is required for remote providers and ignored by local ones.
	APIKey string
	// BaseURL overrides the provider's default endpoint when non-empty.
	BaseURL string
}

// OpenAISummarizer calls an OpenAI-compatible chat completion endpoint to
// produce summaries. The same client serves all supported backends.
type OpenAISummarizer struct {
	client   openai.Client
	provider Provider
	model    string
}

func NewOpenAISummarizer(opts Options) (*OpenAISummarizer, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if opts.Provider.Remote && apiKey == "" {
		return nil, fmt.Errorf("%w (provider = %s)", ErrMissingAPIKey, opts.Provider.Name)
	}
	if apiKey == "" {
		// The client requires a non-empty key even for keyless backends.
		apiKey = localBackendPlaceholder
	}

	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = opts.Provider.BaseURL
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = opts.Provider.DefaultModel
	}

	return &OpenAISummarizer{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		provider: opts.Provider,
		model:    model,
	}, nil
}

// Provider returns the backend this client talks to.
func (s *OpenAISummarizer) Provider() Provider {
	return s.provider
}

// Model returns the model the client is configured with.
func (s *OpenAISummarizer) Model() string {
	return s.model
}

// Summarize sends the cleaned page text to the backend and returns the
// generated summary.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(input)),
		},
		Temperature: openai.Float(summaryTemperature),
		MaxTokens:   openai.Int(summaryMaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.New("output text is missing")
	}

	return summary, nil
}

// ListModels queries the backend's model listing endpoint and returns the
// sorted model IDs.
func (s *OpenAISummarizer) ListModels(ctx context.Context) ([]string, error) {
	var ids []string

	iter := s.client.Models.ListAutoPaging(ctx)
	for iter.Next() {
		model := iter.Current()
		if id := strings.TrimSpace(model.ID); id != "" {
			ids = append(ids, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	sort.Strings(ids)

	return ids, nil
}
