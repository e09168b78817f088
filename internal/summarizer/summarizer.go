package summarizer

import (
	"context"
)

// Input describes the payload for a summary request.
type Input struct {
	// URL is the page the text was extracted from.
	URL string
	// Title is the extracted page title.
	Title string
	// Text contains the cleaned plain text to summarise.
	Text string
}

// Summarizer produces a single summary for a given input.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

// ModelLister exposes the models available at the selected backend.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}
