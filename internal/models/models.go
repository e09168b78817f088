package models

import "time"

// ScrapedContent is the readable part of a fetched page. It lives in the
// page cache until its TTL expires and is consumed by the summarizer.
type ScrapedContent struct {
	URL       string
	Title     string
	Text      string
	FetchedAt time.Time
	Truncated bool
}

// SummaryRecord is a persisted summary shown in the recent-history list.
type SummaryRecord struct {
	ID        int64
	URL       string
	Title     string
	Provider  string
	Model     string
	Summary   string
	CreatedAt time.Time
}
