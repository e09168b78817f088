package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"pagebrief/internal/models"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	responseBodyMaxBytes = 10 << 20
)

type Scraper struct {
	client   *http.Client
	cache    *pageCache
	cacheTTL time.Duration
	maxChars int
	log      *slog.Logger
}

func New(
	timeout time.Duration,
	maxChars int,
	cacheTTL time.Duration,
	cacheMaxEntries int,
	log *slog.Logger,
) *Scraper {
	return &Scraper{
		client:   &http.Client{Timeout: timeout},
		cache:    newPageCache(cacheMaxEntries),
		cacheTTL: cacheTTL,
		maxChars: maxChars,
		log:      log,
	}
}

// Scrape fetches a page, strips it to readable text and memoizes the result
// per URL. A cached URL is served without a new outbound request until the
// entry expires.
func (s *Scraper) Scrape(
	ctx context.Context,
	rawURL string,
) (*models.ScrapedContent, error) {
	pageURL, err := normalizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("normalize URL: %w", err)
	}

	now := time.Now()
	if content, ok := s.cache.get(pageURL, now); ok {
		s.log.DebugContext(ctx, "Page cache hit",
			"url", pageURL,
			"fetchedAt", content.FetchedAt)

		return &content, nil
	}

	body, contentType, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	title, text, err := s.extract(pageURL, contentType, body)
	if err != nil {
		return nil, err
	}

	text, truncated := truncateRunes(text, s.maxChars)

	content := models.ScrapedContent{
		URL:       pageURL,
		Title:     title,
		Text:      text,
		FetchedAt: now,
		Truncated: truncated,
	}

	s.cache.set(pageURL, content, now.Add(s.cacheTTL), now)

	return &content, nil
}

func (s *Scraper) fetch(
	ctx context.Context,
	pageURL string,
) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req) //nolint:gosec // User-supplied URL is the point of the tool.
	if err != nil {
		if isTimeout(err) {
			return nil, "", fmt.Errorf("do request: %w: %w", ErrTimeout, err)
		}

		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", pageURL)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", fmt.Errorf("do request: %w", &StatusError{Code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyMaxBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, "", fmt.Errorf("read body: %w: %w", ErrTimeout, err)
		}

		return nil, "", fmt.Errorf("read body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func (s *Scraper) extract(
	pageURL string,
	contentType string,
	body []byte,
) (string, string, error) {
	var title, text string

	if looksLikeFeed(contentType, body) {
		if feedTitle, feedText, ok := flattenFeed(body); ok {
			title, text = feedTitle, feedText
		}
	}

	if text == "" {
		var err error
		title, text, err = cleanHTML(bytes.NewReader(body))
		if err != nil {
			return "", "", fmt.Errorf("clean HTML (URL = %s): %w", pageURL, err)
		}
	}

	if text == "" {
		return "", "", fmt.Errorf("extract text (URL = %s): %w", pageURL, ErrEmptyDocument)
	}

	if title == "" {
		title = fallbackTitle
	}

	return title, text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncateRunes(text string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		return text, false
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}

	return string(runes[:maxChars]), true
}
