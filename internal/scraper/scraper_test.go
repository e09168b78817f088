package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func newTestScraper(maxChars int, cacheTTL time.Duration) *Scraper {
	return New(5*time.Second, maxChars, cacheTTL, 16, slog.Default())
}

func TestScrapeReturnsCleanedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := newTestScraper(0, time.Minute)

	content, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Title != "Example Page" {
		t.Fatalf("unexpected title: %q", content.Title)
	}

	if !strings.Contains(content.Text, "First paragraph.") {
		t.Fatalf("unexpected text: %q", content.Text)
	}

	if strings.Contains(content.Text, "tracking") {
		t.Fatalf("expected script content to be removed, got %q", content.Text)
	}

	if content.Truncated {
		t.Fatalf("expected content not to be truncated")
	}
}

func TestScrapeServesCachedURLWithoutRefetch(t *testing.T) {
	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := newTestScraper(0, time.Minute)
	ctx := context.Background()

	first, err := s.Scrape(ctx, srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := s.Scrape(ctx, srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := requests.Load(); got != 1 {
		t.Fatalf("expected exactly one outbound request, got %d", got)
	}

	if first.Text != second.Text {
		t.Fatalf("expected cached content to match original")
	}
}

func TestScrapeRefetchesAfterTTL(t *testing.T) {
	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := newTestScraper(0, time.Millisecond)
	ctx := context.Background()

	if _, err := s.Scrape(ctx, srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := s.Scrape(ctx, srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := requests.Load(); got != 2 {
		t.Fatalf("expected cache entry to expire, got %d requests", got)
	}
}

func TestScrapeNonOKStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	s := newTestScraper(0, time.Minute)

	_, err := s.Scrape(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for non-2xx status")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}

	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status code: %d", statusErr.Code)
	}

	if KindOf(err) != KindNetwork {
		t.Fatalf("expected network error kind, got %v", KindOf(err))
	}
}

func TestScrapeTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := New(10*time.Millisecond, 0, time.Minute, 16, slog.Default())

	_, err := s.Scrape(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected timeout error")
	}

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	if KindOf(err) != KindNetwork {
		t.Fatalf("expected network error kind, got %v", KindOf(err))
	}
}

func TestScrapeEmptyPageIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>only()</script></body></html>`))
	}))
	defer srv.Close()

	s := newTestScraper(0, time.Minute)

	_, err := s.Scrape(context.Background(), srv.URL)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	if KindOf(err) != KindParse {
		t.Fatalf("expected parse error kind, got %v", KindOf(err))
	}
}

func TestScrapeTruncatesToMaxChars(t *testing.T) {
	longText := strings.Repeat("слово word ", 500)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Long</title></head><body><p>" + longText + "</p></body></html>"))
	}))
	defer srv.Close()

	const maxChars = 100
	s := newTestScraper(maxChars, time.Minute)

	content, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := utf8.RuneCountInString(content.Text); got > maxChars {
		t.Fatalf("expected at most %d chars, got %d", maxChars, got)
	}

	if !content.Truncated {
		t.Fatalf("expected content to be marked truncated")
	}

	if !utf8.ValidString(content.Text) {
		t.Fatalf("expected truncation to preserve UTF-8 validity")
	}
}

func TestScrapeRejectsInvalidURL(t *testing.T) {
	s := newTestScraper(0, time.Minute)

	for _, raw := range []string{"", "example.com", "ftp://example.com/file", "http://"} {
		_, err := s.Scrape(context.Background(), raw)
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
		}

		if KindOf(err) != KindBadInput {
			t.Fatalf("expected bad-input error kind for %q", raw)
		}
	}
}

func TestScrapeParsesFeedDocuments(t *testing.T) {
	const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example Feed</title>
<description>News from example.com</description>
<item><title>First post</title><link>https://example.com/1</link><description>&lt;p&gt;Body of the first post.&lt;/p&gt;</description></item>
<item><title>Second post</title><link>https://example.com/2</link></item>
</channel>
</rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	s := newTestScraper(0, time.Minute)

	content, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Title != "Example Feed" {
		t.Fatalf("unexpected title: %q", content.Title)
	}

	for _, wanted := range []string{"First post", "Body of the first post.", "Second post", "https://example.com/1"} {
		if !strings.Contains(content.Text, wanted) {
			t.Fatalf("expected %q in feed text:\n%s", wanted, content.Text)
		}
	}
}
