package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"
)

// ExtractURL pulls the first http(s) URL out of free-form input, so the
// form accepts both a bare URL and pasted text containing one.
func ExtractURL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoURLFound
	}

	httpURLRe, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return "", fmt.Errorf("create regexp: %w", err)
	}

	found := httpURLRe.FindString(text)
	if found == "" {
		return "", ErrNoURLFound
	}

	return strings.TrimSpace(found), nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}

	u.Fragment = ""

	return u.String(), nil
}
