package scraper

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

const feedItemMaxCount = 50

// looksLikeFeed sniffs whether a response is an RSS/Atom document, so feed
// URLs get summarized from their entries instead of raw markup.
func looksLikeFeed(contentType string, body []byte) bool {
	contentType = strings.ToLower(contentType)
	for _, marker := range []string{"application/rss", "application/atom", "application/feed+json", "text/xml", "application/xml"} {
		if strings.Contains(contentType, marker) {
			return true
		}
	}

	head := strings.TrimSpace(string(body[:min(len(body), 512)]))
	if strings.HasPrefix(head, "<?xml") {
		return strings.Contains(head, "<rss") || strings.Contains(head, "<feed") ||
			strings.Contains(head, "<rdf")
	}

	return strings.HasPrefix(head, "<rss") || strings.HasPrefix(head, "<feed")
}

// flattenFeed turns a parsed feed into a title and plain text built from
// its entries.
func flattenFeed(body []byte) (string, string, bool) {
	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil || parsed == nil {
		return "", "", false
	}

	title := strings.TrimSpace(parsed.Title)

	var textBuilder strings.Builder
	if description := strings.TrimSpace(parsed.Description); description != "" {
		textBuilder.WriteString(description)
		textBuilder.WriteString("\n\n")
	}

	for i, item := range parsed.Items {
		if i >= feedItemMaxCount {
			break
		}

		itemTitle := strings.TrimSpace(item.Title)
		if itemTitle != "" {
			textBuilder.WriteString(itemTitle)
			textBuilder.WriteString("\n")
		}

		if itemText := htmlToText(item.Description); itemText != "" {
			textBuilder.WriteString(itemText)
			textBuilder.WriteString("\n")
		}

		if link := strings.TrimSpace(item.Link); link != "" {
			textBuilder.WriteString(link)
			textBuilder.WriteString("\n")
		}

		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", "", false
	}

	return title, text, true
}
