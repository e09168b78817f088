package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const fallbackTitle = "No title found"

// noiseSelector matches nodes that never carry readable page content.
const noiseSelector = "script, style, noscript, iframe, svg, img, input, form, nav, footer, header, aside"

// cleanHTML strips non-content nodes from a page and returns its title and
// the remaining text, one text node per line with blank lines dropped.
func cleanHTML(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
			title = strings.TrimSpace(content)
		}
	}
	if title == "" {
		title = fallbackTitle
	}

	doc.Find(noiseSelector).Remove()

	var textBuilder strings.Builder
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			appendTextLines(node, &textBuilder)
		}
	})

	return title, strings.TrimSpace(textBuilder.String()), nil
}

// htmlToText flattens an HTML fragment (for example a feed item
// description) into plain text lines.
func htmlToText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var textBuilder strings.Builder
	for _, node := range doc.Selection.Nodes {
		appendTextLines(node, &textBuilder)
	}

	return strings.TrimSpace(textBuilder.String())
}

func appendTextLines(node *html.Node, b *strings.Builder) {
	if node.Type == html.TextNode {
		line := strings.TrimSpace(node.Data)
		if line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		appendTextLines(child, b)
	}
}
