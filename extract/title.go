// Package extract pulls the video title and download links out of the
// rendered results page. It operates on plain HTML strings so the
// selector logic stays testable without a browser.
package extract

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// SiteName is the site's display name, stripped from document titles.
const SiteName = "GrabnWatch"

// placeholderTitle is returned when no selector and no document title
// yields anything usable.
const placeholderTitle = "Untitled Video"

// titleSelectors is the probe order for the result title. The site has
// shipped several layouts; the first selector with non-empty text wins.
var titleSelectors = []string{
	".video-title",
	"h1.title",
	".result-card h2",
	".media-info .name",
}

// Title extracts the video title from rendered HTML.
//
// It probes titleSelectors in order, then falls back to the document
// <title> with the site name and separator stripped, then to a
// constant placeholder.
func Title(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return placeholderTitle
	}

	for _, selector := range titleSelectors {
		sel, err := cascadia.Parse(selector)
		if err != nil {
			continue
		}
		if node := cascadia.Query(doc, sel); node != nil {
			if text := strings.TrimSpace(nodeText(node)); text != "" {
				return text
			}
		}
	}

	if docTitle := documentTitle(doc); docTitle != "" {
		if stripped := StripSiteName(docTitle); stripped != "" {
			return stripped
		}
	}

	return placeholderTitle
}

// StripSiteName removes the site's own name and its separator from a
// document title, e.g. "GrabnWatch - My Video" becomes "My Video".
func StripSiteName(title string) string {
	title = strings.TrimSpace(title)
	for _, sep := range []string{" - ", " | ", " – ", ": "} {
		if after, ok := strings.CutPrefix(title, SiteName+sep); ok {
			return strings.TrimSpace(after)
		}
		if before, ok := strings.CutSuffix(title, sep+SiteName); ok {
			return strings.TrimSpace(before)
		}
	}
	if title == SiteName {
		return ""
	}
	return title
}

// documentTitle returns the text of the first <title> element.
func documentTitle(doc *html.Node) string {
	sel, err := cascadia.Parse("title")
	if err != nil {
		return ""
	}
	if node := cascadia.Query(doc, sel); node != nil {
		return strings.TrimSpace(nodeText(node))
	}
	return ""
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
