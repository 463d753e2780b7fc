package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/snagbot/snagbot/models"
)

// mediaExtensions mark anchors worth keeping in the generic pass even
// when their path carries no recognised prefix.
var mediaExtensions = []string{".mp4", ".webm", ".mkv", ".m3u8"}

// anchor is one candidate link collected from the page.
type anchor struct {
	url  *url.URL
	text string
}

// pass is one link-selection rule. Passes run in a fixed order and
// share a single URL-keyed dedup set, so the earliest matching pass
// decides a link's default label.
type pass struct {
	label string
	match func(a anchor) bool
}

var passes = []pass{
	{
		// Watch-path links, the site's primary result anchors.
		label: "Watch",
		match: func(a anchor) bool {
			return strings.HasPrefix(a.url.Path, "/w/")
		},
	},
	{
		// Anchors advertising the original file.
		label: "Original",
		match: func(a anchor) bool {
			return strings.Contains(strings.ToLower(a.text), "original")
		},
	},
	{
		// Redirect-path links, usually mirrors.
		label: "Download",
		match: func(a anchor) bool {
			return strings.HasPrefix(a.url.Path, "/r/")
		},
	},
	{
		// Anything else that looks like a media file or a direct
		// download path.
		label: "Media",
		match: func(a anchor) bool {
			p := strings.ToLower(a.url.Path)
			for _, ext := range mediaExtensions {
				if strings.HasSuffix(p, ext) {
					return true
				}
			}
			return strings.Contains(p, "/dl/")
		},
	},
}

// Links scrapes download options from rendered HTML.
//
// Relative hrefs are resolved against baseURL, non-http(s) schemes are
// skipped, and results are deduplicated by absolute URL across all
// passes. The label is the anchor text when present, otherwise the
// matching pass's default.
func Links(rawHTML string, baseURL string) []models.DownloadOption {
	options := []models.DownloadOption{}

	base, err := url.Parse(baseURL)
	if err != nil {
		return options
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return options
	}

	var anchors []anchor
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		// Skip fragments, javascript:, mailto: etc.
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		anchors = append(anchors, anchor{
			url:  resolved,
			text: strings.TrimSpace(s.Text()),
		})
	})

	seen := make(map[string]struct{})
	for _, p := range passes {
		for _, a := range anchors {
			if !p.match(a) {
				continue
			}
			absURL := a.url.String()
			if _, ok := seen[absURL]; ok {
				continue
			}
			seen[absURL] = struct{}{}

			label := a.text
			if label == "" {
				label = p.label
			}
			options = append(options, models.DownloadOption{
				URL:   absURL,
				Label: label,
			})
		}
	}

	return options
}
