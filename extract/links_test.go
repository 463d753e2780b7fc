package extract

import (
	"strings"
	"testing"
)

const base = "https://grabnwatch.com"

func TestLinks_DedupByURL(t *testing.T) {
	html := `<html><body>
		<a href="/w/abc123">720p</a>
		<a href="/w/abc123">720p (mirror)</a>
	</body></html>`

	options := Links(html, base)
	if len(options) != 1 {
		t.Fatalf("expected 1 option after dedup, got %d: %v", len(options), options)
	}
	if !strings.HasSuffix(options[0].URL, "/w/abc123") {
		t.Errorf("URL = %q, want suffix /w/abc123", options[0].URL)
	}
	if options[0].Label != "720p" {
		t.Errorf("Label = %q, want %q (first anchor's text wins)", options[0].Label, "720p")
	}
}

func TestLinks_RelativeHrefRewrittenToAbsolute(t *testing.T) {
	html := `<a href="/r/xyz">1080p</a>`

	options := Links(html, base)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].URL != "https://grabnwatch.com/r/xyz" {
		t.Errorf("URL = %q, want %q", options[0].URL, "https://grabnwatch.com/r/xyz")
	}
}

func TestLinks_EmptyPage(t *testing.T) {
	options := Links(`<html><body><p>nothing here</p></body></html>`, base)
	if options == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(options) != 0 {
		t.Errorf("expected no options, got %v", options)
	}
}

func TestLinks_DefaultLabelsPerPass(t *testing.T) {
	html := `<html><body>
		<a href="/w/aaa"></a>
		<a href="/r/bbb"></a>
		<a href="https://cdn.example.com/video.mp4"></a>
	</body></html>`

	options := Links(html, base)
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d: %v", len(options), options)
	}

	want := map[string]string{
		"https://grabnwatch.com/w/aaa":      "Watch",
		"https://grabnwatch.com/r/bbb":      "Download",
		"https://cdn.example.com/video.mp4": "Media",
	}
	for _, opt := range options {
		if want[opt.URL] != opt.Label {
			t.Errorf("label for %s = %q, want %q", opt.URL, opt.Label, want[opt.URL])
		}
	}
}

func TestLinks_OriginalTextPass(t *testing.T) {
	html := `<a href="https://files.example.com/v/raw.bin">Download Original</a>`

	options := Links(html, base)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].Label != "Download Original" {
		t.Errorf("Label = %q, want anchor text preserved", options[0].Label)
	}
}

func TestLinks_PassOrder(t *testing.T) {
	// The /r/ link appears first in the document but the /w/ pass runs
	// first, so the watch link must come out ahead.
	html := `<html><body>
		<a href="/r/second">480p</a>
		<a href="/w/first">720p</a>
	</body></html>`

	options := Links(html, base)
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if !strings.Contains(options[0].URL, "/w/first") {
		t.Errorf("options[0] = %v, want the /w/ link first", options[0])
	}
	if !strings.Contains(options[1].URL, "/r/second") {
		t.Errorf("options[1] = %v, want the /r/ link second", options[1])
	}
}

func TestLinks_CrossPassDedup(t *testing.T) {
	// One URL matching several passes is reported once, labelled by the
	// earliest pass.
	html := `<a href="/w/abc.mp4">Original 720p</a>`

	options := Links(html, base)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d: %v", len(options), options)
	}
	if options[0].Label != "Original 720p" {
		t.Errorf("Label = %q, want anchor text", options[0].Label)
	}
}

func TestLinks_SkipsNonHTTPSchemes(t *testing.T) {
	html := `<html><body>
		<a href="javascript:void(0)">Original</a>
		<a href="mailto:abuse@grabnwatch.com">original contact</a>
		<a href="/w/real">720p</a>
	</body></html>`

	options := Links(html, base)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d: %v", len(options), options)
	}
	if !strings.HasSuffix(options[0].URL, "/w/real") {
		t.Errorf("URL = %q, want the /w/real link only", options[0].URL)
	}
}

func TestLinks_MediaPathVariants(t *testing.T) {
	tests := []struct {
		name string
		href string
		keep bool
	}{
		{"mp4", "https://cdn.example.com/clip.mp4", true},
		{"m3u8", "https://cdn.example.com/stream.m3u8", true},
		{"webm uppercase path", "https://cdn.example.com/CLIP.WEBM", true},
		{"dl path", "https://grabnwatch.com/dl/12345", true},
		{"plain page", "https://cdn.example.com/about", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := Links(`<a href="`+tt.href+`">x</a>`, base)
			if got := len(options) == 1; got != tt.keep {
				t.Errorf("Links(%q) kept=%v, want %v", tt.href, got, tt.keep)
			}
		})
	}
}

func TestLinks_BadBaseURL(t *testing.T) {
	options := Links(`<a href="/w/abc">720p</a>`, "://not-a-url")
	if len(options) != 0 {
		t.Errorf("expected no options with unparseable base, got %v", options)
	}
}
