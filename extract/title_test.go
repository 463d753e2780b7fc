package extract

import "testing"

func TestTitle_SelectorProbe(t *testing.T) {
	html := `<html><head><title>GrabnWatch - ignored</title></head><body>
		<div class="video-title">  Actual Video Name  </div>
	</body></html>`

	if got := Title(html); got != "Actual Video Name" {
		t.Errorf("Title = %q, want %q", got, "Actual Video Name")
	}
}

func TestTitle_SelectorOrder(t *testing.T) {
	// An earlier selector with empty text is skipped in favour of a
	// later one that has content.
	html := `<html><body>
		<div class="video-title">   </div>
		<h1 class="title">From H1</h1>
	</body></html>`

	if got := Title(html); got != "From H1" {
		t.Errorf("Title = %q, want %q", got, "From H1")
	}
}

func TestTitle_DocumentTitleFallback(t *testing.T) {
	html := `<html><head><title>GrabnWatch - My Video</title></head><body></body></html>`

	if got := Title(html); got != "My Video" {
		t.Errorf("Title = %q, want %q", got, "My Video")
	}
}

func TestTitle_Placeholder(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"empty page", `<html><body></body></html>`},
		{"site name only", `<html><head><title>GrabnWatch</title></head></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.html); got != placeholderTitle {
				t.Errorf("Title = %q, want %q", got, placeholderTitle)
			}
		})
	}
}

func TestStripSiteName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"dash prefix", "GrabnWatch - My Video", "My Video"},
		{"dash suffix", "My Video - GrabnWatch", "My Video"},
		{"pipe prefix", "GrabnWatch | My Video", "My Video"},
		{"pipe suffix", "My Video | GrabnWatch", "My Video"},
		{"colon prefix", "GrabnWatch: My Video", "My Video"},
		{"no site name", "Just a Video", "Just a Video"},
		{"site name alone", "GrabnWatch", ""},
		{"surrounding space", "  GrabnWatch - My Video  ", "My Video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripSiteName(tt.title); got != tt.want {
				t.Errorf("StripSiteName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
