package models

import (
	"context"
	"errors"
	"testing"
)

func TestScrapeError_Error(t *testing.T) {
	e := NewScrapeError(ErrCodeNavigation, "navigation to site home failed", errors.New("net::ERR_TIMED_OUT"))
	want := "NAVIGATION_FAILED: navigation to site home failed: net::ERR_TIMED_OUT"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	bare := NewScrapeError(ErrCodeNoLinks, "no download links found for this URL", nil)
	want = "NO_LINKS_FOUND: no download links found for this URL"
	if bare.Error() != want {
		t.Errorf("Error() = %q, want %q", bare.Error(), want)
	}
}

func TestScrapeError_Unwrap(t *testing.T) {
	e := NewScrapeError(ErrCodeTimeout, "deadline hit", context.DeadlineExceeded)
	if !errors.Is(e, context.DeadlineExceeded) {
		t.Error("errors.Is should see the wrapped cause")
	}

	var scrapeErr *ScrapeError
	if !errors.As(error(e), &scrapeErr) {
		t.Error("errors.As should recover the *ScrapeError")
	}
}

func TestScrapeError_ToDetail(t *testing.T) {
	e := NewScrapeError(ErrCodeNoLinks, "no download links found for this URL", nil)
	d := e.ToDetail()
	if d.Code != ErrCodeNoLinks || d.Message != "no download links found for this URL" {
		t.Errorf("ToDetail() = %+v", d)
	}
}
