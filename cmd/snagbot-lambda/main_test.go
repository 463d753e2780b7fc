package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/snagbot/snagbot/models"
)

func TestRespondScrapeError_UnwrapsWrappedErrors(t *testing.T) {
	inner := models.NewScrapeError(models.ErrCodeNoLinks, "no download links found for this URL", nil)
	wrapped := fmt.Errorf("scrape aborted: %w", inner)

	resp := respondScrapeError("https://example.com/v/1", wrapped)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d for a wrapped %s", resp.StatusCode, http.StatusNotFound, models.ErrCodeNoLinks)
	}
	if !strings.Contains(resp.Body, models.ErrCodeNoLinks) {
		t.Errorf("body missing error code: %s", resp.Body)
	}
}

func TestRespondScrapeError_PlainErrorIsInternal(t *testing.T) {
	resp := respondScrapeError("https://example.com/v/1", fmt.Errorf("chrome went away"))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	if !strings.Contains(resp.Body, models.ErrCodeInternal) {
		t.Errorf("body missing error code: %s", resp.Body)
	}
}
