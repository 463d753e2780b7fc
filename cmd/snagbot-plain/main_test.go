package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/snagbot/snagbot/cache"
	"github.com/snagbot/snagbot/models"
)

// A cache hit answers before the scraper is touched, so a nil scraper
// exercises the hit path in isolation.
func TestHandleProcess_CacheHitLeavesStoredEntryUntagged(t *testing.T) {
	const videoURL = "https://example.com/watch?v=1"
	cc := cache.New(10, time.Minute)
	cc.Set(cache.Key(videoURL), &models.ProcessResponse{
		Status:      "success",
		OriginalURL: videoURL,
		Title:       "A Video",
		DownloadOptions: []models.DownloadOption{
			{URL: "https://grabnwatch.com/w/abc", Label: "720p"},
		},
	})

	s := &server{cc: cc}

	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(`{"url":"`+videoURL+`"}`))
	w := httptest.NewRecorder()
	s.handleProcess(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"cache_status":"hit"`) {
		t.Errorf("response missing hit tag: %s", w.Body.String())
	}

	stored, hit := cc.Get(cache.Key(videoURL))
	if !hit {
		t.Fatal("expected stored entry to still be present")
	}
	if stored.CacheStatus != "" {
		t.Errorf("stored cache entry was mutated by the hit path: CacheStatus = %q", stored.CacheStatus)
	}
}
