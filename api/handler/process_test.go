package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snagbot/snagbot/cache"
	"github.com/snagbot/snagbot/config"
	"github.com/snagbot/snagbot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeNavigation, http.StatusBadGateway},
		{models.ErrCodeNoLinks, http.StatusNotFound},
		{models.ErrCodeInvalidInput, http.StatusBadRequest},
		{models.ErrCodeRateLimited, http.StatusTooManyRequests},
		{models.ErrCodeBrowserCrash, http.StatusInternalServerError},
		{models.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e := models.NewScrapeError(tt.code, "msg", nil)
			assert.Equal(t, tt.want, MapErrorToStatus(e))
		})
	}
}

// A cache hit answers before the scraper is touched, so a nil scraper
// exercises the hit path in isolation.
func TestProcess_CacheHitLeavesStoredEntryUntagged(t *testing.T) {
	gin.SetMode(gin.TestMode)

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

	r := gin.New()
	r.POST("/", Process(nil, cc, config.WebhookConfig{}))

	doHit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"url":"`+videoURL+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := doHit()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cache_status":"hit"`)

	// The stored entry must not carry the response-only tag.
	stored, hit := cc.Get(cache.Key(videoURL))
	require.True(t, hit)
	assert.Empty(t, stored.CacheStatus, "stored cache entry was mutated by the hit path")

	// Concurrent hits must not write to the shared entry.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doHit()
		}()
	}
	wg.Wait()

	stored, hit = cc.Get(cache.Key(videoURL))
	require.True(t, hit)
	assert.Empty(t, stored.CacheStatus)
}

// Request validation rejects bad bodies before the scraper is touched,
// so a nil scraper is fine here.
func TestProcess_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"missing url", `{}`},
		{"not a url", `{"url": "definitely not a url"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/", Process(nil, nil, config.WebhookConfig{}))

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), models.ErrCodeInvalidInput)
		})
	}
}
