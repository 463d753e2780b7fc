package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snagbot/snagbot/cache"
	"github.com/snagbot/snagbot/config"
	"github.com/snagbot/snagbot/models"
	"github.com/snagbot/snagbot/scraper"
	"github.com/snagbot/snagbot/webhook"
)

// Process returns the handler for POST / and POST /api/process.
//
// Flow:
//  1. Parse & validate the request body.
//  2. Cache lookup by video URL.
//  3. Scraper.Process → title + download options.
//  4. Cache store, optional webhook delivery, respond 200.
func Process(sc *scraper.Scraper, cc *cache.Cache, webhookCfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.ProcessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ProcessResponse{
				Status: "error",
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "request body must be JSON with a valid \"url\" field",
				},
			})
			return
		}

		// ── 2. Cache lookup ─────────────────────────────────────────
		// Copy before tagging: the stored entry is shared between
		// concurrent hits and must stay pristine.
		cacheKey := cache.Key(req.URL)
		if cached, hit := cc.Get(cacheKey); hit {
			out := *cached
			out.CacheStatus = "hit"
			c.JSON(http.StatusOK, out)
			return
		}

		// ── 3. Scrape ───────────────────────────────────────────────
		result, err := sc.Process(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, req.URL, err)
			if webhookCfg.URL != "" {
				webhook.DeliverAsync(webhookCfg.URL, webhookCfg.Secret,
					webhook.NewEvent("scrape.failed", gin.H{
						"original_url": req.URL,
						"error":        err.Error(),
					}))
			}
			return
		}

		resp := &models.ProcessResponse{
			Status:          "success",
			OriginalURL:     req.URL,
			Title:           result.Title,
			DownloadOptions: result.Options,
		}

		// ── 4. Cache store + webhook + respond ──────────────────────
		cc.Set(cacheKey, resp)
		if webhookCfg.URL != "" {
			webhook.DeliverAsync(webhookCfg.URL, webhookCfg.Secret,
				webhook.NewEvent("scrape.completed", resp))
		}

		out := *resp
		out.CacheStatus = "miss"
		c.JSON(http.StatusOK, out)
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, originalURL string, err error) {
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(MapErrorToStatus(scrapeErr), models.ProcessResponse{
		Status:      "error",
		OriginalURL: originalURL,
		Error:       scrapeErr.ToDetail(),
	})
}

// MapErrorToStatus translates error codes to HTTP status codes.
func MapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeNoLinks:
		return http.StatusNotFound // 404
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
