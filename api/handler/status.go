package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snagbot/snagbot/models"
	"github.com/snagbot/snagbot/scraper"
)

// Version is the reported service version.
const Version = "0.1.0"

// Status returns the handler for GET /.
//
// Reports pool utilisation and degrades status when > 80% of pages are
// active.
func Status(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := sc.Stats()

		status := "healthy"
		if stats.MaxPages > 0 && stats.ActivePages > int(float64(stats.MaxPages)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.StatusResponse{
			Service:   "snagbot",
			Status:    status,
			Uptime:    sc.Uptime().Round(time.Second).String(),
			PoolStats: stats,
			Version:   Version,
		})
	}
}
