package api

import (
	"github.com/gin-gonic/gin"
	"github.com/snagbot/snagbot/api/handler"
	"github.com/snagbot/snagbot/api/middleware"
	"github.com/snagbot/snagbot/cache"
	"github.com/snagbot/snagbot/config"
	"github.com/snagbot/snagbot/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	Scrape:  Auth (no-op without keys) → RateLimit
//
// The status endpoint is intentionally outside auth and rate limiting
// so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, cc *cache.Cache, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS())

	// Status — no auth required.
	r.GET("/", handler.Status(sc))

	// Scrape endpoints — auth + rate limit.
	process := handler.Process(sc, cc, cfg.Webhook)
	protected := r.Group("")
	protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	protected.Use(middleware.RateLimit(cfg.RateLimit))
	protected.POST("/", process)
	protected.POST("/api/process", process)

	return r
}
