// Command snagbot-plain is the framework-free variant: the same shared
// scraper core behind a bare net/http mux. Useful where pulling in gin
// is unwanted; the JSON surface is identical to cmd/snagbot.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snagbot/snagbot/api/handler"
	"github.com/snagbot/snagbot/cache"
	"github.com/snagbot/snagbot/config"
	"github.com/snagbot/snagbot/logging"
	"github.com/snagbot/snagbot/models"
	"github.com/snagbot/snagbot/scraper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	logging.Init(cfg.Log)

	sc, err := scraper.NewScraper(cfg.Browser, cfg.Scraper)
	if err != nil {
		slog.Error("failed to initialise scraper", "error", err)
		os.Exit(1)
	}
	defer sc.Close()

	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	s := &server{sc: sc, cc: cc}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/api/process", s.process)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	}
}

type server struct {
	sc *scraper.Scraper
	cc *cache.Cache
}

// root serves GET / (status) and POST / (process).
func (s *server) root(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodGet:
		s.status(w)
	case http.MethodPost:
		s.handleProcess(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, models.ProcessResponse{
			Status: "error",
			Error:  &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: "method not allowed"},
		})
	}
}

// process serves POST /api/process.
func (s *server) process(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		s.handleProcess(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, models.ProcessResponse{
			Status: "error",
			Error:  &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: "method not allowed"},
		})
	}
}

func (s *server) status(w http.ResponseWriter) {
	stats := s.sc.Stats()
	status := "healthy"
	if stats.MaxPages > 0 && stats.ActivePages > int(float64(stats.MaxPages)*0.8) {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{
		Service:   "snagbot",
		Status:    status,
		Uptime:    s.sc.Uptime().Round(time.Second).String(),
		PoolStats: stats,
		Version:   handler.Version,
	})
}

func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !validURL(req.URL) {
		writeJSON(w, http.StatusBadRequest, models.ProcessResponse{
			Status: "error",
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: "request body must be JSON with a valid \"url\" field",
			},
		})
		return
	}

	// Copy before tagging: the stored entry is shared between
	// concurrent hits and must stay pristine.
	cacheKey := cache.Key(req.URL)
	if cached, hit := s.cc.Get(cacheKey); hit {
		out := *cached
		out.CacheStatus = "hit"
		writeJSON(w, http.StatusOK, out)
		return
	}

	result, err := s.sc.Process(r.Context(), req.URL)
	if err != nil {
		var scrapeErr *models.ScrapeError
		if !errors.As(err, &scrapeErr) {
			scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
		}
		writeJSON(w, handler.MapErrorToStatus(scrapeErr), models.ProcessResponse{
			Status:      "error",
			OriginalURL: req.URL,
			Error:       scrapeErr.ToDetail(),
		})
		return
	}

	resp := &models.ProcessResponse{
		Status:          "success",
		OriginalURL:     req.URL,
		Title:           result.Title,
		DownloadOptions: result.Options,
	}
	s.cc.Set(cacheKey, resp)

	out := *resp
	out.CacheStatus = "miss"
	writeJSON(w, http.StatusOK, out)
}

func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, Authorization")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
