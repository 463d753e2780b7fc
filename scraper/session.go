package scraper

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/snagbot/snagbot/extract"
	"github.com/snagbot/snagbot/models"
)

// loadingAppearWindow bounds how long we wait for the loading spinner
// to show up at all. Fast resolutions may skip it entirely.
const loadingAppearWindow = 3 * time.Second

// Result is what one successful scrape produces.
type Result struct {
	Title   string
	Options []models.DownloadOption
}

// Process runs the full scrape sequence for one video URL.
//
// Lifecycle:
//
//  1. Timeout guard    – hard deadline on the entire operation
//  2. Acquire page     – borrow a tab from the pool (or create one)
//  3. Ensure home      – navigate + blind bot-check delay if needed
//  4. Submit form      – clear/fill URL field, optional group token, click
//  5. Wait spinner     – bounded; a stuck spinner is logged, not fatal
//  6. Settle delay     – let async result rendering finish
//  7. Extract          – title probe + link passes over page.HTML()
//
// A page already parked on the site's origin skips step 3's delay, so
// pooled pages pay the bot-check cost once, not per request.
func (s *Scraper) Process(ctx context.Context, videoURL string) (*Result, error) {
	// ── 1. Timeout guard ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(ctx, s.scraperCfg.RequestTimeout)
	defer cancel()

	// ── 2. Acquire page from pool ─────────────────────────────────────
	s.activePages.Add(1)
	defer s.activePages.Add(-1)

	page, acquireErr := s.pagePool.Get(s.newPage)
	if acquireErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}
	// The original page reference (without the request context) goes
	// back to the pool, so the return succeeds even after a deadline.
	defer s.pagePool.Put(page)

	p := page.Context(ctx)

	// ── 3. Ensure we are on the site's home page ──────────────────────
	if err := s.ensureHome(p); err != nil {
		return nil, categorizeError(err, "navigation to site home failed")
	}

	// ── 4. Fill and submit the form ───────────────────────────────────
	if err := submitForm(p, videoURL); err != nil {
		return nil, categorizeError(err, "form submission failed")
	}

	// ── 5. Wait for the loading indicator to clear (best-effort) ──────
	s.waitLoadingGone(p)

	// ── 6. Settle delay for async result rendering ────────────────────
	if err := sleepCtx(ctx, s.scraperCfg.SettleDelay); err != nil {
		return nil, categorizeError(err, "interrupted while waiting for results")
	}

	// ── 7. Extract ────────────────────────────────────────────────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := extract.Title(rawHTML)
	options := extract.Links(rawHTML, HomeURL)
	if len(options) == 0 {
		slog.Warn("no download links found", "url", videoURL)
		return nil, models.NewScrapeError(
			models.ErrCodeNoLinks,
			"no download links found for this URL",
			nil,
		)
	}

	slog.Info("scrape complete",
		"url", videoURL,
		"title", title,
		"options", len(options),
	)
	return &Result{Title: title, Options: options}, nil
}

// ensureHome navigates to the site's home page unless the page is
// already parked on its origin. Fresh navigations pause for the
// configured challenge delay: the site fronts a bot check whose outcome
// is not observable from here, so this is a blind timer.
func (s *Scraper) ensureHome(p *rod.Page) error {
	info, err := p.Info()
	if err == nil && strings.HasPrefix(info.URL, HomeURL) {
		return nil
	}

	slog.Info("navigating to site home", "url", HomeURL)
	if err := p.Navigate(HomeURL); err != nil {
		return err
	}
	if err := p.WaitLoad(); err != nil {
		slog.Debug("home page load wait failed, continuing", "error", err)
	}

	slog.Info("waiting out bot-check challenge", "delay", s.scraperCfg.ChallengeDelay)
	return sleepCtx(p.GetContext(), s.scraperCfg.ChallengeDelay)
}

// submitForm clears and fills the URL field, best-effort populates the
// optional group field with a random token, and clicks submit. A
// missing URL field or submit button aborts the scrape; a missing
// group field does not.
func submitForm(p *rod.Page, videoURL string) error {
	urlInput, err := p.Element(selectorURLInput)
	if err != nil {
		return err
	}
	if err := urlInput.SelectAllText(); err != nil {
		return err
	}
	if err := urlInput.Input(videoURL); err != nil {
		return err
	}

	fillGroupField(p)

	submit, err := p.Element(selectorSubmit)
	if err != nil {
		return err
	}
	return submit.Click(proto.InputMouseButtonLeft, 1)
}

// fillGroupField puts a random token into the group field when the
// field exists and is empty. Absence of the field is not an error.
func fillGroupField(p *rod.Page) {
	group, err := p.Timeout(time.Second).Element(selectorGroupInput)
	if err != nil {
		return
	}
	// Drop the lookup timeout so the fill itself runs under the
	// request context.
	group = group.CancelTimeout()
	value, err := group.Property("value")
	if err != nil || strings.TrimSpace(value.Str()) != "" {
		return
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if err := group.Input(token); err != nil {
		slog.Debug("could not fill group field", "error", err)
	}
}

// waitLoadingGone waits for the loading indicator to disappear, bounded
// by the configured timeout. The spinner may never appear (fast
// resolution) or never clear (slow site); neither aborts the scrape —
// extraction proceeds on whatever has rendered.
func (s *Scraper) waitLoadingGone(p *rod.Page) {
	spinner, err := p.Timeout(loadingAppearWindow).Element(selectorLoading)
	if err != nil {
		slog.Debug("loading indicator never appeared, extracting directly")
		return
	}
	spinner = spinner.CancelTimeout()
	if err := spinner.Timeout(s.scraperCfg.LoadingTimeout).WaitInvisible(); err != nil {
		slog.Warn("loading indicator did not clear in time, extracting anyway",
			"timeout", s.scraperCfg.LoadingTimeout,
			"error", err,
		)
	}
}

// sleepCtx pauses for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// categorizeError wraps raw errors into typed ScrapeErrors so the API
// layer can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
