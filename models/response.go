package models

// DownloadOption is one candidate download link scraped from the
// rendered results page. URL is always absolute. Label is the anchor
// text when present, otherwise the default for the extraction pass
// that found the link.
type DownloadOption struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// ProcessResponse is the response for POST / and POST /api/process.
type ProcessResponse struct {
	// Status is "success" or "error".
	Status string `json:"status"`

	// OriginalURL echoes the submitted video URL.
	OriginalURL string `json:"original_url"`

	// Title is the resolved video title. Never empty on success; the
	// scraper falls back to a placeholder when the page offers none.
	Title string `json:"title,omitempty"`

	// DownloadOptions is the deduplicated, ordered link list.
	// Non-empty on success.
	DownloadOptions []DownloadOption `json:"download_options,omitempty"`

	// CacheStatus is "hit" or "miss" when caching is enabled.
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Status is "error".
	Error *ErrorDetail `json:"error,omitempty"`
}

// StatusResponse is the response for GET /.
type StatusResponse struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
