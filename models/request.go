package models

// ProcessRequest is the payload for POST / and POST /api/process.
type ProcessRequest struct {
	// URL is the video page to resolve. Required.
	URL string `json:"url" binding:"required,url"`
}
