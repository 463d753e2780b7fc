package scraper

// Facts about grabnwatch.com's markup. The whole scrape is coupled to
// these; when the site ships a new layout the extraction degrades to
// "no links found" rather than erroring.
const (
	// HomeURL is the page carrying the submission form. It is also the
	// base every relative result href resolves against.
	HomeURL = "https://grabnwatch.com"

	// selectorURLInput is the form field accepting the video URL.
	selectorURLInput = "#video-url"

	// selectorGroupInput is the optional "group" field. Not every
	// layout has it; filling it is best-effort.
	selectorGroupInput = "#group-name"

	// selectorSubmit is the form's submit button.
	selectorSubmit = "#process-btn"

	// selectorLoading is the spinner shown while the site resolves the
	// submitted URL.
	selectorLoading = "#loading-indicator"
)
