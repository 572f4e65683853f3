package engine

import (
	"context"

	"github.com/salesloop/pagelens/models"
)

// Strategy is one concrete method of acquiring rendered markup for a URL.
// Implementations own their timeout and must never panic past Fetch; every
// failure mode comes back as an error for the fallback chain to consume.
type Strategy interface {
	// Method returns the strategy identifier (e.g. "http", "full-browser").
	Method() models.Method

	// Fetch retrieves the page. A nil error implies HTML and FinalURL
	// are populated.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// FetchResult is the output of a successful fetch attempt. It lives only
// until the orchestrator hands the markup to the field extractor.
type FetchResult struct {
	HTML       string
	FinalURL   string
	StatusCode int
}
