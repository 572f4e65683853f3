package engine

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/salesloop/pagelens/models"
)

// desktopUserAgents is the fixed pool the plain HTTP strategy draws from,
// one random pick per request.
var desktopUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0",
}

func randomUserAgent() string {
	return desktopUserAgents[rand.IntN(len(desktopUserAgents))]
}

// setBrowserHeaders makes the request look like an ordinary navigation.
func setBrowserHeaders(h http.Header) {
	h.Set("User-Agent", randomUserAgent())
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	h.Set("Accept-Encoding", "identity") // no compression for simplicity
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
}

// HTTPStrategy is the cheapest strategy: a plain GET with browser-like
// headers. Suitable for static pages without bot defenses.
type HTTPStrategy struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPStrategy creates an HTTPStrategy that follows at most 5
// redirects and gives up after timeout.
func NewHTTPStrategy(timeout time.Duration) *HTTPStrategy {
	return &HTTPStrategy{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		timeout: timeout,
	}
}

func (s *HTTPStrategy) Method() models.Method { return models.MethodHTTP }

func (s *HTTPStrategy) Fetch(ctx context.Context, target string) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return doBrowserlikeGet(ctx, s.client, target, "http")
}

// doBrowserlikeGet is the request/response handling shared by the plain
// and Chrome-fingerprint HTTP strategies.
func doBrowserlikeGet(ctx context.Context, client *http.Client, target, tag string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", tag, err)
	}
	setBrowserHeaders(req.Header)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", tag, err)
	}
	defer resp.Body.Close()

	// Read body with a 10 MB limit to prevent unbounded memory use.
	const maxBody = 10 << 20
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", tag, err)
	}

	// Anything below 400 counts as success; error pages and non-HTML
	// payloads are failures so the fallback chain can escalate.
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: status %d for %s", tag, resp.StatusCode, target)
	}
	if ct := resp.Header.Get("Content-Type"); !isHTMLContentType(ct) {
		return nil, fmt.Errorf("%s: non-html content-type %q for %s", tag, ct, target)
	}

	return &FetchResult{
		HTML:       string(body),
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
	}, nil
}

// isHTMLContentType returns true if the content-type header looks like HTML.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
