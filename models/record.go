package models

import "fmt"

// Method identifies a content-acquisition strategy.
type Method string

const (
	// MethodAuto lets the strategy router pick based on the hostname.
	MethodAuto Method = "auto"

	// MethodHTTP is a plain GET with browser-like headers.
	MethodHTTP Method = "http"

	// MethodCloudflare is an HTTP fetch with a Chrome TLS fingerprint,
	// able to pass lightweight edge/JS challenges.
	MethodCloudflare Method = "cloudflare-tolerant-http"

	// MethodLightBrowser is a headless browser fetch with subresource
	// loading (images, styles, fonts, media) blocked for speed.
	MethodLightBrowser Method = "lightweight-browser"

	// MethodFullBrowser is a fully rendering headless browser fetch with
	// stealth evasions, for the most defended or JS-heavy targets.
	MethodFullBrowser Method = "full-browser"

	// MethodFallback tags records produced by the default-record
	// generator after every strategy failed.
	MethodFallback Method = "fallback"
)

// ParseMethod validates a caller-supplied method string. An empty string
// resolves to MethodAuto. MethodFallback is not requestable.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodAuto:
		return MethodAuto, nil
	case MethodHTTP, MethodCloudflare, MethodLightBrowser, MethodFullBrowser:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown extraction method %q", s)
}

// Image is one page image with its source resolved to an absolute URL.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Contact holds the first email address and phone number found in the
// raw markup.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Metadata holds the five meta tags extracted directly from the head.
// Missing tags are empty strings, never absent keys.
type Metadata struct {
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
	OGImage       string `json:"ogImage"`
	Keywords      string `json:"keywords"`
	Author        string `json:"author"`
}

// ContentRecord is the normalized extraction output: the bounded set of
// marketing-relevant fields derived from a page.
//
// Bounds: Description <= 500 chars, Benefits <= 8 (deduplicated),
// Testimonials <= 5 (deduplicated), Images <= 10, Videos <= 5,
// MainContent <= 15000 chars.
type ContentRecord struct {
	URL              string   `json:"url"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Price            string   `json:"price"`
	Benefits         []string `json:"benefits"`
	Testimonials     []string `json:"testimonials"`
	CTA              string   `json:"cta"`
	Images           []Image  `json:"images"`
	Videos           []string `json:"videos"`
	Contact          Contact  `json:"contact"`
	Metadata         Metadata `json:"metadata"`
	MainContent      string   `json:"mainContent,omitempty"`
	ExtractionMethod Method   `json:"extractionMethod"`
}
