package models

// ExtractRequest is the payload for POST /api/v1/extract. The same
// fields are accepted as query parameters on GET.
type ExtractRequest struct {
	// URL is the target page. Required.
	URL string `json:"url" form:"url" binding:"required,url"`

	// Method picks the fetch strategy. Empty or "auto" lets the router
	// decide based on the hostname.
	Method string `json:"method,omitempty" form:"method" binding:"omitempty,oneof=auto http cloudflare-tolerant-http lightweight-browser full-browser"`
}

// ChatRequest is the payload for POST /api/v1/chat.
type ChatRequest struct {
	// Message is the visitor's message. Required.
	Message string `json:"message" binding:"required"`

	// SessionID continues an existing conversation. A new session is
	// created (and returned) when empty.
	SessionID string `json:"session_id,omitempty"`

	// URL optionally points at the sales page the conversation is
	// about; its extracted record is handed to the responder.
	URL string `json:"url,omitempty" binding:"omitempty,url"`
}
