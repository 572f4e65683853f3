package models

// ErrorResponse is the body returned for any failed API call.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// ChatResponse is the response for POST /api/v1/chat.
type ChatResponse struct {
	Response  string         `json:"response"`
	SessionID string         `json:"session_id"`
	Record    *ContentRecord `json:"record,omitempty"`
}

// ChatExchange is one user message with the reply it received.
type ChatExchange struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// ConversationHistoryResponse is the response for
// GET /api/v1/conversation-history/:session_id.
type ConversationHistoryResponse struct {
	SessionID string         `json:"session_id"`
	History   []ChatExchange `json:"history"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Uptime       string `json:"uptime"`
	CacheEntries int    `json:"cache_entries"`
	Version      string `json:"version"`
}
