package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// extractRequest mirrors the Pagelens API request model.
type extractRequest struct {
	URL    string `json:"url"`
	Method string `json:"method,omitempty"`
}

// chatRequest mirrors the Pagelens chat API request model.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

func main() {
	apiURL := os.Getenv("PAGELENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("PAGELENS_API_KEY")

	s := server.NewMCPServer(
		"pagelens",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	extractTool := mcp.NewTool("extract_content",
		mcp.WithDescription("Extract marketing-relevant fields (title, description, price, benefits, testimonials, CTA, media, contact info) from a sales page URL. Escalates through HTTP, Chrome-fingerprint HTTP and headless browser fetches automatically."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to extract"),
		),
		mcp.WithString("method",
			mcp.Description("Fetch strategy: 'auto' (default) routes by hostname"),
			mcp.Enum("auto", "http", "cloudflare-tolerant-http", "lightweight-browser", "full-browser"),
		),
	)
	s.AddTool(extractTool, handleExtract(apiURL, apiKey))

	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the sales assistant. Optionally ground the conversation on a sales page URL; pass the returned session_id on follow-up messages."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The visitor's message"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier from a previous chat call"),
		),
		mcp.WithString("url",
			mcp.Description("Sales page URL to ground the conversation on"),
		),
	)
	s.AddTool(chatTool, handleChat(apiURL, apiKey))

	clearCacheTool := mcp.NewTool("clear_cache",
		mcp.WithDescription("Clear the extraction record cache, forcing fresh fetches for every URL."),
	)
	s.AddTool(clearCacheTool, handleClearCache(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleExtract(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		method := request.GetString("method", "")

		body, err := json.Marshal(extractRequest{URL: url, Method: method})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/extract", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}
		if resp.StatusCode != http.StatusOK {
			return mcp.NewToolResultError(fmt.Sprintf("API returned %d: %s", resp.StatusCode, respBody)), nil
		}

		return mcp.NewToolResultText(string(respBody)), nil
	}
}

func handleChat(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError("message is required"), nil
		}

		body, err := json.Marshal(chatRequest{
			Message:   message,
			SessionID: request.GetString("session_id", ""),
			URL:       request.GetString("url", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/chat", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}
		if resp.StatusCode != http.StatusOK {
			return mcp.NewToolResultError(fmt.Sprintf("API returned %d: %s", resp.StatusCode, respBody)), nil
		}

		return mcp.NewToolResultText(string(respBody)), nil
	}
}

func handleClearCache(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, apiURL+"/api/v1/cache", nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			body, _ := io.ReadAll(resp.Body)
			return mcp.NewToolResultError(fmt.Sprintf("API returned %d: %s", resp.StatusCode, body)), nil
		}

		return mcp.NewToolResultText("cache cleared"), nil
	}
}
