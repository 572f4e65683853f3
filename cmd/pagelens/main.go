package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/salesloop/pagelens/api"
	"github.com/salesloop/pagelens/cache"
	"github.com/salesloop/pagelens/chat"
	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/engine"
	"github.com/salesloop/pagelens/extractor"
	"github.com/salesloop/pagelens/llm"
	"github.com/salesloop/pagelens/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load()
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("pagelens starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Build fetch strategies in escalation order ───────────────
	strategies := []engine.Strategy{
		engine.NewHTTPStrategy(cfg.Strategy.HTTPTimeout),
		engine.NewCloudflareStrategy(cfg.Strategy.CloudflareTimeout),
		scraper.NewLightBrowser(cfg.Browser, cfg.Strategy),
		scraper.NewFullBrowser(cfg.Browser, cfg.Strategy),
	}

	// ── 4. Assemble the extraction service ──────────────────────────
	router := engine.NewRouter(cfg.Routing)
	store := cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	svc := extractor.New(strategies, router, store)

	// ── 5. Conversational responder (LLM optional) ──────────────────
	var completer chat.Completer
	if cfg.LLM.APIKey != "" {
		completer = llm.NewClient(cfg.LLM)
		slog.Info("LLM responder enabled", "model", cfg.LLM.Model)
	}
	sessions := chat.NewStore()
	responder := chat.NewSalesResponder(completer)

	// ── 6. Setup router ──────────────────────────────────────────────
	startTime := time.Now()
	handler := api.NewRouter(svc, sessions, responder, cfg, startTime)

	// ── 7. Start HTTP server ─────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ─────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete. Browser processes
	// are per-fetch, so nothing else needs tearing down.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("pagelens stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
