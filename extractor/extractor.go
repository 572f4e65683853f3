package extractor

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/salesloop/pagelens/cache"
	"github.com/salesloop/pagelens/engine"
	"github.com/salesloop/pagelens/models"
)

// Service orchestrates strategy selection, the fallback chain, field
// extraction and the record cache. It is safe for concurrent use.
type Service struct {
	// order is the fixed escalation order, cheapest first. Fallback
	// always walks it sequentially; strategies never race.
	order []models.Method

	strategies map[models.Method]engine.Strategy
	router     *engine.Router
	store      *cache.Cache
}

// New builds a Service from the given strategies. The escalation order
// follows the order of the slice.
func New(strategies []engine.Strategy, router *engine.Router, store *cache.Cache) *Service {
	byMethod := make(map[models.Method]engine.Strategy, len(strategies))
	order := make([]models.Method, 0, len(strategies))
	for _, s := range strategies {
		byMethod[s.Method()] = s
		order = append(order, s.Method())
	}
	return &Service{
		order:      order,
		strategies: byMethod,
		router:     router,
		store:      store,
	}
}

// Extract resolves a URL to a ContentRecord. Total contract: the only
// error a caller can see is invalid input; every fetch failure is
// absorbed by the fallback chain, and a full-chain failure yields the
// canonical default record (which is never cached).
//
// The cache key is (url, requested method), so "auto" and the concrete
// strategy it resolves to are cached independently.
func (s *Service) Extract(ctx context.Context, rawURL string, method models.Method) (*models.ContentRecord, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, models.NewExtractError(
			models.ErrCodeInvalidInput,
			"url must be absolute http or https",
			err,
		)
	}

	if rec, ok := s.store.Get(rawURL, method); ok {
		slog.Debug("cache hit", "url", rawURL, "method", method)
		return rec, nil
	}

	start := method
	if start == models.MethodAuto {
		start = s.router.Select(u.Hostname())
		slog.Debug("strategy routed", "url", rawURL, "host", u.Hostname(), "strategy", start)
	}

	result, used := s.fetchWithFallback(ctx, rawURL, start)
	if result == nil {
		slog.Warn("all strategies failed, serving default record", "url", rawURL)
		return DefaultRecord(rawURL), nil
	}

	rec := Parse(result.HTML, result.FinalURL)
	rec.URL = rawURL
	rec.ExtractionMethod = used

	s.store.Put(rawURL, method, rec)
	return rec, nil
}

// fetchWithFallback runs the chain starting at the requested strategy,
// then escalates through the remaining strategies in order. Attempts are
// strictly sequential; a strategy only runs after the previous one
// failed. Returns nil when every attempt failed or the context expired.
func (s *Service) fetchWithFallback(ctx context.Context, target string, start models.Method) (*engine.FetchResult, models.Method) {
	attempted := make(map[models.Method]bool, len(s.order))

	try := func(m models.Method) *engine.FetchResult {
		strat, ok := s.strategies[m]
		if !ok || attempted[m] {
			return nil
		}
		attempted[m] = true

		result, err := strat.Fetch(ctx, target)
		if err != nil {
			slog.Info("fetch attempt failed",
				"url", target, "strategy", m, "error", err,
			)
			return nil
		}
		return result
	}

	if result := try(start); result != nil {
		return result, start
	}
	for _, m := range s.order {
		if ctx.Err() != nil {
			return nil, ""
		}
		if result := try(m); result != nil {
			return result, m
		}
	}
	return nil, ""
}

// ClearCache drops every cached record.
func (s *Service) ClearCache() {
	s.store.Clear()
}

// CacheLen reports the number of cached records.
func (s *Service) CacheLen() int {
	return s.store.Len()
}
