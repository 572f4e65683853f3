package scraper

import (
	"context"

	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/engine"
	"github.com/salesloop/pagelens/models"
)

// FullBrowser is the most expensive strategy: a complete headless render
// with stealth JS injected and every subresource loaded. It is the last
// resort for JS-heavy single-page applications.
type FullBrowser struct {
	browserCfg config.BrowserConfig
	strategy   config.StrategyConfig
}

func NewFullBrowser(browserCfg config.BrowserConfig, strategy config.StrategyConfig) *FullBrowser {
	return &FullBrowser{browserCfg: browserCfg, strategy: strategy}
}

func (e *FullBrowser) Method() models.Method { return models.MethodFullBrowser }

func (e *FullBrowser) Fetch(ctx context.Context, target string) (*engine.FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.strategy.BrowserTimeout)
	defer cancel()

	return fetchPage(ctx, e.browserCfg, target, pageOptions{
		stealth: true,
		settle:  e.strategy.FullSettle,
	})
}
