package scraper

import (
	"context"

	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/engine"
	"github.com/salesloop/pagelens/models"
)

// LightBrowser renders pages in a headless browser with images,
// stylesheets, fonts and media blocked. It executes JavaScript, which
// defeats most bot checks that plain HTTP cannot, while staying cheaper
// than a full render.
type LightBrowser struct {
	browserCfg config.BrowserConfig
	strategy   config.StrategyConfig
}

func NewLightBrowser(browserCfg config.BrowserConfig, strategy config.StrategyConfig) *LightBrowser {
	return &LightBrowser{browserCfg: browserCfg, strategy: strategy}
}

func (e *LightBrowser) Method() models.Method { return models.MethodLightBrowser }

func (e *LightBrowser) Fetch(ctx context.Context, target string) (*engine.FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.strategy.BrowserTimeout)
	defer cancel()

	return fetchPage(ctx, e.browserCfg, target, pageOptions{
		blockedTypes: e.strategy.BlockedResourceTypes,
		settle:       e.strategy.LightSettle,
	})
}
