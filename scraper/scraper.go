package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/engine"
	"github.com/salesloop/pagelens/models"
	"github.com/ysmood/gson"
)

// pageOptions tunes a single browser-driven fetch.
type pageOptions struct {
	// stealth injects anti-detection JS before navigation.
	stealth bool

	// blockedTypes lists subresource types the page refuses to load.
	blockedTypes []string

	// settle is the wait after the DOM stabilises, giving client-side
	// script time to populate content.
	settle time.Duration
}

// newLauncher builds a hardened Chromium launcher. Every fetch gets its
// own browser process so a crashed or poisoned renderer never outlives
// the request.
func newLauncher(cfg config.BrowserConfig) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	return l
}

// fetchPage launches an isolated browser, navigates to the target and
// returns the rendered markup. The browser process is torn down on every
// exit path.
//
// Order matters: stealth JS and the hijack router only take effect for
// navigations that happen after they are installed, so both are mounted
// before Navigate.
func fetchPage(ctx context.Context, cfg config.BrowserConfig, target string, opts pageOptions) (*engine.FetchResult, error) {
	l := newLauncher(cfg)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewExtractError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewExtractError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewExtractError(
			models.ErrCodeBrowserCrash,
			"failed to create page",
			err,
		)
	}

	if opts.stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without it",
				"error", evalErr,
			)
		}
	}

	// A plausible Referer makes the navigation look organic.
	if u, parseErr := url.Parse(target); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer":         gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
				"Accept-Language": gson.New("pt-BR,pt;q=0.9,en;q=0.8"),
			},
		}.Call(page)
	}

	if router := setupHijack(page, opts.blockedTypes); router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	if navErr := p.Navigate(target); navErr != nil {
		return nil, categorizeError(navErr, "navigation to target URL failed")
	}

	// NOTE: WaitRequestIdle uses the Fetch domain which conflicts with
	// HijackRequests on Chromium 145+, so DOM stability is the wait
	// signal here. Non-convergence is fine; the settle delay below still
	// gives scripts a window to run.
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr,
		)
	}

	if opts.settle > 0 {
		select {
		case <-ctx.Done():
			return nil, categorizeError(ctx.Err(), "fetch deadline reached during settle")
		case <-time.After(opts.settle):
		}
	}

	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = target
	}

	// Best-effort status code via the Navigation Timing API; no CDP
	// event listeners needed.
	var statusCode int
	if res, evalErr := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); evalErr == nil {
		statusCode = res.Value.Int()
	}

	return &engine.FetchResult{
		HTML:       rawHTML,
		FinalURL:   finalURL,
		StatusCode: statusCode,
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string
// result, swallowing any errors.
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// categorizeError wraps raw errors into typed ExtractErrors so callers
// can distinguish timeouts from navigation failures.
func categorizeError(err error, msg string) *models.ExtractError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewExtractError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewExtractError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewExtractError(models.ErrCodeNavigation, msg, err)
	}
}
