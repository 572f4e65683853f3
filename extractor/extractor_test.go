package extractor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salesloop/pagelens/cache"
	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/engine"
	"github.com/salesloop/pagelens/models"
)

type fakeStrategy struct {
	method models.Method
	html   string
	err    error
	calls  int
	log    *[]models.Method
}

func (f *fakeStrategy) Method() models.Method { return f.method }

func (f *fakeStrategy) Fetch(_ context.Context, url string) (*engine.FetchResult, error) {
	f.calls++
	if f.log != nil {
		*f.log = append(*f.log, f.method)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &engine.FetchResult{HTML: f.html, FinalURL: url, StatusCode: 200}, nil
}

const fakeHTML = `<html><head><title>Página de Vendas Teste</title></head><body><h1>Oferta Imperdível</h1></body></html>`

func newTestService(routing config.RoutingConfig, strategies ...engine.Strategy) *Service {
	return New(strategies, engine.NewRouter(routing), cache.New(time.Hour, 100))
}

func TestExtract_InvalidURL(t *testing.T) {
	svc := newTestService(config.RoutingConfig{},
		&fakeStrategy{method: models.MethodHTTP, html: fakeHTML})

	for _, bad := range []string{"not a url", "ftp://example.com/file", "example.com"} {
		_, err := svc.Extract(context.Background(), bad, models.MethodAuto)
		var exErr *models.ExtractError
		if !errors.As(err, &exErr) || exErr.Code != models.ErrCodeInvalidInput {
			t.Errorf("Extract(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestExtract_Success(t *testing.T) {
	s := &fakeStrategy{method: models.MethodHTTP, html: fakeHTML}
	svc := newTestService(config.RoutingConfig{}, s)

	rec, err := svc.Extract(context.Background(), "https://example.com/oferta", models.MethodAuto)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if rec.URL != "https://example.com/oferta" {
		t.Errorf("URL = %q, want the requested URL", rec.URL)
	}
	if rec.Title != "Oferta Imperdível" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.ExtractionMethod != models.MethodHTTP {
		t.Errorf("ExtractionMethod = %q, want %q", rec.ExtractionMethod, models.MethodHTTP)
	}
	if s.calls != 1 {
		t.Errorf("strategy called %d times, want 1", s.calls)
	}
}

func TestExtract_CacheHitSkipsFetch(t *testing.T) {
	s := &fakeStrategy{method: models.MethodHTTP, html: fakeHTML}
	svc := newTestService(config.RoutingConfig{}, s)

	if _, err := svc.Extract(context.Background(), "https://example.com", models.MethodAuto); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Extract(context.Background(), "https://example.com", models.MethodAuto); err != nil {
		t.Fatal(err)
	}
	if s.calls != 1 {
		t.Errorf("strategy called %d times across two extracts, want 1", s.calls)
	}
}

func TestExtract_ClearCacheForcesRefetch(t *testing.T) {
	s := &fakeStrategy{method: models.MethodHTTP, html: fakeHTML}
	svc := newTestService(config.RoutingConfig{}, s)

	if _, err := svc.Extract(context.Background(), "https://example.com", models.MethodAuto); err != nil {
		t.Fatal(err)
	}
	svc.ClearCache()
	if _, err := svc.Extract(context.Background(), "https://example.com", models.MethodAuto); err != nil {
		t.Fatal(err)
	}
	if s.calls != 2 {
		t.Errorf("strategy called %d times after ClearCache, want 2", s.calls)
	}
}

func TestExtract_FallbackOrder(t *testing.T) {
	var log []models.Method
	failed := errors.New("blocked")
	strategies := []engine.Strategy{
		&fakeStrategy{method: models.MethodHTTP, err: failed, log: &log},
		&fakeStrategy{method: models.MethodCloudflare, err: failed, log: &log},
		&fakeStrategy{method: models.MethodLightBrowser, err: failed, log: &log},
		&fakeStrategy{method: models.MethodFullBrowser, html: fakeHTML, log: &log},
	}
	svc := newTestService(config.RoutingConfig{}, strategies...)

	rec, err := svc.Extract(context.Background(), "https://example.com", models.MethodAuto)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if rec.ExtractionMethod != models.MethodFullBrowser {
		t.Errorf("ExtractionMethod = %q, want %q", rec.ExtractionMethod, models.MethodFullBrowser)
	}

	want := []models.Method{
		models.MethodHTTP, models.MethodCloudflare,
		models.MethodLightBrowser, models.MethodFullBrowser,
	}
	if len(log) != len(want) {
		t.Fatalf("attempt log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("attempt[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestExtract_ExplicitMethodTriedFirst(t *testing.T) {
	var log []models.Method
	strategies := []engine.Strategy{
		&fakeStrategy{method: models.MethodHTTP, html: fakeHTML, log: &log},
		&fakeStrategy{method: models.MethodLightBrowser, html: fakeHTML, log: &log},
	}
	svc := newTestService(config.RoutingConfig{}, strategies...)

	rec, err := svc.Extract(context.Background(), "https://example.com", models.MethodLightBrowser)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ExtractionMethod != models.MethodLightBrowser {
		t.Errorf("ExtractionMethod = %q, want explicit method", rec.ExtractionMethod)
	}
	if len(log) != 1 || log[0] != models.MethodLightBrowser {
		t.Errorf("attempt log = %v, want only the requested strategy", log)
	}
}

func TestExtract_AutoRoutesByHostname(t *testing.T) {
	var log []models.Method
	strategies := []engine.Strategy{
		&fakeStrategy{method: models.MethodHTTP, html: fakeHTML, log: &log},
		&fakeStrategy{method: models.MethodLightBrowser, html: fakeHTML, log: &log},
	}
	routing := config.RoutingConfig{BotDefendedHosts: []string{"amazon.com"}}
	svc := newTestService(routing, strategies...)

	rec, err := svc.Extract(context.Background(), "https://www.amazon.com/dp/X1", models.MethodAuto)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ExtractionMethod != models.MethodLightBrowser {
		t.Errorf("ExtractionMethod = %q, want the routed strategy", rec.ExtractionMethod)
	}
	if len(log) != 1 || log[0] != models.MethodLightBrowser {
		t.Errorf("attempt log = %v, want a single routed attempt", log)
	}
}

func TestExtract_AllStrategiesFail(t *testing.T) {
	failed := errors.New("blocked")
	s1 := &fakeStrategy{method: models.MethodHTTP, err: failed}
	s2 := &fakeStrategy{method: models.MethodLightBrowser, err: failed}
	svc := newTestService(config.RoutingConfig{}, s1, s2)

	rec, err := svc.Extract(context.Background(), "https://example.com/x", models.MethodAuto)
	if err != nil {
		t.Fatalf("Extract must not fail outward, got: %v", err)
	}
	if rec.ExtractionMethod != models.MethodFallback {
		t.Errorf("ExtractionMethod = %q, want %q", rec.ExtractionMethod, models.MethodFallback)
	}
	if rec.URL != "https://example.com/x" {
		t.Errorf("URL = %q, want the requested URL", rec.URL)
	}
	if rec.Title == "" || rec.CTA == "" || len(rec.Benefits) == 0 || len(rec.Testimonials) == 0 {
		t.Error("fallback record must be generically persuasive, not empty")
	}
	if svc.CacheLen() != 0 {
		t.Errorf("CacheLen = %d, fallback records must not be cached", svc.CacheLen())
	}

	// A later extract retries the strategies instead of serving a
	// cached fallback.
	if _, err := svc.Extract(context.Background(), "https://example.com/x", models.MethodAuto); err != nil {
		t.Fatal(err)
	}
	if s1.calls != 2 {
		t.Errorf("first strategy called %d times, want 2 (no fallback caching)", s1.calls)
	}
}

func TestDefaultRecord_Deterministic(t *testing.T) {
	a := DefaultRecord("https://example.com")
	b := DefaultRecord("https://example.com")

	if a.Title != b.Title || a.CTA != b.CTA || len(a.Benefits) != len(b.Benefits) {
		t.Error("DefaultRecord must be deterministic for the same URL")
	}
	if a.ExtractionMethod != models.MethodFallback {
		t.Errorf("ExtractionMethod = %q, want %q", a.ExtractionMethod, models.MethodFallback)
	}
}
