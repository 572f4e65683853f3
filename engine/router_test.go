package engine

import (
	"testing"

	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/models"
)

func testRouter() *Router {
	return NewRouter(config.RoutingConfig{
		JSHeavyHosts:       []string{"facebook.com", "instagram.com", "youtube.com"},
		EdgeProtectedHosts: []string{"cloudflare", "shopify"},
		BotDefendedHosts:   []string{"amazon.com", "mercadolivre.com.br"},
	})
}

func TestRouter_Select(t *testing.T) {
	r := testRouter()

	tests := []struct {
		host string
		want models.Method
	}{
		{"www.facebook.com", models.MethodFullBrowser},
		{"instagram.com", models.MethodFullBrowser},
		{"shop.myshopify.com", models.MethodCloudflare},
		{"www.cloudflare.com", models.MethodCloudflare},
		{"www.amazon.com", models.MethodLightBrowser},
		{"produto.mercadolivre.com.br", models.MethodLightBrowser},
		{"example.com", models.MethodHTTP},
		{"blog.meusite.com.br", models.MethodHTTP},
	}

	for _, tt := range tests {
		if got := r.Select(tt.host); got != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestRouter_SelectCaseInsensitive(t *testing.T) {
	r := testRouter()

	if got := r.Select("WWW.AMAZON.COM"); got != models.MethodLightBrowser {
		t.Errorf("Select with uppercase host = %q, want %q", got, models.MethodLightBrowser)
	}
}

func TestRouter_SelectPriority(t *testing.T) {
	// A host matching more than one list takes the first list's strategy.
	r := NewRouter(config.RoutingConfig{
		JSHeavyHosts:     []string{"example.com"},
		BotDefendedHosts: []string{"example.com"},
	})

	if got := r.Select("example.com"); got != models.MethodFullBrowser {
		t.Errorf("Select on overlapping lists = %q, want %q", got, models.MethodFullBrowser)
	}
}
