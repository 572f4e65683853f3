package engine

import (
	"strings"

	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/models"
)

// Router maps a target hostname to the recommended fetch strategy using
// the classification lists from configuration. Matching is deliberately
// coarse: a list entry matches any hostname containing it as a
// substring ("amazon.com" matches "www.amazon.com").
type Router struct {
	jsHeavy       []string
	edgeProtected []string
	botDefended   []string
}

// NewRouter builds a Router from the routing tables, lowercasing every
// entry once up front.
func NewRouter(cfg config.RoutingConfig) *Router {
	return &Router{
		jsHeavy:       lowerAll(cfg.JSHeavyHosts),
		edgeProtected: lowerAll(cfg.EdgeProtectedHosts),
		botDefended:   lowerAll(cfg.BotDefendedHosts),
	}
}

// Select returns the strategy recommended for the hostname. Pure, no
// I/O, no failure mode: unknown hosts get the plain HTTP strategy.
func (r *Router) Select(hostname string) models.Method {
	host := strings.ToLower(hostname)
	switch {
	case matchAny(host, r.jsHeavy):
		return models.MethodFullBrowser
	case matchAny(host, r.edgeProtected):
		return models.MethodCloudflare
	case matchAny(host, r.botDefended):
		return models.MethodLightBrowser
	default:
		return models.MethodHTTP
	}
}

func matchAny(host string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(host, s) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
